package velux

import (
	"context"

	"github.com/Vilsol/veluxcore/pkg/config"
)

// EnabledKey is the module configuration key that decides whether a module
// is loaded. A missing key means disabled.
const EnabledKey = "enabled"

// Module is an optional unit of behavior managed by the [Registry].
type Module interface {
	// Name returns the unique human-readable module name. Its lower-cased form
	// is the stem of the module's configuration file.
	Name() string

	// Load activates the module with its configuration document.
	Load(ctx context.Context, cfg *config.Document) error

	// Unload deactivates the module.
	Unload(ctx context.Context) error
}
