package scoreboard

import (
	"time"

	"github.com/samber/oops"
)

// MaxLines is the number of sidebar lines a client can display.
const MaxLines = 15

// Config represents configuration for the scoreboard [Module]
type Config struct {
	// Enabled toggles the module. Read by the registry at load time only.
	Enabled bool `koanf:"enabled"`

	// Title is the sidebar objective title.
	Title string `koanf:"title"`

	// Lines are the sidebar rows from top to bottom.
	Lines []string `koanf:"lines"`

	// UpdateInterval is how often the sidebar is refreshed.
	UpdateInterval time.Duration `koanf:"update-interval"`
}

// Validate checks line count and interval.
func (c *Config) Validate() error {
	if len(c.Lines) > MaxLines {
		return oops.
			With("lines", len(c.Lines)).
			With("max", MaxLines).
			Errorf("too many scoreboard lines")
	}

	if c.UpdateInterval < 0 {
		return oops.With("update_interval", c.UpdateInterval).Errorf("update interval must not be negative")
	}

	return nil
}
