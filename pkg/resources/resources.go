// Package resources embeds the default data directory contents shipped with
// the plugin. Files are copied to disk on first run and afterwards serve as
// fallback values for keys missing from the on-disk copies.
package resources

import "embed"

// FS holds config.yml, lang.yml and the per-module defaults under modules/.
//
//go:embed config.yml lang.yml modules/*.yml
var FS embed.FS
