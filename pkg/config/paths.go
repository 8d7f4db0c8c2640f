package config

import (
	"path"
	"strings"
)

const delimiter = "."

// File layout inside the data directory. Paths use forward slashes so they
// double as resource paths in the embedded defaults.
const (
	SettingsFile = "config.yml"
	LangFile     = "lang.yml"
	ModulesDir   = "modules"
)

// ModuleFile returns the relative path of the configuration file for a module.
// Example: ModuleFile("Scoreboard") -> "modules/scoreboard.yml"
func ModuleFile(name string) string {
	return path.Join(ModulesDir, strings.ToLower(name)+".yml")
}
