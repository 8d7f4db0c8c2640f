package velux

import "runtime/debug"

// Version is the plugin version, set at build time with
// -ldflags "-X github.com/Vilsol/veluxcore/pkg/velux.Version=1.2.3".
var Version = ""

// ResolveVersion returns Version, falling back to the main module version
// recorded in the build info and finally to "dev".
func ResolveVersion() string {
	return resolveVersion(Version, debug.ReadBuildInfo)
}

func resolveVersion(version string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if version != "" {
		return version
	}

	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}
