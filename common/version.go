package common

import "runtime/debug"

// version can be set at build time with
// -ldflags "-X github.com/starshine-sys/welcomer/common.version=v1.2.3".
var version string

// Version returns the version set at build time, or one derived from the module's build info.
func Version() string {
	if version != "" {
		return version
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "UNKNOWN"
	}
	return buildVersion(bi)
}

// buildVersion prefers a tagged module version, then a short VCS revision (marked if the tree was dirty).
func buildVersion(bi *debug.BuildInfo) string {
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	var rev string
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if dirty {
			rev += "-dirty"
		}
		return rev
	}

	if bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "UNKNOWN"
}
