package cmd

import (
	"github.com/earthboundkid/versioninfo/v2"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// resolvedVersion prefers the ldflags value and falls back to the module
// build info for `go install` builds.
func resolvedVersion() string {
	if version != "" && version != "dev" {
		if commit != "" && commit != "none" {
			return formatVersion(version) + " (" + commit + ")"
		}
		return formatVersion(version)
	}
	return versioninfo.Short()
}

func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
