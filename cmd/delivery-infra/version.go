package main

import "runtime/debug"

// version is stamped by release builds:
// -ldflags "-X main.version=v1.2.3". Empty for plain go build.
var version = ""

// getVersion prefers the stamped version, then the module version from
// build info (go install @version), then "dev".
func getVersion() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	return "dev"
}
