// Package misc keeps build time information about the program.
package misc

// Set with -ldflags "-X marginbox/misc.version=... -X marginbox/misc.gitHash=..."
var (
	appName = "marginbox"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
