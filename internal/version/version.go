// Package version exposes build information set at link time.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// GitCommit is the git commit the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the UTC date of the build.
	BuildDate = "unknown"
)

// Info bundles the build identifiers for the version endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}
