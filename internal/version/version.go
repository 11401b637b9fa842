package version

// These variables are overridden at build time using -ldflags, e.g.
// -X github.com/ericogr/arena-battles/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
