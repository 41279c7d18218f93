package transly

// Version information for transly.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/transly.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "transly"

	// Description is a short description of the application.
	Description = "Batch file translation with a persistent translation cache"

	// Version is the semantic version of the application.
	Version = "1.0.2"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/transly"
)

// BuildInfo contains build-time information, set via ldflags.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version string with the short commit appended when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent header sent to HTTP providers.
func UserAgent() string {
	return Name + "/" + Version
}
