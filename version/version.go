package version

import "fmt"

// Set via -ldflags at release build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info describes the build of the running binary
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the build information
func Get() Info {
	return Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("plate3mf %s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}
