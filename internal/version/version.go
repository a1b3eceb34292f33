// Package version reports the tailview build version.
package version

import "fmt"

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String formats the version with the commit and build date when known.
func String() string {
	base := Version
	if Commit != "" {
		base += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		base += fmt.Sprintf(" %s", Date)
	}
	return base
}
