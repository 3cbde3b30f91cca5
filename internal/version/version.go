// Package version reports what build of imp is running.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridable at build time via -ldflags "-X ...".
var (
	// Version is the semantic version of the toolchain.
	Version = "0.1.0"
	// GitCommit is the git commit hash the binary was built from.
	GitCommit = ""
	// BuildDate is the build date in ISO-8601.
	BuildDate = ""
)

// Colored renders the version with each semver component highlighted.
func Colored() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	major := color.New(color.FgYellow, color.Bold).Sprint(parts[0])
	minor := color.New(color.FgGreen, color.Bold).Sprint(parts[1])
	patch := color.New(color.FgBlue, color.Bold).Sprint(parts[2])
	return major + "." + minor + "." + patch
}

// String composes the full version report: the version line, then commit and
// build date when the build stamped them.
func String() string {
	var b strings.Builder
	b.WriteString("imp ")
	b.WriteString(Colored())
	b.WriteByte('\n')
	if GitCommit != "" {
		b.WriteString("commit: " + GitCommit + "\n")
	}
	if BuildDate != "" {
		b.WriteString("built:  " + BuildDate + "\n")
	}
	return b.String()
}
