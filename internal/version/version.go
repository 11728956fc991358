// Package version reports the qsc build version.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Number is the semantic version of the tool, without colors.
	Number = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Number with one color per component. Colors follow the
// global color.NoColor switch.
func Colored() string {
	core, suffix, _ := strings.Cut(Number, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Number
	}
	s := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		s += "-" + suffix
	}
	return s
}

// String is the full version line printed by `qsc version`.
func String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qsc %s", Colored())
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&b, " (%s)", commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, " built %s", BuildDate)
	}
	return b.String()
}
