package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quasicode/internal/version"
)

// exitError carries a non-zero exit status without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// newRootCmd builds the command tree with its persistent flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qsc",
		Short:         "Semantic checker for quasicode programs",
		Long:          `qsc resolves names and checks guaranteed returns in quasicode program documents`,
		Version:       version.Number,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("config", "", "project file (default: qsc.toml found next to the program)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|phase|pass|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 1024, "events kept by the ring buffer")
	root.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newCheckCmd(), newSymbolsCmd(), newVersionCmd())
	return root
}

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "qsc: %v\n", err)
	os.Exit(2)
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
