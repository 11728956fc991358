package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quasicode/internal/diagfmt"
	"quasicode/internal/driver"
	"quasicode/internal/program"
	"quasicode/internal/snapshot"
	"quasicode/internal/symbols"
	"quasicode/internal/trace"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <program.yaml>",
		Short: "Resolve names and check returns in a program document",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "", "output format (pretty|json|short); default from qsc.toml or pretty")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("with-notes", false, "show note locations in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("with-semantics", false, "include the symbol table in json output")
	cmd.Flags().String("emit-symbols", "", "write a msgpack snapshot of the symbol table to this file")
	return cmd
}

// analysis is one loaded and analyzed program plus the settings it ran with.
type analysis struct {
	settings settings
	result   *driver.Result
	tracer   trace.Tracer
	cleanup  func()
}

// analyzeArg loads settings, sets up tracing and analyzes the program at
// path. The caller must run cleanup.
func analyzeArg(cmd *cobra.Command, path string, opts driver.Options) (*analysis, error) {
	s, err := loadSettings(cmd, path)
	if err != nil {
		return nil, err
	}
	color.NoColor = !s.color

	stopTrace, err := setupTracing(cmd, s)
	if err != nil {
		return nil, err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return nil, err
	}
	cleanup := func() {
		stopProfiling()
		stopTrace()
	}
	a := &analysis{settings: s, cleanup: cleanup, tracer: trace.FromContext(cmd.Context())}

	prog, err := program.LoadFile(path, program.Options{})
	if err != nil {
		cleanup()
		return nil, err
	}
	opts.Hints = symbols.Hints{Scopes: s.project.Resolve.ScopesHint, Symbols: s.project.Resolve.SymbolsHint}
	opts.MaxDiagnostics = s.maxDiagnostics
	opts.EnableTimings = s.timings
	opts.WarningsAsErrors = opts.WarningsAsErrors || s.warningsAsErrors
	a.result, err = driver.AnalyzeProgram(cmd.Context(), prog, opts)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return a, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	noWarnings, err := flags.GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := flags.GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withSemantics, err := flags.GetBool("with-semantics")
	if err != nil {
		return fmt.Errorf("failed to get with-semantics flag: %w", err)
	}
	emitSymbols, err := flags.GetString("emit-symbols")
	if err != nil {
		return fmt.Errorf("failed to get emit-symbols flag: %w", err)
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	a, err := analyzeArg(cmd, args[0], driver.Options{
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: warningsAsErrors,
		Validate:         true,
	})
	if err != nil {
		return err
	}
	defer a.cleanup()
	if format == "" {
		format = a.settings.project.Check.Format
	}
	format = strings.ToLower(format)

	res := a.result
	out := cmd.OutOrStdout()
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.Program.Text, diagfmt.PrettyOpts{
			Color:     a.settings.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		diagfmt.Short(out, res.Bag, res.Program.Text, pathMode)
	case "json":
		doc := diagfmt.BuildDiagnosticsOutput(res.Bag, res.Program.Text, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
		doc.RunID = res.RunID.String()
		if withSemantics {
			doc.Semantics, err = diagfmt.BuildSemanticsOutput(diagfmt.SemanticsInput{
				Builder: res.Program.Builder,
				Result:  &res.Resolve,
			})
			if err != nil {
				return fmt.Errorf("failed to build semantics output: %w", err)
			}
		}
		if err := diagfmt.EncodeJSON(out, doc); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if emitSymbols != "" {
		snap := snapshot.Build(res.Table, snapshot.Meta{
			RunID:   res.RunID.String(),
			Program: args[0],
			Digest:  res.Program.Digest,
		})
		if err := snapshot.Write(emitSymbols, snap); err != nil {
			return fmt.Errorf("failed to write symbol snapshot: %w", err)
		}
	}

	if res.Bag.HasErrors() {
		dumpTrace(cmd.ErrOrStderr(), a.tracer)
		return exitError{code: 1}
	}
	if !a.settings.quiet && format == "pretty" && res.Bag.Len() == 0 {
		fmt.Fprintf(out, "%s: ok\n", diagfmt.FormatPath(res.Program.Text, pathMode, ""))
	}
	return nil
}
