package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quasicode/internal/diagfmt"
	"quasicode/internal/driver"
	"quasicode/internal/snapshot"
)

// snapshotExt marks files written by check --emit-symbols.
const snapshotExt = ".qss"

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [flags] <program.yaml|snapshot.qss>",
		Short: "Print the symbol table of a program or of a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runSymbols,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	out := cmd.OutOrStdout()

	if filepath.Ext(args[0]) == snapshotExt {
		snap, err := snapshot.Read(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if format == "json" {
			return diagfmt.EncodeJSON(out, snap)
		}
		printSnapshot(out, snap)
		return nil
	}

	a, err := analyzeArg(cmd, args[0], driver.Options{Validate: true})
	if err != nil {
		return err
	}
	defer a.cleanup()
	res := a.result
	if format == "json" {
		sem, err := diagfmt.BuildSemanticsOutput(diagfmt.SemanticsInput{Builder: res.Program.Builder, Result: &res.Resolve})
		if err != nil {
			return fmt.Errorf("failed to build semantics output: %w", err)
		}
		return diagfmt.EncodeJSON(out, sem)
	}
	if err := diagfmt.FormatSymbolsPretty(out, &res.Resolve); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d diagnostics; run qsc check for details\n", res.Bag.Len())
		return exitError{code: 1}
	}
	return nil
}

// printSnapshot lists the classes of snap by depth, then every other symbol.
func printSnapshot(w io.Writer, snap *snapshot.Snapshot) {
	fmt.Fprintf(w, "snapshot of %s (run %s, digest %016x)\n", snap.Program, snap.RunID, snap.Digest)
	for _, c := range snap.Classes() {
		line := fmt.Sprintf("class %s depth %d", c.Type, c.Depth)
		if sup := snap.Symbol(c.Superclass); sup != nil {
			line += " extends " + sup.Type
		}
		fmt.Fprintln(w, "  "+line)
	}
	for _, s := range snap.Symbols {
		switch s.Kind {
		case "class", "class-name", "function-group":
			continue
		case "function", "method":
			ret := s.Returns
			if ret == "" {
				ret = "void"
			}
			fmt.Fprintf(w, "  %s %s(%s) -> %s at %d:%d\n", s.Kind, s.Name, strings.Join(s.Params, ", "), ret, s.Row, s.Col)
		default:
			fmt.Fprintf(w, "  %s %s at %d:%d\n", s.Kind, s.Name, s.Row, s.Col)
		}
	}
}
