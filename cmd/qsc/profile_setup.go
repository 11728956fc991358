package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quasicode/internal/prof"
)

// setupProfiling starts the profilers requested on the command line.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	var opts prof.Options
	for name, dst := range map[string]*string{
		"cpu-profile":   &opts.CPUProfile,
		"mem-profile":   &opts.MemProfile,
		"runtime-trace": &opts.RuntimeTrace,
	} {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if opts == (prof.Options{}) {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
