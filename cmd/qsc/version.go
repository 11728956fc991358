package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quasicode/internal/diagfmt"
	"quasicode/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show qsc build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			colorFlag, err := cmd.Flags().GetString("color")
			if err != nil {
				return fmt.Errorf("failed to get color flag: %w", err)
			}
			color.NoColor = colorFlag == "off" || (colorFlag == "auto" && !isTerminal(cmd.OutOrStdout()))

			switch strings.ToLower(format) {
			case "pretty":
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			case "json":
				return diagfmt.EncodeJSON(cmd.OutOrStdout(), versionPayload{
					Tool:      "qsc",
					Version:   version.Number,
					GitCommit: strings.TrimSpace(version.GitCommit),
					BuildDate: strings.TrimSpace(version.BuildDate),
				})
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
