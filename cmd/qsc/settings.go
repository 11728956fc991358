package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quasicode/internal/project"
	"quasicode/internal/version"
)

// settings merges qsc.toml with command-line flags. Flags set explicitly
// win over the project file.
type settings struct {
	project    project.Config
	configPath string

	color            bool
	quiet            bool
	timings          bool
	maxDiagnostics   int
	warningsAsErrors bool

	traceOutput   string
	traceLevel    string
	traceMode     string
	traceRingSize int
	traceFormat   string
}

func loadSettings(cmd *cobra.Command, programPath string) (settings, error) {
	var s settings
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		s.project, err = project.Load(configPath)
		s.configPath = configPath
	} else {
		s.project, s.configPath, err = project.Discover(programPath)
	}
	if err != nil {
		return s, err
	}
	if err := s.project.CheckVersion(version.Number); err != nil {
		return s, fmt.Errorf("%s: %w", s.configPath, err)
	}

	colorMode := s.project.Check.Color
	if flags.Changed("color") {
		if colorMode, err = flags.GetString("color"); err != nil {
			return s, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	switch strings.ToLower(colorMode) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(cmd.OutOrStdout())
	default:
		return s, fmt.Errorf("unknown color mode: %s", colorMode)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	s.maxDiagnostics = s.project.Check.MaxDiagnostics
	if flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	s.warningsAsErrors = s.project.Check.WarningsAsErrors

	s.traceOutput = s.project.Trace.Output
	if s.traceOutput == "stderr" {
		s.traceOutput = ""
	}
	s.traceLevel = s.project.Trace.Level
	for name, dst := range map[string]*string{
		"trace":        &s.traceOutput,
		"trace-level":  &s.traceLevel,
		"trace-mode":   &s.traceMode,
		"trace-format": &s.traceFormat,
	} {
		if flags.Changed(name) || *dst == "" {
			if *dst, err = flags.GetString(name); err != nil {
				return s, fmt.Errorf("failed to get %s flag: %w", name, err)
			}
		}
	}
	if s.traceRingSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return s, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	return s, nil
}
