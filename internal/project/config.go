// Package project reads qsc.toml, the optional configuration that sits
// next to analyzed programs.
package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

var (
	// ErrInvalidValue reports a key with a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")
	// ErrVersion reports a tool version outside the requires constraint.
	ErrVersion = errors.New("tool version does not satisfy requires")
)

var (
	formats     = []string{"pretty", "json", "short"}
	colorModes  = []string{"auto", "on", "off"}
	traceLevels = []string{"off", "phase", "pass", "debug"}
)

// Config is the decoded project file.
type Config struct {
	// Requires is a semver constraint on the qsc version.
	Requires string
	Check    CheckConfig
	Trace    TraceConfig
	Resolve  ResolveConfig
}

type CheckConfig struct {
	MaxDiagnostics   int
	WarningsAsErrors bool
	Format           string
	Color            string
}

type TraceConfig struct {
	Level  string
	Output string
}

// ResolveConfig sizes the symbol table arenas up front.
type ResolveConfig struct {
	ScopesHint  uint
	SymbolsHint uint
}

type fileConfig struct {
	Requires string `toml:"requires"`
	Check    struct {
		MaxDiagnostics   int    `toml:"max_diagnostics"`
		WarningsAsErrors bool   `toml:"warnings_as_errors"`
		Format           string `toml:"format"`
		Color            string `toml:"color"`
	} `toml:"check"`
	Trace struct {
		Level  string `toml:"level"`
		Output string `toml:"output"`
	} `toml:"trace"`
	Resolve struct {
		ScopesHint  uint `toml:"scopes_hint"`
		SymbolsHint uint `toml:"symbols_hint"`
	} `toml:"resolve"`
}

// Defaults is the configuration used when keys or the whole file are absent.
func Defaults() Config {
	return Config{
		Check: CheckConfig{MaxDiagnostics: 100, Format: "pretty", Color: "auto"},
		Trace: TraceConfig{Level: "off", Output: "stderr"},
	}
}

// Load parses the project file at path. Absent keys keep their defaults.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Defaults()
	cfg.Requires = strings.TrimSpace(raw.Requires)
	if meta.IsDefined("check", "max_diagnostics") {
		if raw.Check.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: [check].max_diagnostics %d: %w", path, raw.Check.MaxDiagnostics, ErrInvalidValue)
		}
		cfg.Check.MaxDiagnostics = raw.Check.MaxDiagnostics
	}
	cfg.Check.WarningsAsErrors = raw.Check.WarningsAsErrors

	choices := []struct {
		section, key string
		value        string
		allowed      []string
		dst          *string
	}{
		{"check", "format", raw.Check.Format, formats, &cfg.Check.Format},
		{"check", "color", raw.Check.Color, colorModes, &cfg.Check.Color},
		{"trace", "level", raw.Trace.Level, traceLevels, &cfg.Trace.Level},
	}
	for _, c := range choices {
		if !meta.IsDefined(c.section, c.key) {
			continue
		}
		v := strings.ToLower(strings.TrimSpace(c.value))
		if !slices.Contains(c.allowed, v) {
			return Config{}, fmt.Errorf("%s: [%s].%s %q (want %s): %w",
				path, c.section, c.key, c.value, strings.Join(c.allowed, "|"), ErrInvalidValue)
		}
		*c.dst = v
	}
	if meta.IsDefined("trace", "output") {
		cfg.Trace.Output = strings.TrimSpace(raw.Trace.Output)
	}
	cfg.Resolve.ScopesHint = raw.Resolve.ScopesHint
	cfg.Resolve.SymbolsHint = raw.Resolve.SymbolsHint

	if cfg.Requires != "" {
		if _, err := semver.NewConstraint(cfg.Requires); err != nil {
			return Config{}, fmt.Errorf("%s: requires %q: %w", path, cfg.Requires, err)
		}
	}
	return cfg, nil
}

// CheckVersion verifies that version satisfies Requires. Development builds
// with a prerelease suffix are compared by their release part.
func (c Config) CheckVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("requires %q: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("tool version %q: %w", version, err)
	}
	if v.Prerelease() != "" {
		release, err := v.SetPrerelease("")
		if err != nil {
			return err
		}
		v = &release
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s is not %s", ErrVersion, v, c.Requires)
	}
	return nil
}
