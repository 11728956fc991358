package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
requires = ">= 0.1"

[check]
format = "JSON"
warnings_as_errors = true

[trace]
output = "trace.ndjson"

[resolve]
symbols_hint = 64
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.Requires = ">= 0.1"
	want.Check.Format = "json"
	want.Check.WarningsAsErrors = true
	want.Trace.Output = "trace.ndjson"
	want.Resolve.SymbolsHint = 64
	if diff := pretty.Diff(want, cfg); len(diff) > 0 {
		t.Fatalf("config differs: %v", diff)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad format", "[check]\nformat = \"xml\"\n", "[check].format"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"negative limit", "[check]\nmax_diagnostics = -1\n", "max_diagnostics"},
		{"unknown key", "[check]\nfromat = \"json\"\n", "unknown keys: check.fromat"},
		{"bad constraint", "requires = \"not a version\"\n", "requires"},
		{"bad toml", "[check\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
	_, err := Load(writeConfig(t, t.TempDir(), "[check]\ncolor = \"rainbow\"\n"))
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		ok       bool
	}{
		{"", "0.1.0", true},
		{">= 0.1, < 1", "0.1.0-dev", true},
		{">= 0.2", "0.1.0-dev", false},
		{"~0.1", "0.1.7", true},
		{"^1", "0.9.0", false},
	}
	for _, tt := range tests {
		err := Config{Requires: tt.requires}.CheckVersion(tt.version)
		if tt.ok && err != nil {
			t.Fatalf("%q vs %s: %v", tt.requires, tt.version, err)
		}
		if !tt.ok && !errors.Is(err, ErrVersion) {
			t.Fatalf("%q vs %s: err = %v, want ErrVersion", tt.requires, tt.version, err)
		}
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[check]\nmax_diagnostics = 5\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, path, err := Discover(filepath.Join(nested, "main.yaml"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != filepath.Join(root, ConfigName) || cfg.Check.MaxDiagnostics != 5 {
		t.Fatalf("path %q, max %d", path, cfg.Check.MaxDiagnostics)
	}
}
