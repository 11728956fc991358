package diagfmt

import (
	"path/filepath"
	"strings"
)

// Source supplies the text that diagnostics point into.
type Source interface {
	Name() string
	Line(row int32) (string, bool)
}

const autoPathLimit = 40

// FormatPath renders the name of src according to mode.
func FormatPath(src Source, mode PathMode, baseDir string) string {
	if src == nil {
		return "<input>"
	}
	path := src.Name()
	if path == "" {
		return "<input>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if len(path) > autoPathLimit {
			return filepath.Base(path)
		}
	}
	return path
}
