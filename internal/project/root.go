package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigName is the project file looked up next to analyzed programs.
const ConfigName = "qsc.toml"

// FindConfig walks up from startDir to locate qsc.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the project file governing the program at programPath.
// Without a project file it returns Defaults and an empty path.
func Discover(programPath string) (Config, string, error) {
	path, ok, err := FindConfig(filepath.Dir(programPath))
	if err != nil || !ok {
		return Defaults(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}
