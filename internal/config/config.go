// Package config loads the ambient configuration for cmd/primitives: where
// snapshots live on disk, the dump/output format, and the seed used to
// construct string-keyed dictionaries. Config files are tolerant JSONC,
// parsed with hujson.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds every option cmd/primitives reads from its config file.
type Config struct {
	SnapshotDir string `json:"snapshot_dir"` //nolint:tagliatelle
	Format      string `json:"format,omitempty"`
	HashSeed    uint32 `json:"hash_seed,omitempty"` //nolint:tagliatelle
}

// FileName is the default project config file name.
const FileName = ".primitives.json"

var (
	ErrFileNotFound  = errors.New("config file not found")
	ErrFileRead      = errors.New("cannot read config file")
	ErrInvalid       = errors.New("invalid config file")
	ErrSnapshotEmpty = errors.New("snapshot_dir cannot be empty")
)

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		SnapshotDir: ".primitives",
		Format:      "json",
	}
}

// globalPath returns $XDG_CONFIG_HOME/primitives/config.json, falling back
// to ~/.config/primitives/config.json. It returns "" if neither can be
// determined.
func globalPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "primitives", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "primitives", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "primitives", "config.json")
}

// Load resolves configuration with the following precedence, highest wins:
// defaults, global user config, project config at workDir/.primitives.json
// (or the explicit configPath override if non-empty).
func Load(workDir, configPath string, env []string) (Config, error) {
	cfg := Default()

	global, globalExplicitEmpty, globalLoaded, err := loadFile(globalPath(env), false)
	if err != nil {
		return Config{}, err
	}

	if globalLoaded {
		if globalExplicitEmpty {
			return Config{}, fmt.Errorf("%w: %s", ErrSnapshotEmpty, globalPath(env))
		}

		cfg = merge(cfg, global)
	}

	projectPath := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	project, explicitEmpty, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		if explicitEmpty {
			return Config{}, fmt.Errorf("%w: %s", ErrSnapshotEmpty, projectPath)
		}

		cfg = merge(cfg, project)
	}

	if cfg.SnapshotDir == "" {
		return Config{}, ErrSnapshotEmpty
	}

	return cfg, nil
}

// loadFile reads and parses path, also reporting whether snapshot_dir was
// present in the file but explicitly set to "" — a merge would otherwise
// treat "" the same as "unset" and silently fall back to the default,
// masking what was probably a typo.
func loadFile(path string, mustExist bool) (cfg Config, explicitEmpty bool, loaded bool, err error) {
	if path == "" {
		return Config{}, false, false, nil
	}

	data, readErr := os.ReadFile(path) //nolint:gosec
	if readErr != nil {
		if os.IsNotExist(readErr) {
			if mustExist {
				return Config{}, false, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}

			return Config{}, false, false, nil
		}

		return Config{}, false, false, fmt.Errorf("%w: %s: %w", ErrFileRead, path, readErr)
	}

	cfg, explicitEmpty, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parse(data []byte) (Config, bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := false

	if v, ok := raw["snapshot_dir"]; ok {
		if s, ok := v.(string); ok && s == "" {
			explicitEmpty = true
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.SnapshotDir != "" {
		base.SnapshotDir = overlay.SnapshotDir
	}

	if overlay.Format != "" {
		base.Format = overlay.Format
	}

	if overlay.HashSeed != 0 {
		base.HashSeed = overlay.HashSeed
	}

	return base
}

// Format returns cfg as indented JSON, for `primitives config show`.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}
