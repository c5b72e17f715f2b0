// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads and writes the persisted configuration document.
// The document is a single JSON file overwritten wholesale on every save;
// there is no partial update and no versioning. Concurrent CLI invocations
// against the same path race last-writer-wins, which is accepted.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/assaylabs/assay/pkg/types"
)

const fileName = "config.json"

// EnvConfigDir overrides the configuration directory when set.
const EnvConfigDir = "ASSAY_CONFIG_DIR"

// ErrParse wraps JSON syntax failures from an existing config file, so
// callers can distinguish "malformed file" from I/O errors.
var ErrParse = errors.New("config file is not valid JSON")

// Store reads and writes the config document under a fixed directory.
type Store struct {
	dir string
}

// NewStore resolves the config directory: $ASSAY_CONFIG_DIR when set, else
// a platform-specific user-data directory (%APPDATA% or %LOCALAPPDATA% on
// Windows, ~/.assay elsewhere).
func NewStore() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// NewStoreAt returns a store rooted at an explicit directory. Used by tests
// and by callers that already resolved the directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func configDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	if runtime.GOOS == "windows" {
		for _, env := range []string{"APPDATA", "LOCALAPPDATA"} {
			if base := os.Getenv(env); base != "" {
				return filepath.Join(base, "assay"), nil
			}
		}
		return "", fmt.Errorf("neither APPDATA nor LOCALAPPDATA is set")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".assay"), nil
}

// Dir returns the resolved configuration directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path of the config file.
func (s *Store) Path() string { return filepath.Join(s.dir, fileName) }

// Load reads the config document. A missing file yields the defaults; a
// file that exists but does not parse yields an error wrapping ErrParse.
func (s *Store) Load() (types.Config, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return types.DefaultConfig(), nil
		}
		return types.Config{}, fmt.Errorf("reading %s: %w", s.Path(), err)
	}

	var cfg types.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return types.Config{}, fmt.Errorf("%w: %s: %v", ErrParse, s.Path(), err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultBaseURL
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = types.FormatJSON
	}
	return cfg, nil
}

// Save writes the whole config document, creating the directory on first
// write. On non-Windows platforms the file is restricted to owner-only
// read/write; a failed chmod is ignored (some filesystems reject it).
func (s *Store) Save(cfg types.Config) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path(), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path(), err)
	}
	if runtime.GOOS != "windows" {
		_ = os.Chmod(s.Path(), 0o600)
	}
	return nil
}
