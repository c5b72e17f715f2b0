// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assaylabs/assay/pkg/types"
)

func TestLoad_EmptyDirectoryYieldsDefaults(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	cfg, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, types.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, types.FormatJSON, cfg.OutputFormat)
	assert.Empty(t, cfg.KeyIdentifier)
	assert.Empty(t, cfg.KeyExpiresAt)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	want := types.Config{
		KeyIdentifier: "abc123",
		KeyExpiresAt:  "2026-12-31T23:59:59Z",
		BaseURL:       "https://staging.assay.dev",
		OutputFormat:  types.FormatTable,
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "assay")
	s := NewStoreAt(dir)

	require.NoError(t, s.Save(types.DefaultConfig()))

	_, err := os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestSave_RestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.Save(types.DefaultConfig()))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600))

	_, err := NewStoreAt(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoad_FillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"keyIdentifier":"abc123"}`), 0o600))

	cfg, err := NewStoreAt(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.KeyIdentifier)
	assert.Equal(t, types.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, types.FormatJSON, cfg.OutputFormat)
}

func TestNewStore_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	s, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, filepath.Join(dir, "config.json"), s.Path())
}

func TestNewStore_HomeDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home-based default is not used on Windows")
	}
	t.Setenv(EnvConfigDir, "")

	s, err := NewStore()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".assay"), s.Dir())
}
