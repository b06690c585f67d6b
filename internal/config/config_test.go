package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "js", cfg.Output.Extension)
	assert.Equal(t, "@/firebase", cfg.Firebase.Import)
	assert.Equal(t, 20, cfg.Store.PageSize)
	assert.Equal(t, DefaultAuthCollections, cfg.Auth.Collections)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "us-central1", cfg.Functions.Region)
	assert.Equal(t, "nodejs20", cfg.Functions.Runtime)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Store.PageSize)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plume.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  dir: src
  extension: .ts
firebase:
  import: ~/lib/firebase
store:
  page_size: 50
auth:
  collections: [members, operators]
  messages:
    auth/wrong-password: "Wrong password."
functions:
  region: europe-west1
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Output.Dir)
	assert.Equal(t, "ts", cfg.Output.Extension)
	assert.Equal(t, "~/lib/firebase", cfg.Firebase.Import)
	assert.Equal(t, 50, cfg.Store.PageSize)
	assert.Equal(t, []string{"members", "operators"}, cfg.Auth.Collections)
	assert.Equal(t, "Wrong password.", cfg.Auth.Messages["auth/wrong-password"])
	assert.Equal(t, "europe-west1", cfg.Functions.Region)
	assert.Equal(t, "nodejs20", cfg.Functions.Runtime)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PLUME_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plume.yml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  page_size: 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}
