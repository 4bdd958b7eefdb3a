package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.jsonc"
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.jsonc", `{
		// comments are fine
		"data_dir": "/home/jane/.dossier",
		"log_level": "debug", /* so are block comments */
	}`)

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{LogFile: "keep.log"}
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "/home/jane/.dossier", cfg.DataDir)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "keep.log", cfg.LogFile, "absent keys keep current values")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{DataDir: "defaults", LogLevel: "info"}
		parseJson(cfg, []string{"-d", "other"})

		assert.Equal(t, "defaults", cfg.DataDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "bad.json", `{ this is not valid json`)

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
