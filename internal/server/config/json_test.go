package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"listen_addr":     ":8181",
		"base_url":        "https://bank.example/api",
		"redis_addr":      "redis:6380",
		"session_ttl":     "2h",
		"request_timeout": 3000000000,
		"upload_limit":    1024,
		"log_level":       "error",
	})

	t.Run("loads every key", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, Config{
			ListenAddr:     ":8181",
			BaseURL:        "https://bank.example/api",
			RedisAddr:      "redis:6380",
			SessionTTL:     2 * time.Hour,
			RequestTimeout: 3 * time.Second,
			UploadLimit:    1024,
			LogLevel:       "error",
		}, *cfg)
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ListenAddr: "keep"}
		parseJson(cfg)

		assert.Equal(t, "keep", cfg.ListenAddr)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"session_ttl": "soon"}`), 0o600))
		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
