package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"TeleshopNews/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELESHOP_NEWS_CONFIG", "")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("STORE_PATH", "")
	t.Setenv("COOLDOWN_MINUTES", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := config.Load()

	require.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	require.Equal(t, "gagadget", cfg.Source.Scanner)
	require.Equal(t, 15, cfg.Source.MaxCandidates)
	require.Equal(t, "news_data.json", cfg.Store.Path)
	require.Equal(t, 200, cfg.Store.MaxSize)
	require.Equal(t, 24, cfg.Store.RecentHours)
	require.Equal(t, 30, cfg.API.CooldownMinutes)
	require.Equal(t, 200, cfg.API.MaxLimit)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
server:
  addr: "127.0.0.1:9000"
store:
  maxSize: 50
api:
  cooldownMinutes: 5
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	t.Setenv("TELESHOP_NEWS_CONFIG", path)
	t.Setenv("SERVER_ADDR", "127.0.0.1:9100")
	t.Setenv("STORE_PATH", "")
	t.Setenv("COOLDOWN_MINUTES", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := config.Load()

	// env wins over file, file wins over defaults
	require.Equal(t, "127.0.0.1:9100", cfg.Server.Addr)
	require.Equal(t, 50, cfg.Store.MaxSize)
	require.Equal(t, 5, cfg.API.CooldownMinutes)
	require.Equal(t, "gagadget", cfg.Source.Scanner)
}

func TestResolvedDurations(t *testing.T) {
	cfg := config.Config{}
	require.Equal(t, "15s", cfg.Source.FetchTimeout().String())
	require.Equal(t, "1s", cfg.Source.Delay().String())
	require.Equal(t, "10s", cfg.Translate.Timeout().String())
	require.Equal(t, "30m0s", cfg.API.Cooldown().String())
}
