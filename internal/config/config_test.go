package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nanobanana-go/internal/constants"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCORD_TOKEN", "DISCORD_GUILD_ID", "COMMAND_NAME", "API_KEY", "GEMINI_BASE_URL",
		"GEMINI_MODEL", "API_URL", "API_BEARER_TOKEN", "IMAGE_SIZE", "REQUEST_TIMEOUT_SEC",
		"DIAL_TIMEOUT_SEC", "TLS_HANDSHAKE_TIMEOUT_SEC", "PROXY_URL", "PORT", "DEBUG",
		"LOG_FILE", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	require.Equal(t, "gemini-3-pro-image-preview", cfg.Model)
	require.Equal(t, "바나나", cfg.CommandName)
	require.Equal(t, "1K", cfg.ImageSize)
	require.Equal(t, "10000", cfg.Port)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout())
	require.Empty(t, cfg.APIKeys)
	require.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", " k1, k2 ,,k3 ")
	t.Setenv("API_URL", "https://proxy.example.com/v1/generate")
	t.Setenv("API_BEARER_TOKEN", "sk-live-abcdefghijklmnop")
	t.Setenv("REQUEST_TIMEOUT_SEC", "0")
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"k1", "k2", "k3"}, cfg.APIKeys)
	require.Equal(t, "https://proxy.example.com/v1/generate", cfg.APIURL)
	require.Equal(t, "sk-live-abcdefghijklmnop", cfg.APIBearerToken)
	require.Equal(t, time.Duration(0), cfg.RequestTimeout())
	require.Equal(t, "8080", cfg.Port)
	require.True(t, cfg.Debug)
}

func TestLoadWithFileEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_keys:\n  - file-key-1\n  - file-key-2\nmodel: file-model\nport: \"9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("GEMINI_MODEL", "env-model")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"file-key-1", "file-key-2"}, cfg.APIKeys)
	require.Equal(t, "env-model", cfg.Model)
	require.Equal(t, "9000", cfg.Port)
}

func TestLoadWithMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "10000", cfg.Port)
}

func TestValidateRejectsMalformedValues(t *testing.T) {
	cfg := Defaults()
	cfg.Port = "99999"
	cfg.APIURL = "ftp://secret-host.example.com/path?token=abc"
	cfg.RequestTimeoutSec = -1

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)
	require.NotContains(t, err.Error(), "token=abc")
	require.NotContains(t, err.Error(), "/path")
}

func TestValidateAcceptsUnconfiguredUpstream(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/logs/bot.log")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "logs", "bot.log"), got)
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, 10*time.Second, cfg.DialTimeout())
	require.Equal(t, 10*time.Second, cfg.TLSHandshakeTimeout())
	require.Equal(t, time.Duration(0), cfg.RequestTimeout())
}

func TestDefaultsUseTimeoutConstants(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, constants.DefaultRequestTimeout, cfg.RequestTimeout())
	require.Equal(t, constants.DefaultDialTimeout, cfg.DialTimeout())
	require.Equal(t, constants.DefaultTLSHandshakeTimeout, cfg.TLSHandshakeTimeout())
}
