package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"nanobanana-go/internal/constants"

	log "github.com/sirupsen/logrus"
)

// Config holds runtime configuration. It is read once at start and treated
// as immutable afterwards; several fields are secrets and must only be
// logged through the redact package.
type Config struct {
	// Chat platform
	DiscordToken string `yaml:"discord_token" json:"discord_token"`
	GuildID      string `yaml:"guild_id" json:"guild_id"`
	CommandName  string `yaml:"command_name" json:"command_name"`

	// Upstream: pooled API keys
	APIKeys       []string `yaml:"api_keys" json:"api_keys"`
	GeminiBaseURL string   `yaml:"gemini_base_url" json:"gemini_base_url"`
	Model         string   `yaml:"model" json:"model"`

	// Upstream: fixed endpoint used when no API keys are configured
	APIURL         string `yaml:"api_url" json:"api_url"`
	APIBearerToken string `yaml:"api_bearer_token" json:"api_bearer_token"`

	// Image generation defaults
	ImageSize string `yaml:"image_size" json:"image_size"`

	// Timeouts; RequestTimeoutSec == 0 disables the per-attempt deadline.
	RequestTimeoutSec      int    `yaml:"request_timeout_sec" json:"request_timeout_sec"`
	DialTimeoutSec         int    `yaml:"dial_timeout_sec" json:"dial_timeout_sec"`
	TLSHandshakeTimeoutSec int    `yaml:"tls_handshake_timeout_sec" json:"tls_handshake_timeout_sec"`
	ProxyURL               string `yaml:"proxy_url" json:"proxy_url"`

	// Health server
	Port string `yaml:"port" json:"port"`

	// Observability
	Debug        bool   `yaml:"debug" json:"debug"`
	LogFile      string `yaml:"log_file" json:"log_file"`
	OTLPEndpoint string `yaml:"otlp_endpoint" json:"otlp_endpoint"`
}

// RequestTimeout returns the per-attempt timeout; zero means unlimited.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// DialTimeout returns the TCP dial timeout.
func (c *Config) DialTimeout() time.Duration {
	return durationOrDefault(c.DialTimeoutSec, constants.DefaultDialTimeout)
}

// TLSHandshakeTimeout returns the TLS handshake timeout.
func (c *Config) TLSHandshakeTimeout() time.Duration {
	return durationOrDefault(c.TLSHandshakeTimeoutSec, constants.DefaultTLSHandshakeTimeout)
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// Load reads configuration from the environment only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile layers defaults, an optional YAML/JSON file and the
// environment, in that order, then validates the result. A missing file is
// not an error.
func LoadWithFile(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
			log.WithField("path", path).Debug("config file not found; using environment only")
		}
	}
	applyEnv(cfg)
	if err := cfg.ValidateAndExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
