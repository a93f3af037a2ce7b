package config

import (
	"time"

	"nanobanana-go/internal/constants"
)

const (
	defaultGeminiBaseURL          = "https://generativelanguage.googleapis.com"
	defaultModel                  = "gemini-3-pro-image-preview"
	defaultCommandName            = "바나나"
	defaultImageSize              = "1K"
	defaultRequestTimeoutSec      = int(constants.DefaultRequestTimeout / time.Second)
	defaultDialTimeoutSec         = int(constants.DefaultDialTimeout / time.Second)
	defaultTLSHandshakeTimeoutSec = int(constants.DefaultTLSHandshakeTimeout / time.Second)
	defaultPort                   = "10000"
)

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		CommandName:            defaultCommandName,
		GeminiBaseURL:          defaultGeminiBaseURL,
		Model:                  defaultModel,
		ImageSize:              defaultImageSize,
		RequestTimeoutSec:      defaultRequestTimeoutSec,
		DialTimeoutSec:         defaultDialTimeoutSec,
		TLSHandshakeTimeoutSec: defaultTLSHandshakeTimeoutSec,
		Port:                   defaultPort,
	}
}
