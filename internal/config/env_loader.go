package config

// applyEnv overlays environment variables on cfg. Unset variables leave the
// current value untouched.
func applyEnv(cfg *Config) {
	setStringFromEnv("DISCORD_TOKEN", func(v string) { cfg.DiscordToken = v })
	setStringFromEnv("DISCORD_GUILD_ID", func(v string) { cfg.GuildID = v })
	setStringFromEnv("COMMAND_NAME", func(v string) { cfg.CommandName = v })

	if v := getenv("API_KEY", ""); v != "" {
		cfg.APIKeys = splitAndTrim(v, ",")
	}
	setStringFromEnv("GEMINI_BASE_URL", func(v string) { cfg.GeminiBaseURL = v })
	setStringFromEnv("GEMINI_MODEL", func(v string) { cfg.Model = v })
	setStringFromEnv("API_URL", func(v string) { cfg.APIURL = v })
	setStringFromEnv("API_BEARER_TOKEN", func(v string) { cfg.APIBearerToken = v })
	setStringFromEnv("IMAGE_SIZE", func(v string) { cfg.ImageSize = v })

	setIntFromEnv("REQUEST_TIMEOUT_SEC", func(n int) { cfg.RequestTimeoutSec = n })
	setIntFromEnv("DIAL_TIMEOUT_SEC", func(n int) { cfg.DialTimeoutSec = n })
	setIntFromEnv("TLS_HANDSHAKE_TIMEOUT_SEC", func(n int) { cfg.TLSHandshakeTimeoutSec = n })
	setStringFromEnv("PROXY_URL", func(v string) { cfg.ProxyURL = v })

	setStringFromEnv("PORT", func(v string) { cfg.Port = v })

	cfg.Debug = getenvBool("DEBUG", cfg.Debug)
	setStringFromEnv("LOG_FILE", func(v string) { cfg.LogFile = v })
	setStringFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", func(v string) { cfg.OTLPEndpoint = v })
}
