package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nanobanana-go/internal/redact"
)

// ValidationError represents a configuration validation error. Value is
// already redacted when the field is a secret.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s=%s]: %s", e.Field, e.Value, e.Message)
}

// ValidationErrors aggregates every problem found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate rejects malformed configuration. A configuration with neither API
// keys nor a fixed endpoint is valid; the dispatcher reports it per request.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if err := validatePort(c.Port); err != nil {
		errs = append(errs, ValidationError{"port", c.Port, err.Error()})
	}
	if err := validateHTTPURL(c.GeminiBaseURL); err != nil {
		errs = append(errs, ValidationError{"gemini_base_url", c.GeminiBaseURL, err.Error()})
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{"model", c.Model, "model cannot be empty"})
	}
	if c.APIURL != "" {
		if err := validateHTTPURL(c.APIURL); err != nil {
			errs = append(errs, ValidationError{"api_url", redact.ToDomain(c.APIURL), err.Error()})
		}
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			errs = append(errs, ValidationError{"proxy_url", redact.ToDomain(c.ProxyURL), "invalid proxy URL format"})
		}
	}
	if c.RequestTimeoutSec < 0 {
		errs = append(errs, ValidationError{"request_timeout_sec", strconv.Itoa(c.RequestTimeoutSec), "must be >= 0 (0 disables the timeout)"})
	}
	if c.DialTimeoutSec < 0 {
		errs = append(errs, ValidationError{"dial_timeout_sec", strconv.Itoa(c.DialTimeoutSec), "must be >= 0"})
	}
	if c.TLSHandshakeTimeoutSec < 0 {
		errs = append(errs, ValidationError{"tls_handshake_timeout_sec", strconv.Itoa(c.TLSHandshakeTimeoutSec), "must be >= 0"})
	}
	if strings.TrimSpace(c.CommandName) == "" {
		errs = append(errs, ValidationError{"command_name", c.CommandName, "command name cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	return nil
}

// validatePort validates a port string
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number: %v", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", portNum)
	}

	return nil
}

// ValidateAndExpandPaths expands file paths in configuration.
func (c *Config) ValidateAndExpandPaths() error {
	if c.LogFile == "" {
		return nil
	}
	var err error
	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("invalid log_file path: %v", err)
	}
	return nil
}

// expandPath expands ~ and environment variables in file paths
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %v", err)
		}
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot convert to absolute path: %v", err)
	}

	return absPath, nil
}
