package credential

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// LoadPool builds the pool from configuration values and logs the resulting
// mode. Keys are trimmed; secrets are never logged.
func LoadPool(keys []string, fixedURL, bearer string) *Pool {
	trimmed := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed = append(trimmed, strings.TrimSpace(k))
	}
	pool := NewPool(trimmed, &FixedEndpoint{
		URL:         strings.TrimSpace(fixedURL),
		BearerToken: strings.TrimSpace(bearer),
	})
	_, hasFixed := pool.Fixed()
	log.WithFields(log.Fields{
		"keys":           pool.Size(),
		"fixed_endpoint": hasFixed,
		"mode":           pool.Mode().String(),
	}).Info("credential pool loaded")
	if pool.Mode() == ModeUnconfigured {
		log.Warn("no API keys and no fixed endpoint configured; every request will fail")
	}
	return pool
}
