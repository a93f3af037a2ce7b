package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// WithReq builds a log entry enriched with request_id, method, path and ip.
// Extras win on key conflicts.
func WithReq(c *gin.Context, extras log.Fields) *log.Entry {
	if c == nil {
		return log.WithFields(extras)
	}
	path := c.FullPath()
	if path == "" && c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.Path
	}
	rid, _ := c.Get("request_id")
	fields := log.Fields{
		"request_id": rid,
		"method":     c.Request.Method,
		"path":       path,
		"ip":         c.ClientIP(),
	}
	for k, v := range extras {
		fields[k] = v
	}
	return log.WithFields(fields)
}

// WithDispatch returns an entry tagged with a dispatch id and upstream mode.
func WithDispatch(dispatchID, mode string) *log.Entry {
	return log.WithFields(log.Fields{
		"component":   "dispatcher",
		"dispatch_id": dispatchID,
		"mode":        mode,
	})
}

// WithInteraction returns an entry tagged with chat interaction fields.
func WithInteraction(interactionID, guildID, userID string) *log.Entry {
	return log.WithFields(log.Fields{
		"component":      "bot",
		"interaction_id": interactionID,
		"guild_id":       guildID,
		"user_id":        userID,
	})
}

// DurationMS converts a duration to integer milliseconds for logging.
func DurationMS(d time.Duration) int64 { return d.Milliseconds() }
