package server

import (
	"net/http"

	"nanobanana-go/internal/config"
	"nanobanana-go/internal/credential"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadyMessage is the body of the root liveness probe.
const ReadyMessage = "Bot is running and ready!"

// Dependencies carries runtime services exposed by the health server.
type Dependencies struct {
	Pool *credential.Pool
	// Ready reports whether the chat session is connected; nil means ready.
	Ready func() bool
	// Watch adds removal and failure history to /healthz when set.
	Watch *HealthWatch
}

// BuildEngine constructs the health and metrics engine.
func BuildEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	engine := gin.New()
	applyStandardEngineSettings(engine, cfg)

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, ReadyMessage)
	})
	engine.GET("/healthz", healthzHandler(deps))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return engine
}

// healthzHandler reports pool state without revealing any key.
func healthzHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := deps.Ready == nil || deps.Ready()
		body := gin.H{"ready": ready}
		if deps.Pool != nil {
			_, hasFixed := deps.Pool.Fixed()
			body["mode"] = deps.Pool.Mode().String()
			body["keys"] = deps.Pool.Size()
			body["fixed_endpoint"] = hasFixed
		}
		if deps.Watch != nil {
			body["history"] = deps.Watch.Snapshot()
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, body)
	}
}
