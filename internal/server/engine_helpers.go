package server

import (
	"context"
	"errors"
	"net/http"

	"nanobanana-go/internal/config"
	"nanobanana-go/internal/constants"
	mw "nanobanana-go/internal/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// applyStandardEngineSettings installs the common middleware chain.
func applyStandardEngineSettings(engine *gin.Engine, cfg *config.Config) {
	if cfg == nil || !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	_ = engine.SetTrustedProxies(nil)
	engine.Use(mw.Recovery(), mw.RequestID(), mw.Metrics(), mw.RequestLogger())
}

// Server wraps the health http.Server.
type Server struct {
	srv *http.Server
}

// New builds a Server listening on :port.
func New(port string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}}
}

// Start serves in the background. Listen failures are logged, not fatal:
// the bot keeps running without its health endpoint.
func (s *Server) Start() {
	go func() {
		log.Infof("health server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("health server stopped")
		}
	}()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
