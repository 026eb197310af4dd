package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sentrygin "github.com/getsentry/sentry-go/gin"

	"github.com/antoinebou12/horaire-search/internal/config"
	"github.com/antoinebou12/horaire-search/internal/logger"
	"github.com/antoinebou12/horaire-search/internal/metrics"
	"github.com/antoinebou12/horaire-search/internal/readiness"
	"github.com/antoinebou12/horaire-search/internal/search"
)

// Server is the thin reference HTTP surface wrapping the engine. It
// contains no ranking logic: request parsing/clamping and JSON
// serialization only.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	cfg     *config.Config
	engine  *search.Engine
	metrics *metrics.Metrics
	ready   *readiness.Gate
	log     *logger.Logger
}

// New builds a Server wired to engine, metrics, and the readiness gate.
func New(cfg *config.Config, engine *search.Engine, m *metrics.Metrics, ready *readiness.Gate, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))
	if cfg.IsSentryEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	s := &Server{
		router:  router,
		cfg:     cfg,
		engine:  engine,
		metrics: m,
		ready:   ready,
		log:     log,
	}
	s.registerRoutes()

	s.httpSrv = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// drains in-flight requests within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("http server shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}
