package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nikogura/candidate-scorer/pkg/config"
	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/nikogura/candidate-scorer/pkg/store"
	"github.com/nikogura/candidate-scorer/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server exposes the scoring engine and candidate store over HTTP.
type Server struct {
	engine  *scoring.Engine
	store   store.Store
	metrics *Metrics
	router  *gin.Engine

	// writeMu serializes read-modify-write cycles on candidate records.
	writeMu sync.Mutex
}

// New builds the router. Metrics are registered with reg, which also backs
// the /metrics endpoint; pass a fresh registry in tests.
func New(engine *scoring.Engine, st store.Store, cfg config.ServerConfig, reg *prometheus.Registry) (s *Server) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s = &Server{
		engine:  engine,
		store:   st,
		metrics: MustNewMetrics(reg),
		router:  gin.New(),
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}

	s.router.Use(requestID(), recovery(), logging(), s.metrics.instrument(), cors.New(corsConfig))

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := s.router.Group("/api/v1")
	api.GET("/health", s.health)
	api.POST("/score", s.score)
	api.GET("/stats", s.stats)

	candidates := api.Group("/candidates/:token", s.requireToken)
	candidates.GET("/answers", s.getAnswers)
	candidates.PUT("/answers", s.saveAnswers)
	candidates.POST("/submit", s.submit)
	candidates.GET("/result", s.result)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() (h http.Handler) {
	h = s.router
	return h
}

// Run serves on listen until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) (err error) {
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"listen": listen})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			err = errors.Wrapf(err, "failed to serve on %s", listen)
		}
		return err
	case <-ctx.Done():
	}

	telemetry.Info("server.stop", map[string]any{"listen": listen})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	return err
}
