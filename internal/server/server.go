// Package server exposes the packing engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/model"
)

// Config controls the HTTP API.
type Config struct {
	Addr      string
	Defaults  model.PackSettings // Applied to fields a request leaves out
	Timeout   time.Duration      // Per-request limit on packing; zero means none
	MaxShapes int                // Upper bound on expanded shapes per request; zero means none
}

// DefaultConfig returns a Config listening on :8080 with the default pack settings.
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		Defaults:  model.DefaultSettings(),
		Timeout:   30 * time.Second,
		MaxShapes: 10000,
	}
}

// Server serves the packing API. Each request builds its own optimizer, so
// handlers share no mutable state.
type Server struct {
	config Config
	logger *zap.Logger
	engine *gin.Engine
}

func New(config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{config: config, logger: logger}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/pack", s.handlePack)
	api.POST("/evolve", s.handleEvolve)
	api.POST("/render", s.handleRender)
	api.POST("/chart", s.handleChart)
	api.POST("/fitness-plot", s.handleFitnessPlot)

	s.engine = r
	return s
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs every request through zap in place of gin's default
// stdout logger.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
