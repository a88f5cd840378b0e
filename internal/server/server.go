// Package server hosts the careers component behind a gin engine with CORS,
// health checks, and the embedded static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-careers/components/applications"
	"github.com/goliatone/go-careers/pkg/renderers/vanilla"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Options configures the server.
type Options struct {
	Addr            string
	AllowedOrigins  []string
	Assets          fs.FS
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
}

// Server serves the careers site.
type Server struct {
	engine          *gin.Engine
	http            *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// New mounts component on a fresh gin engine.
func New(component *applications.Component, opts Options) (*Server, error) {
	if component == nil {
		return nil, errors.New("server: component is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Assets == nil {
		opts.Assets = vanilla.AssetsFS()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery(), requestLogger(opts.Logger))
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.StaticFS("/assets", http.FS(opts.Assets))

	basePath := component.Options().BasePath
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, basePath+"/careers")
	})

	handler := gin.WrapH(component.Handler())
	for _, route := range component.Routes() {
		engine.Handle(route.Method, ginPath(route.Path), handler)
	}

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          opts.Logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}, nil
}

// Handler exposes the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// ginPath converts net/http wildcards ("{id}") to gin parameters (":id").
func ginPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[i] = ":" + strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
		}
	}
	return strings.Join(segments, "/")
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
