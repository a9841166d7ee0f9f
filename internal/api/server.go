package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/preflight"
	"scribe/internal/subtitles"
	"scribe/internal/transcription"
)

const shutdownGrace = 30 * time.Second

// Transcriber runs the speech pipeline. *transcription.Service satisfies it.
type Transcriber interface {
	Ready() error
	Model() string
	Transcribe(ctx context.Context, req transcription.Request) (subtitles.Result, error)
}

// Server wires the subtitle engine and transcriber to HTTP routes.
type Server struct {
	cfg         *config.Config
	engine      *subtitles.Engine
	transcriber Transcriber
	logger      *slog.Logger
	metrics     *Metrics
	version     string
	checkDeps   func() []deps.Status
	router      *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "api")
		}
	}
}

// WithVersion sets the version reported by /status.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// WithMetrics replaces the server's metrics collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(s *Server) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithDependencyCheck replaces the dependency report shown by /status.
func WithDependencyCheck(check func() []deps.Status) Option {
	return func(s *Server) {
		s.checkDeps = check
	}
}

// NewServer builds the router. A nil transcriber disables /transcribe.
func NewServer(cfg *config.Config, engine *subtitles.Engine, transcriber Transcriber, opts ...Option) *Server {
	if engine == nil {
		engine = subtitles.NewEngine()
	}
	s := &Server{
		cfg:         cfg,
		engine:      engine,
		transcriber: transcriber,
		logger:      logging.NewNop(),
		version:     "dev",
	}
	s.checkDeps = func() []deps.Status { return preflight.CheckSystemDeps(cfg) }
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	if s.cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(observe(s.logger, s.metrics))
	router.Use(cors.New(corsConfig(s.cfg.Server.CORSOrigins)))
	router.Use(deadline(s.cfg.RequestTimeout()))

	router.GET("/health", s.handleHealth)
	router.GET("/status", s.handleStatus)
	router.GET("/languages", s.handleLanguages)
	router.POST("/generate-from-text", s.handleGenerateFromText)
	router.POST("/transcribe", s.handleTranscribe)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// ListenAndServe binds the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Server.Bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Bind, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx ends, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout() + 30*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	s.logger.Info("api listening",
		logging.String("addr", listener.Addr().String()),
		logging.String("version", s.version),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.WarnWithContext(s.logger, "api shutdown incomplete", "api_shutdown_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "in-flight requests were cut off"),
		)
		return err
	}
	s.logger.Info("api stopped")
	return nil
}
