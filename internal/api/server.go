package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/api/handlers"
	apimw "github.com/movietrend/movietrend/internal/api/middleware"
	"github.com/movietrend/movietrend/internal/config"
	"github.com/movietrend/movietrend/internal/scheduler"
	"github.com/movietrend/movietrend/internal/trending"
)

// TickRunner runs the trending pipeline for one tick.
type TickRunner interface {
	Run(ctx context.Context, req trending.TickRequest) trending.Result
}

// Server handles HTTP requests for the MovieTrend integration.
type Server struct {
	echo      *echo.Echo
	logger    zerolog.Logger
	cfg       *config.Config
	trending  TickRunner
	scheduler *scheduler.Scheduler
}

// NewServer creates a new API server instance. sched may be nil when
// scheduled ticks are disabled.
func NewServer(cfg *config.Config, runner TickRunner, sched *scheduler.Scheduler, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		logger:    logger.With().Str("component", "api").Logger(),
		cfg:       cfg,
		trending:  runner,
		scheduler: sched,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Telex calls from the browser-based dashboard as well as server side.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.echo.Use(apimw.ContextLogger(s.logger))
	s.echo.Use(apimw.SecurityHeaders())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("requestId", v.RequestID).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("requestId", v.RequestID).
					Msg("request")
			}
			return nil
		},
	}))
}

// setupRoutes configures routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/", s.redirectHome)
	s.echo.GET("/health", s.healthCheck)

	s.echo.GET("/integration.json", s.getIntegration)
	s.echo.GET("/telex-integration", s.getIntegration)
	s.echo.POST("/tick", s.tick)

	if dir := s.cfg.Site.StaticDir; dir != "" {
		s.echo.Static("/"+strings.Trim(s.cfg.Site.StaticURL, "/"), dir)
	}

	if s.scheduler != nil {
		api := s.echo.Group("/api/v1")
		handlers.NewSchedulerHandler(s.scheduler).RegisterRoutes(api.Group("/scheduler"))
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
