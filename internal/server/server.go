package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/internal/server/handlers"
	"github.com/vzahanych/weather-display/internal/server/middlewares"
	"github.com/vzahanych/weather-display/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	server  *http.Server
	client  handlers.WeatherFetcher
	metrics *middlewares.MetricsMiddleware
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewServer(cfg *config.Config, client handlers.WeatherFetcher, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := middlewares.NewMetricsMiddleware(logger, tele)

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger, true))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(metrics.Handler())

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		client:  client,
		metrics: metrics,
		logger:  logger,
		tele:    tele,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	apiKey := s.cfg.Weather.APIKey
	metricsHandler := handlers.NewMetricsHandler(s.logger, s.metrics)

	s.engine.GET("/weather", handlers.NewWeatherHandler(s.client, apiKey, s.cfg.Display.AssetsDir, metricsHandler, s.logger).GetWeather)

	health := handlers.NewHealthHandler(s.logger, apiKey)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	s.engine.GET("/metrics", metricsHandler.ServeMetrics)
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
