package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/docusign-client/internal/config"
	"github.com/information-sharing-networks/docusign-client/internal/database"
	"github.com/information-sharing-networks/docusign-client/internal/docs"
	"github.com/information-sharing-networks/docusign-client/internal/logger"
	"github.com/information-sharing-networks/docusign-client/internal/server/handlers"
	appmiddleware "github.com/information-sharing-networks/docusign-client/internal/server/middleware"
	"github.com/information-sharing-networks/docusign-client/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage is implemented by *database.Store
type Storage interface {
	handlers.NotificationStore
	handlers.EnvelopeReader
	handlers.Pinger
}

type Server struct {
	pool    *pgxpool.Pool
	store   Storage
	config  *config.ServerEnvironment
	logger  *slog.Logger
	router  *chi.Mux
	version version.Info
}

func NewServer(
	pool *pgxpool.Pool,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) *Server {
	return newServer(pool, database.NewStore(pool), cfg, logger)
}

func newServer(pool *pgxpool.Pool, store Storage, cfg *config.ServerEnvironment, logger *slog.Logger) *Server {
	server := &Server{
		pool:    pool,
		store:   store,
		config:  cfg,
		logger:  logger,
		router:  chi.NewRouter(),
		version: version.Get(),
	}

	docs.SwaggerInfo.Version = server.version.Version

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

// Handler returns the router of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(appmiddleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health/live", handlers.HandleHealth)
	s.router.Get("/health/ready", handlers.HandleReadiness(s.store))
	s.router.Get("/version", handlers.HandleVersion(s.version))
	s.router.Get("/swagger/doc.json", handlers.HandleSwaggerDoc)

	connectHandler := handlers.NewConnectHandler(s.store)
	s.router.Group(func(r chi.Router) {
		r.Use(appmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Use(appmiddleware.RequestSizeLimit(s.config.MaxRequestBodySize))
		r.Use(appmiddleware.ConnectSignature(s.config.ConnectHMACKeys))
		r.Post("/connect", connectHandler.HandleNotification)
	})

	envelopeHandler := handlers.NewEnvelopeHandler(s.store)
	s.router.Group(func(r chi.Router) {
		r.Use(appmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Get("/envelopes/{envelopeID}", envelopeHandler.HandleGetEnvelope)
		r.Get("/envelopes/{envelopeID}/events", envelopeHandler.HandleListEnvelopeEvents)
	})
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr),
			slog.Bool("hmac_verification", len(s.config.ConnectHMACKeys) > 0))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) DatabaseShutdown() {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("database connection closed")
	}
}
