package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/information-sharing-networks/docusign-client/internal/config"
	"github.com/information-sharing-networks/docusign-client/internal/database"
	"github.com/information-sharing-networks/docusign-client/internal/logger"
	"github.com/information-sharing-networks/docusign-client/internal/server"
	"github.com/information-sharing-networks/docusign-client/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

//	@title			connect-receiver
//	@description	connect-receiver records the envelope status changes posted by DocuSign Connect.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	## Authentication
//	@description	Notifications are authenticated with the HMAC signature configured in DocuSign Connect (X-DocuSign-Signature-N headers).
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@produce	json

//	@tag.name			Connect
//	@tag.description	DocuSign Connect notification endpoint

//	@tag.name			Envelopes
//	@tag.description	Envelope status and events received from DocuSign Connect

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "connect-receiver",
		Short: "DocuSign Connect notification receiver",
		Long: `connect-receiver receives the envelope status notifications posted by DocuSign Connect,
stores the envelope status and events in PostgreSQL and serves them over HTTP.

The server is configured with environment variables (DATABASE_URL, CONNECT_HMAC_KEYS, PORT ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.Int64("MAX_REQUEST_BODY_SIZE", cfg.MaxRequestBodySize),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
		slog.Int("CONNECT_HMAC_KEYS", len(cfg.ConnectHMACKeys)),
		slog.Bool("AUTO_MIGRATE", cfg.AutoMigrate),
	)

	dbCtx, dbCancel := context.WithTimeout(context.Background(), cfg.DatabasePingTimeout)
	defer dbCancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		appLogger.Error("Failed to parse database URL", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig.MaxConns = cfg.DBMaxConnections
	poolConfig.MinConns = cfg.DBMinConnections
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(dbCtx, poolConfig)
	if err != nil {
		appLogger.Error("Unable to create connection pool", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err = pool.Ping(dbCtx); err != nil {
		appLogger.Error("Error pinging database via pool", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("connected to PostgreSQL")

	if cfg.AutoMigrate {
		if err := database.Migrate(dbCtx, pool); err != nil {
			appLogger.Error("Database migration failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		appLogger.Info("database migrations applied")
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(pool, cfg, appLogger)
	defer srv.DatabaseShutdown()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
