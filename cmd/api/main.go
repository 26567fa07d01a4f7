// @title                       Time Clock API
// @version                     1.0
// @description                 Employee clock-in/clock-out ledger with monthly hour reports.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/timeclock/timeclock-api/internal/api"
	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/core/service"
	"github.com/timeclock/timeclock-api/internal/infrastructure/config"
	mongodb "github.com/timeclock/timeclock-api/internal/infrastructure/db/mongo"
	redisdb "github.com/timeclock/timeclock-api/internal/infrastructure/db/redis"
	"github.com/timeclock/timeclock-api/internal/infrastructure/export"
	"github.com/timeclock/timeclock-api/internal/infrastructure/http/handlers"
	"github.com/timeclock/timeclock-api/internal/infrastructure/mail"
	"github.com/timeclock/timeclock-api/internal/infrastructure/queue"
	"github.com/timeclock/timeclock-api/pkg/logger"
)

const (
	serviceName     = "timeclock-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options depend on config; fall back to defaults to report the failure.
		logger.Init(logger.Options{Service: serviceName})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	sessions := mongodb.NewWorkSessionRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, sessions); err != nil {
		return err
	}

	// --- Mail ---
	mailer := newMailer(cfg, log)
	dispatcher := queue.NewMailDispatcher(cfg.SMTP.Workers, 0, mailer, logger.Component("mail"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(
		users,
		redisdb.NewResetTokenStore(rdb, cfg.Auth.ResetTokenTTL),
		dispatcher,
		service.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
			TokenTTL:  cfg.Auth.TokenTTL,
			AppURL:    cfg.Auth.AppURL,
		},
		logger.Component("auth"),
	)
	workLogService := service.NewWorkLogService(sessions, loc, logger.Component("worklog"))
	reportService := service.NewReportService(sessions, map[string]ports.ReportRenderer{
		ports.FormatXLSX: export.NewXLSXRenderer(loc),
		ports.FormatDOCX: export.NewDOCXRenderer(loc),
	}, logger.Component("report"))

	e := api.NewRouter(api.Dependencies{
		JWTSecret: cfg.Auth.JWTSecret,
		Logger:    logger.Component("http"),
		Auth:      authService,
		WorkLog:   workLogService,
		Reports:   reportService,
		Readiness: handlers.NewHealthDependenciesHandler(db, rdb),
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("timezone", loc.String()).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}

func newMailer(cfg *config.Config, log zerolog.Logger) ports.Mailer {
	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP_USERNAME not set, reset emails will only be logged")
		return mail.NewLogMailer(logger.Component("mail"))
	}
	return mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
		LinkTTL:  cfg.Auth.ResetTokenTTL,
	}, logger.Component("mail"))
}
