// Package server initializes and runs the auth server: it opens the
// database, applies migrations, wires the account service to the HTTP API,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/auth"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/config"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/httpapi"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/mail"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/repositories"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/repositories/users"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := repositories.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	issuer := auth.NewTokenIssuer(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration,
	)
	sealer := auth.NewPasscodeSealer(cfg.PasscodeSecret, cfg.PasscodeValidityDuration)

	var mailer mail.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	accounts := services.NewAccountService(users.NewPostgresRepository(db), issuer, sealer, mailer)

	handler := httpapi.NewHandler(
		accounts,
		auth.NewRequestAuthenticator(cfg.AccessTokenSecret),
		&auth.CookieCarrier{Name: common.RefreshCookieName, Secure: cfg.IsProduction()},
		&auth.CookieCarrier{Name: common.PasscodeCookieName, Secure: cfg.IsProduction()},
		cfg.RefreshTokenValidityDuration, cfg.PasscodeValidityDuration,
		logger,
	)

	server := httpapi.NewHTTPServer(cfg.Address, handler, cfg.Origins(), logger)

	return &App{config: cfg, logger: logger, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped.")
}
