// Package cli is the interactive shell of the EBBS client: a small REPL
// that drives login, registration, passcode recovery, and session commands
// against the backend API.
package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/irabeny89/ebbs2022-sub000/internal/client/client"
	"github.com/irabeny89/ebbs2022-sub000/internal/client/config"
	"github.com/irabeny89/ebbs2022-sub000/internal/client/session"
	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
)

type App struct {
	config   *config.Config
	client   client.Client
	username string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	// REPL output is the UI; the client's own logging stays out of the way.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := session.New()
	apiClient, err := client.New(c, sess, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.Active()
}
