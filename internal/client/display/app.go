// Package display initializes and runs the display client: the kiosk-side
// process that keeps one screen's menu rendered and current.
package display

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/signage/internal/client/api"
	"github.com/dmitrijs2005/signage/internal/client/client"
	"github.com/dmitrijs2005/signage/internal/client/config"
	"github.com/dmitrijs2005/signage/internal/client/repositories/mirror"
	"github.com/dmitrijs2005/signage/internal/client/services"
	"github.com/dmitrijs2005/signage/internal/filex"
	"github.com/dmitrijs2005/signage/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	display *services.DisplayService
	closeDB func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dataDir, err := filex.EnsureSubDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dataDir, "signage.db"))
	if err != nil {
		return nil, err
	}

	apiClient := api.New(c.ServerBaseURL, c.RequestTimeout)
	repo := mirror.NewSQLiteRepository(db)
	renderer := NewConsoleRenderer(os.Stdout)

	svc := services.NewDisplayService(apiClient, repo, renderer,
		logger.With("screen_id", c.ScreenID),
		c.ScreenID, c.RefreshInterval, c.ClockInterval, c.RequestTimeout)

	return &App{config: c, logger: logger, display: svc, closeDB: db.Close}, nil
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

	app.logger.Info(ctx, "Starting display client...", "screen_id", app.config.ScreenID)

	app.initSignalHandler(cancelFunc)

	app.display.Run(ctx)

	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, "closing cache database", "error", err)
	}
}
