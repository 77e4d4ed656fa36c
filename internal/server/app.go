// Package server initializes and runs the signage API server. It wires the
// remote object store to the credential and asset services, starts the HTTP
// endpoint and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/signage/internal/blobstore"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/assets"
	"github.com/dmitrijs2005/signage/internal/server/config"
	"github.com/dmitrijs2005/signage/internal/server/credentials"
	"github.com/dmitrijs2005/signage/internal/server/httpapi"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		RootUser:      c.S3RootUser,
		RootPassword:  c.S3RootPassword,
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		PublicBaseURL: c.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	cs := credentials.NewService(store, c, logger)
	as := assets.NewService(store, c, logger)
	srv := httpapi.NewServer(c, logger, cs, as)

	return &App{config: c, logger: logger, httpServer: srv}, nil
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

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
