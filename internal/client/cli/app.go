package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/signage/internal/client/api"
	"github.com/dmitrijs2005/signage/internal/client/config"
	"github.com/dmitrijs2005/signage/internal/client/session"
)

// App is the admin console. It drives the session gate against the server's
// auth surface and exposes upload and resolve commands once a session is
// held.
type App struct {
	config *config.Config
	api    *api.Client
	gate   *session.Gate
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.New(c.ServerBaseURL, c.RequestTimeout),
		gate:   session.NewGate(),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.gate.State() == session.StateAuthenticated
}

func (a *App) status() string {
	return a.gate.State().String()
}

func (a *App) Run(ctx context.Context) {
	a.begin(ctx)
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
