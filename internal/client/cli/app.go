// Package cli is the interactive terminal front end of the soukbid client:
// a read–eval–print loop over the shared store, with live updates arriving
// through the push channel in the background.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/soukbid/soukbid-cli/internal/client/api"
	"github.com/soukbid/soukbid-cli/internal/client/config"
	"github.com/soukbid/soukbid-cli/internal/client/push"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/participation"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/session"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/timers"
	"github.com/soukbid/soukbid-cli/internal/client/storage"
	"github.com/soukbid/soukbid-cli/internal/client/store"
	"github.com/soukbid/soukbid-cli/internal/logging"
)

type App struct {
	config *config.Config
	db     *sql.DB
	tokens api.TokenStore
	api    api.Client
	push   *push.Client
	store  *store.Store
	log    logging.Logger
	reader *bufio.Reader

	// watching is the auction whose push room we joined last; switching to
	// another auction leaves it first.
	watching string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(cfg.Debug)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	tokens := session.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, tokens, log)
	pushClient := push.NewClient(cfg.WSURL, push.Options{
		DialTimeout: cfg.DialTimeout,
		MaxAttempts: cfg.ReconnectAttempts,
		BaseDelay:   cfg.ReconnectDelay,
	}, log)

	st := store.New(
		apiClient,
		pushClient,
		participation.NewSQLiteRepository(db),
		timers.NewSQLiteRepository(db),
		cfg.ListCap,
		log,
	)

	return &App{
		config: cfg,
		db:     db,
		tokens: tokens,
		api:    apiClient,
		push:   pushClient,
		store:  st,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session, loads initial data, connects the push channel
// and enters the REPL. It returns when the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.api.Health(ctx); err != nil {
		a.log.Warn(ctx, "backend health check failed", "error", err)
	}

	a.store.Restore(ctx, a.tokens)
	a.store.LoadAuctions(ctx)

	a.store.BindPush(ctx, a.push)
	a.bindAnnouncements(ctx)
	if err := a.push.Connect(ctx); err != nil {
		a.log.Warn(ctx, "push channel unavailable, live updates disabled", "error", err)
	}

	go a.store.RunCountdowns(ctx)

	fmt.Println("Welcome to soukbid (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// status renders the prompt suffix: initials and coin balance when logged
// in, "guest" otherwise, with an offline marker while the push channel is
// down.
func (a *App) status() string {
	s := "guest"
	if a.store.LoggedIn() {
		s = fmt.Sprintf("%s %dc", a.store.Initials(), a.store.Coins())
	}
	if !a.push.Connected() {
		s += " offline"
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.store.LoggedIn()
}

func (a *App) Close() {
	if err := a.push.Close(); err != nil {
		a.log.Debug(context.Background(), "push close failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Debug(context.Background(), "db close failed", "error", err)
	}
}
