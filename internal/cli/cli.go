// Package cli implements the stockroom subcommands. Every command builds an
// App, which wires the storage backends, identity signal and services the
// same way regardless of which command runs, then tears it down on exit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellhouse/stockroom/internal/auth"
	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/docstore/memory"
	"github.com/wellhouse/stockroom/internal/docstore/postgres"
	"github.com/wellhouse/stockroom/internal/service"
	"github.com/wellhouse/stockroom/internal/storage/localstore"
	"github.com/wellhouse/stockroom/internal/storage/sqlite"
)

// Register adds every stockroom subcommand to the commander.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "inventory")
	c.Register(&listCmd{}, "inventory")
	c.Register(&updateCmd{}, "inventory")
	c.Register(&deleteCmd{}, "inventory")
	c.Register(&incCmd{}, "inventory")
	c.Register(&decCmd{}, "inventory")
	c.Register(&iconCmd{}, "inventory")
	c.Register(&statsCmd{}, "dashboard")
	c.Register(&suggestCmd{}, "dashboard")

	c.Register(&settingsCmd{}, "personalization")

	c.Register(&signupCmd{}, "account")
	c.Register(&loginCmd{}, "account")
	c.Register(&logoutCmd{}, "account")
}

const sessionKey = "auth-session"

// nowFunc supplies "today" for expiry checks; a variable so tests can pin it.
var nowFunc = time.Now

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// App holds one fully wired process: sqlite-backed local storage, the
// document store and the three services on top. Only a DATABASE_URL-backed
// postgres store counts as a real remote; without one an in-memory store
// fills the slot so the services still wire up, but sign-in is refused:
// migrating durable local data into a store that dies with the process
// would lose it.
type App struct {
	Inventory       *service.InventoryService
	Personalization *service.PersonalizationService
	Auth            *service.AuthService

	store  *sqlite.Store
	pool   *pgxpool.Pool
	remote bool
}

func openApp(ctx context.Context) (*App, error) {
	logger := slog.Default()

	store, err := sqlite.New(getEnv("STOCKROOM_DB", "stockroom.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var docs docstore.Store
	var pool *pgxpool.Pool
	remote := false
	if url := os.Getenv("DATABASE_URL"); url != "" {
		pool, err = pgxpool.New(ctx, url)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		pg := postgres.New(pool, postgres.WithLogger(logger))
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			store.Close()
			return nil, fmt.Errorf("failed to ensure document schema: %w", err)
		}
		docs = pg
		remote = true
	} else {
		docs = memory.New()
	}

	users := auth.NewKVUserStore(store)
	signal := auth.NewSignal()
	jwtManager := auth.NewJWTManager(getEnv("JWT_SECRET", "stockroom-dev-secret"), 30*24*time.Hour)

	app := &App{
		Auth:   service.NewAuthService(auth.NewPasswordAuthenticator(users), jwtManager, users, signal, logger),
		store:  store,
		pool:   pool,
		remote: remote,
	}

	// Resume a stored session before the synchronization cores attach,
	// so they start on the right backend instead of migrating twice.
	// Without a durable document store the session is ignored rather
	// than deleted: the core stays on the local backend and the data it
	// holds stays put.
	if token, ok, err := store.Get(sessionKey); err == nil && ok {
		switch {
		case !remote:
			logger.Warn("ignoring stored session: DATABASE_URL is not configured")
		default:
			if _, err := app.Auth.Resume(ctx, string(token)); err != nil {
				logger.Warn("stored session is no longer valid", "error", err)
				store.Delete(sessionKey)
			}
		}
	}

	app.Inventory = service.NewInventoryService(localstore.NewItems(store), docs, signal, logger)
	app.Personalization = service.NewPersonalizationService(localstore.NewSettings(store), docs, signal, logger)
	return app, nil
}

// requireRemote guards the sign-in commands. Signing in triggers the
// one-time migration that drains local storage into the document store, so
// it must not run against the in-memory fallback.
func (a *App) requireRemote() error {
	if a.remote {
		return nil
	}
	return errors.New("DATABASE_URL is not set; signing in needs a durable document store to receive your local data")
}

func (a *App) saveSession(token string) error {
	return a.store.Set(sessionKey, []byte(token))
}

func (a *App) dropSession() error {
	return a.store.Delete(sessionKey)
}

// Close releases the services and every underlying store.
func (a *App) Close() {
	if a.Inventory != nil {
		a.Inventory.Close()
	}
	if a.Personalization != nil {
		a.Personalization.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	a.store.Close()
}

// withApp wraps a command body with App setup and teardown.
func withApp(ctx context.Context, fn func(ctx context.Context, app *App) error) subcommands.ExitStatus {
	app, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := fn(ctx, app); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
