package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fekuna/ecoscan/config"
	"github.com/fekuna/ecoscan/internal/api"
	"github.com/fekuna/ecoscan/internal/auth"
	authRepoPkg "github.com/fekuna/ecoscan/internal/auth/repository"
	"github.com/fekuna/ecoscan/internal/auth/store"
	authUCPkg "github.com/fekuna/ecoscan/internal/auth/usecase"
	"github.com/fekuna/ecoscan/internal/cart"
	cartRepoPkg "github.com/fekuna/ecoscan/internal/cart/repository"
	cartUCPkg "github.com/fekuna/ecoscan/internal/cart/usecase"
	"github.com/fekuna/ecoscan/internal/catalog"
	catRepoPkg "github.com/fekuna/ecoscan/internal/catalog/repository"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/ui"
	"go.uber.org/zap"
)

// app holds the wired components. Commands open it lazily so that --help
// never touches the session store.
type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	in     io.Reader
	out    io.Writer
	styles ui.Styles

	client *api.Client
	store  *store.BoltStore
	auth   auth.UseCase
	cart   cart.UseCase

	outMu     sync.Mutex
	closeOnce sync.Once
	closers   []func() error
}

func newApp(cfg *config.Config, log logger.ZapLogger, in io.Reader, out io.Writer) *app {
	return &app{
		cfg:    cfg,
		logger: log,
		in:     in,
		out:    out,
		styles: ui.DefaultStyles(),
	}
}

func (a *app) open() error {
	if a.auth != nil {
		return nil
	}

	// 3. Open the session store
	st, err := store.OpenBoltStore(a.cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	a.store = st
	a.closers = append(a.closers, st.Close)
	a.logger.Debug("Opened session store", zap.String("path", a.cfg.Store.Path))

	// 4. Initialize API client and repositories
	a.client = api.NewClient(a.cfg.Server.BaseURL, a.cfg.Server.HTTPTimeout, a.logger)
	authRepo := authRepoPkg.NewHTTPRepository(a.client)
	cartRepo := cartRepoPkg.NewHTTPRepository(a.client)

	// 5. Initialize UseCases
	a.auth = authUCPkg.NewAuthUseCase(authRepo, st, &cliNavigator{out: a.out}, a.logger)
	a.cart = cartUCPkg.NewCartUseCase(cartRepo, a.auth, a.logger)
	return nil
}

// openCatalog builds the configured product catalog.
func (a *app) openCatalog(ctx context.Context) (catalog.Repository, error) {
	src := a.cfg.Catalog
	switch src.Source {
	case "", "static":
		return catRepoPkg.NewMemoryRepository(catRepoPkg.DefaultProducts()), nil
	case "yaml":
		products, err := catRepoPkg.LoadYAML(src.Path)
		if err != nil {
			return nil, err
		}
		return catRepoPkg.NewMemoryRepository(products), nil
	case "sqlite":
		repo, err := a.openSQLCatalog(ctx)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "remote":
		if err := a.open(); err != nil {
			return nil, err
		}
		return catRepoPkg.NewRemoteRepository(a.client), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", src.Source)
}

func (a *app) openSQLCatalog(ctx context.Context) (*catRepoPkg.SQLRepository, error) {
	if a.cfg.Catalog.Path == "" {
		return nil, fmt.Errorf("CATALOG_PATH is required for the sqlite catalog")
	}
	db, err := catRepoPkg.OpenSQLite(a.cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	repo := catRepoPkg.NewSQLRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	a.logger.Debug("Opened sqlite catalog", zap.String("path", a.cfg.Catalog.Path))
	return repo, nil
}

func (a *app) close() {
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			if err := a.closers[i](); err != nil {
				a.logger.Warn("close", zap.Error(err))
			}
		}
	})
}

// print is safe to call from the scan result callback.
func (a *app) print(s string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprint(a.out, s)
}

// cliNavigator turns page redirects into hints on the terminal.
type cliNavigator struct {
	out io.Writer
}

func (n *cliNavigator) Redirect(page auth.Page) {
	switch page {
	case auth.PageLogin:
		fmt.Fprintln(n.out, "Please log in: ecoscan login --email <email> --password <password>")
	case auth.PageCart:
		fmt.Fprintln(n.out, "Run `ecoscan cart` to view your cart.")
	}
}

// loggedIn opens the app and checks for a usable session. Without one the
// navigator has already printed the login hint.
func (a *app) loggedIn(ctx context.Context) (bool, error) {
	if err := a.open(); err != nil {
		return false, err
	}
	_, ok := a.auth.RequireToken(ctx)
	return ok, nil
}
