package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/api"
	"github.com/elvisding0307/durian-cli/internal/app/client/cache"
	"github.com/elvisding0307/durian-cli/internal/app/client/config"
	"github.com/elvisding0307/durian-cli/internal/app/client/crypto"
	"github.com/elvisding0307/durian-cli/internal/app/client/mutate"
	"github.com/elvisding0307/durian-cli/internal/app/client/search"
	"github.com/elvisding0307/durian-cli/internal/app/client/session"
	syncengine "github.com/elvisding0307/durian-cli/internal/app/client/sync"
	"github.com/elvisding0307/durian-cli/internal/app/client/view"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// App wires the client subsystems together and exposes the operations
// the command layer calls. Collaborators are injected interfaces so the
// whole assembly is testable with fakes.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	api      api.Service
	store    cache.Store
	sessions *session.Manager
	search   *search.Engine

	current     *session.Session
	cipher      crypto.Cipher
	engine      *syncengine.Engine
	projector   *view.Projector
	coordinator *mutate.Coordinator
}

// New assembles an App from configuration. The returned App is locked:
// authenticated operations need Restore (or Login) first, and anything
// touching passwords additionally needs Unlock.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := cache.NewSQLiteStore(cfg.CacheDBPath)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log,
		api:      api.New(cfg.APIBaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second, log),
		store:    store,
		sessions: session.NewManager(cfg.SessionPath),
		search:   search.NewEngine(),
	}, nil
}

// Close releases the cache database.
func (a *App) Close() error {
	return a.store.Close()
}

// Restore loads the persisted session and installs its token, making
// authenticated calls possible without a fresh login.
func (a *App) Restore() error {
	s, err := a.sessions.Load()
	if err != nil {
		if err == session.ErrNoSession {
			return account.ErrNotAuthenticated
		}
		return err
	}

	a.current = s
	a.api.SetToken(s.Token)
	a.engine = syncengine.NewEngine(s.Username, a.api, a.store, a.log)
	return nil
}

// Unlock derives the cipher from the core password and arms the
// projector and the mutation coordinator. Must follow Restore or Login.
func (a *App) Unlock(corePassword string) error {
	if a.current == nil {
		return account.ErrNotAuthenticated
	}

	cipher, err := crypto.NewChaCha20Cipher(corePassword)
	if err != nil {
		return err
	}

	a.cipher = cipher
	a.projector = view.NewProjector(cipher, a.log)
	a.coordinator = mutate.NewCoordinator(a.api, cipher, a.engine, a.log)
	return nil
}

// Login authenticates against the server, persists the session and
// unlocks the cipher in one step.
func (a *App) Login(ctx context.Context, username, password, corePassword string) error {
	token, err := a.api.Login(ctx, username, password, corePassword)
	if err != nil {
		return err
	}

	s := &session.Session{
		Username:  username,
		Token:     token,
		Server:    a.cfg.APIBaseURL,
		CreatedAt: time.Now(),
	}
	if err := a.sessions.Save(s); err != nil {
		return err
	}

	a.current = s
	a.engine = syncengine.NewEngine(username, a.api, a.store, a.log)
	return a.Unlock(corePassword)
}

// Register creates a server-side user. It does not log in.
func (a *App) Register(ctx context.Context, username, password, corePassword string) error {
	return a.api.Register(ctx, username, password, corePassword)
}

// Verify checks the stored token against the server.
func (a *App) Verify(ctx context.Context) (bool, error) {
	if a.current == nil {
		return false, account.ErrNotAuthenticated
	}
	return a.api.Verify(ctx)
}

// Logout drops the persisted session. The per-owner cache stays; it is
// keyed by username and cannot leak to another account.
func (a *App) Logout() error {
	a.current = nil
	a.cipher = nil
	a.engine = nil
	a.projector = nil
	a.coordinator = nil
	a.api.SetToken("")
	return a.sessions.Clear()
}

// Username returns the logged-in user, empty when locked.
func (a *App) Username() string {
	if a.current == nil {
		return ""
	}
	return a.current.Username
}

// Query resolves the record set (from cache or server, see the sync
// engine) and projects it for display.
func (a *App) Query(ctx context.Context, forceRefresh bool) ([]account.DisplayRecord, error) {
	if a.engine == nil {
		return nil, account.ErrNotAuthenticated
	}
	if a.projector == nil {
		return nil, account.ErrCipherLocked
	}

	outcome, err := a.engine.Query(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	return a.projector.Project(outcome.Snapshot.Records)
}

// Filter narrows an already projected record set by keyword.
func (a *App) Filter(records []account.DisplayRecord, keyword string) []account.DisplayRecord {
	return a.search.Filter(records, keyword)
}

// Insert, Update and Delete go through the mutation coordinator, which
// encrypts outbound passwords and forces a resync afterwards.

func (a *App) Insert(ctx context.Context, website, accountName, password string) (*account.MutationResult, error) {
	if a.coordinator == nil {
		return nil, account.ErrCipherLocked
	}
	return a.coordinator.Insert(ctx, website, accountName, password)
}

func (a *App) Update(ctx context.Context, rid int64, website, accountName, password string) (*account.MutationResult, error) {
	if a.coordinator == nil {
		return nil, account.ErrCipherLocked
	}
	return a.coordinator.Update(ctx, rid, website, accountName, password)
}

func (a *App) Delete(ctx context.Context, rid int64) (*account.MutationResult, error) {
	if a.coordinator == nil {
		return nil, account.ErrCipherLocked
	}
	return a.coordinator.Delete(ctx, rid)
}

// ClearCache drops the current user's cached snapshot; the next query
// pulls from scratch.
func (a *App) ClearCache(ctx context.Context) error {
	if a.current == nil {
		return account.ErrNotAuthenticated
	}
	return a.store.Clear(ctx, a.current.Username)
}

// Watermark reports the current user's cache watermark.
func (a *App) Watermark(ctx context.Context) (int64, error) {
	if a.current == nil {
		return 0, account.ErrNotAuthenticated
	}
	return a.store.Watermark(ctx, a.current.Username)
}

// DebounceWindow is the configured delay for interactive search input.
func (a *App) DebounceWindow() time.Duration {
	return time.Duration(a.cfg.DebounceMillis) * time.Millisecond
}

// Describe returns a short human-readable summary for status output.
func (a *App) Describe() string {
	if a.current == nil {
		return "not logged in"
	}
	return fmt.Sprintf("%s @ %s", a.current.Username, a.current.Server)
}
