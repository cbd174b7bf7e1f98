package sync

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/api"
	"github.com/elvisding0307/durian-cli/internal/app/client/cache"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Engine decides whether a query is answered from the local cache or by
// pulling from the server, and reconciles accepted pulls back into the
// cache. It is the cache's only writer.
type Engine struct {
	owner string
	api   api.Service
	store cache.Store
	log   *slog.Logger

	// mu serializes pulls. Overlapping queries would otherwise race on
	// watermark-read vs. replace; last-write-wins is safe but pointless
	// work, so concurrent pulls simply queue.
	mu sync.Mutex
}

func NewEngine(owner string, apiService api.Service, store cache.Store, log *slog.Logger) *Engine {
	return &Engine{
		owner: owner,
		api:   apiService,
		store: store,
		log:   log,
	}
}

// Query implements the cache-or-pull decision.
//
// With forceRefresh false and a usable cache, the snapshot is served
// locally and the server is not contacted. Otherwise the server is asked
// for everything newer than our watermark; PULL_NOTHING leaves the cache
// byte-for-byte untouched, PULL_ALL replaces it wholesale. Any error on
// the way leaves the cache exactly as it was.
func (e *Engine) Query(ctx context.Context, forceRefresh bool) (*account.PullOutcome, error) {
	if !forceRefresh {
		snap, err := e.store.Load(ctx, e.owner)
		if err != nil {
			return nil, fmt.Errorf("failed to load cache: %w", err)
		}
		if !snap.Empty() {
			e.log.Debug("query served from cache", "owner", e.owner, "watermark", snap.Watermark, "records", len(snap.Records))
			return &account.PullOutcome{Kind: account.ServedFromCache, Snapshot: snap}, nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	watermark, err := e.store.Watermark(ctx, e.owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read watermark: %w", err)
	}

	data, err := e.api.QueryAccounts(ctx, watermark)
	if err != nil {
		return nil, err
	}

	switch data.PullMode {
	case account.PullModeNothing:
		e.log.Debug("server reports no changes", "owner", e.owner, "watermark", watermark)
		snap, err := e.store.Load(ctx, e.owner)
		if err != nil {
			return nil, fmt.Errorf("failed to load cache: %w", err)
		}
		if snap == nil {
			snap = &account.Snapshot{Owner: e.owner, Watermark: watermark}
		}
		return &account.PullOutcome{Kind: account.NoChange, Snapshot: snap}, nil

	case account.PullModeAll:
		if data.UpdateTime <= 0 {
			return nil, fmt.Errorf("%w: full pull without update_time", account.ErrMalformedResponse)
		}
		if data.UpdateTime < watermark {
			return nil, fmt.Errorf("%w: update_time %d behind watermark %d", account.ErrMalformedResponse, data.UpdateTime, watermark)
		}

		snap := &account.Snapshot{
			Owner:     e.owner,
			Watermark: data.UpdateTime,
			Records:   data.Accounts,
		}
		if err := e.store.Replace(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to replace cache: %w", err)
		}

		// Serve what was actually persisted, not what we think we wrote.
		stored, err := e.store.Load(ctx, e.owner)
		if err != nil {
			return nil, fmt.Errorf("failed to reload cache: %w", err)
		}
		if stored == nil {
			stored = snap
		}

		e.log.Info("cache replaced", "owner", e.owner, "watermark", stored.Watermark, "records", len(stored.Records))
		return &account.PullOutcome{Kind: account.FullReplace, Snapshot: stored}, nil

	default:
		return nil, fmt.Errorf("%w: unknown pull_mode %q", account.ErrMalformedResponse, data.PullMode)
	}
}
