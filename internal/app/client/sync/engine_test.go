package sync

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/api"
	"github.com/elvisding0307/durian-cli/internal/app/client/cache"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// fakeAPI scripts QueryAccounts; any other Service method is never called
// by the engine.
type fakeAPI struct {
	api.Service

	queryCalls    int
	lastUpdateReq int64
	data          *account.QueryData
	err           error
}

func (f *fakeAPI) QueryAccounts(ctx context.Context, updateTime int64) (*account.QueryData, error) {
	f.queryCalls++
	f.lastUpdateReq = updateTime
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, owner string, remote *fakeAPI) (*Engine, cache.Store) {
	t.Helper()
	store, err := cache.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewEngine(owner, remote, store, testLogger()), store
}

func TestPassiveQueryServesFromCache(t *testing.T) {
	remote := &fakeAPI{}
	engine, store := newTestEngine(t, "alice", remote)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, &account.Snapshot{
		Owner:     "alice",
		Watermark: 50,
		Records:   []account.Record{{RID: 1, Website: "example.com", Account: "bob", Password: "ENC1"}},
	}))

	outcome, err := engine.Query(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, account.ServedFromCache, outcome.Kind)
	assert.Equal(t, int64(50), outcome.Snapshot.Watermark)
	require.Len(t, outcome.Snapshot.Records, 1)

	// The server must not have been contacted.
	assert.Equal(t, 0, remote.queryCalls)
}

func TestPassiveQueryPullsWhenCacheEmpty(t *testing.T) {
	remote := &fakeAPI{data: &account.QueryData{
		PullMode:   account.PullModeAll,
		UpdateTime: 100,
		Accounts:   []account.Record{{RID: 1, Website: "example.com", Account: "bob", Password: "ENC1"}},
	}}
	engine, store := newTestEngine(t, "alice", remote)
	ctx := context.Background()

	outcome, err := engine.Query(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, account.FullReplace, outcome.Kind)
	assert.Equal(t, 1, remote.queryCalls)
	assert.Equal(t, int64(0), remote.lastUpdateReq)

	wm, err := store.Watermark(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), wm)
}

func TestForcedQueryFullReplace(t *testing.T) {
	remote := &fakeAPI{}
	engine, store := newTestEngine(t, "alice", remote)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, &account.Snapshot{
		Owner:     "alice",
		Watermark: 100,
		Records: []account.Record{
			{RID: 1, Website: "old.com", Account: "a", Password: "OLD"},
			{RID: 2, Website: "gone.com", Account: "b", Password: "GONE"},
		},
	}))

	remote.data = &account.QueryData{
		PullMode:   account.PullModeAll,
		UpdateTime: 200,
		Accounts: []account.Record{
			{RID: 1, Website: "new.com", Account: "a", Password: "NEW"},
			{RID: 3, Website: "added.com", Account: "c", Password: "ADD"},
		},
	}

	outcome, err := engine.Query(ctx, true)
	require.NoError(t, err)

	// The request carried the previous watermark.
	assert.Equal(t, int64(100), remote.lastUpdateReq)

	assert.Equal(t, account.FullReplace, outcome.Kind)
	assert.Equal(t, int64(200), outcome.Snapshot.Watermark)
	require.Len(t, outcome.Snapshot.Records, 2)

	// rid 2 must be gone: no merging with the prior record set.
	snap, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, snap.Records, 2)
	for _, rec := range snap.Records {
		assert.NotEqual(t, int64(2), rec.RID)
	}
}

func TestForcedQueryNoChange(t *testing.T) {
	remote := &fakeAPI{}
	engine, store := newTestEngine(t, "alice", remote)
	ctx := context.Background()

	before := &account.Snapshot{
		Owner:     "alice",
		Watermark: 100,
		Records:   []account.Record{{RID: 1, Website: "example.com", Account: "bob", Password: "ENC1"}},
	}
	require.NoError(t, store.Replace(ctx, before))

	remote.data = &account.QueryData{PullMode: account.PullModeNothing, UpdateTime: 100}

	outcome, err := engine.Query(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, account.NoChange, outcome.Kind)

	// Cache is identical to what it was before the call.
	after, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before.Watermark, after.Watermark)
	assert.Equal(t, before.Records, after.Records)
}

func TestRemoteErrorLeavesCacheUntouched(t *testing.T) {
	remote := &fakeAPI{err: errors.New("connection refused")}
	engine, store := newTestEngine(t, "alice", remote)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, &account.Snapshot{
		Owner:     "alice",
		Watermark: 100,
		Records:   []account.Record{{RID: 1, Website: "example.com", Account: "bob", Password: "ENC1"}},
	}))

	_, err := engine.Query(ctx, true)
	require.Error(t, err)

	snap, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Watermark)
	require.Len(t, snap.Records, 1)
}

func TestMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		data *account.QueryData
	}{
		{
			name: "unknown pull mode",
			data: &account.QueryData{PullMode: "PULL_UPDATED", UpdateTime: 200},
		},
		{
			name: "full pull without update_time",
			data: &account.QueryData{PullMode: account.PullModeAll},
		},
		{
			name: "update_time behind watermark",
			data: &account.QueryData{PullMode: account.PullModeAll, UpdateTime: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeAPI{data: tt.data}
			engine, store := newTestEngine(t, "alice", remote)
			ctx := context.Background()

			require.NoError(t, store.Replace(ctx, &account.Snapshot{
				Owner:     "alice",
				Watermark: 100,
				Records:   []account.Record{{RID: 1, Website: "example.com", Account: "bob", Password: "ENC1"}},
			}))

			_, err := engine.Query(ctx, true)
			require.ErrorIs(t, err, account.ErrMalformedResponse)

			// Ambiguous responses are never partially applied.
			snap, err := store.Load(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, int64(100), snap.Watermark)
			require.Len(t, snap.Records, 1)
		})
	}
}

func TestNoChangeWithEmptyCache(t *testing.T) {
	remote := &fakeAPI{data: &account.QueryData{PullMode: account.PullModeNothing}}
	engine, _ := newTestEngine(t, "alice", remote)

	outcome, err := engine.Query(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, account.NoChange, outcome.Kind)
	assert.True(t, outcome.Snapshot.Empty())
}
