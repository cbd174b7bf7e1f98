package cache

import (
	"context"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Store persists the last accepted snapshot per owner. The sync engine is
// its only writer; everything else reads through it.
//
// Password fields are stored exactly as received, i.e. ciphertext only.
// Nothing in this package ever sees plaintext.
type Store interface {
	// Load returns the owner's snapshot, or nil when no usable cache
	// exists for that owner. A snapshot stored for a different owner is
	// never returned.
	Load(ctx context.Context, owner string) (*account.Snapshot, error)

	// Replace atomically swaps the owner's snapshot for the given one.
	// Readers observe either the old or the new snapshot, never a mix.
	Replace(ctx context.Context, snapshot *account.Snapshot) error

	// Watermark returns the owner's last accepted watermark, 0 when the
	// owner has no cache.
	Watermark(ctx context.Context, owner string) (int64, error)

	// Clear drops the owner's snapshot and watermark.
	Clear(ctx context.Context, owner string) error

	// Close releases the underlying database.
	Close() error
}
