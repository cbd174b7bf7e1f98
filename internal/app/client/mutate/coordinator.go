package mutate

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/api"
	"github.com/elvisding0307/durian-cli/internal/app/client/crypto"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Syncer is the slice of the sync engine the coordinator needs.
type Syncer interface {
	Query(ctx context.Context, forceRefresh bool) (*account.PullOutcome, error)
}

// Coordinator wraps the three remote mutations. Passwords are encrypted
// before they leave the process, and every attempted mutation is followed
// by a forced resync before control returns, whether the mutation
// succeeded or not. Local state is never trusted after a write.
type Coordinator struct {
	api    api.Service
	cipher crypto.Cipher
	syncer Syncer
	log    *slog.Logger
}

func NewCoordinator(apiService api.Service, cipher crypto.Cipher, syncer Syncer, log *slog.Logger) *Coordinator {
	return &Coordinator{
		api:    apiService,
		cipher: cipher,
		syncer: syncer,
		log:    log,
	}
}

// Insert creates a record. The account field may be empty; website and
// password may not.
func (c *Coordinator) Insert(ctx context.Context, website, accountName, password string) (*account.MutationResult, error) {
	if website == "" {
		return nil, account.ErrEmptyWebsite
	}
	if password == "" {
		return nil, account.ErrEmptyPassword
	}

	ciphertext, err := c.cipher.Encrypt(password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt password: %w", err)
	}

	res, err := c.api.InsertAccount(ctx, account.InsertRequest{
		Website:  website,
		Account:  accountName,
		Password: ciphertext,
	})
	return c.finish(ctx, "insert", res, err)
}

// Update rewrites the record identified by rid.
func (c *Coordinator) Update(ctx context.Context, rid int64, website, accountName, password string) (*account.MutationResult, error) {
	if rid <= 0 {
		return nil, account.ErrInvalidRecordID
	}
	if website == "" {
		return nil, account.ErrEmptyWebsite
	}
	if password == "" {
		return nil, account.ErrEmptyPassword
	}

	ciphertext, err := c.cipher.Encrypt(password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt password: %w", err)
	}

	res, err := c.api.UpdateAccount(ctx, account.UpdateRequest{
		RID:      rid,
		Website:  website,
		Account:  accountName,
		Password: ciphertext,
	})
	return c.finish(ctx, "update", res, err)
}

// Delete removes the record identified by rid. Whether rid still exists
// is the server's call, surfaced through the result message.
func (c *Coordinator) Delete(ctx context.Context, rid int64) (*account.MutationResult, error) {
	if rid <= 0 {
		return nil, account.ErrInvalidRecordID
	}

	res, err := c.api.DeleteAccount(ctx, account.DeleteRequest{RID: rid})
	return c.finish(ctx, "delete", res, err)
}

// finish runs the unconditional forced resync once the remote call has
// completed, then hands back the mutation's own outcome. The resync is
// sequenced strictly before returning so a caller awaiting the mutation
// sees a cache that already reflects the server.
func (c *Coordinator) finish(ctx context.Context, op string, res *account.MutationResult, err error) (*account.MutationResult, error) {
	if _, syncErr := c.syncer.Query(ctx, true); syncErr != nil {
		c.log.Warn("post-mutation resync failed", "op", op, "error", syncErr)
		if err == nil {
			err = fmt.Errorf("%s applied but resync failed: %w", op, syncErr)
		}
	}

	if err != nil {
		return nil, err
	}
	if !res.OK {
		c.log.Info("mutation rejected by server", "op", op, "message", res.Message)
	}
	return res, nil
}
