package api

import (
	"context"
	"fmt"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Service is the remote collaborator boundary. The sync engine and the
// mutation coordinator depend on this interface, never on the concrete
// HTTP client, so tests can substitute fakes.
type Service interface {
	// Register creates a server-side user. Passwords are hashed before
	// they are transmitted.
	Register(ctx context.Context, username, password, corePassword string) error

	// Login authenticates and returns the token for subsequent calls.
	Login(ctx context.Context, username, password, corePassword string) (string, error)

	// Verify reports whether the current token is still accepted.
	Verify(ctx context.Context) (bool, error)

	// QueryAccounts asks for everything newer than updateTime.
	QueryAccounts(ctx context.Context, updateTime int64) (*account.QueryData, error)

	// InsertAccount, UpdateAccount and DeleteAccount mutate the remote
	// record set. A non-zero envelope code is reported in the result, not
	// as an error; errors mean the call itself failed.
	InsertAccount(ctx context.Context, req account.InsertRequest) (*account.MutationResult, error)
	UpdateAccount(ctx context.Context, req account.UpdateRequest) (*account.MutationResult, error)
	DeleteAccount(ctx context.Context, req account.DeleteRequest) (*account.MutationResult, error)

	// SetToken installs the authentication token on the client.
	SetToken(token string)
}

// RemoteError is a non-success envelope code paired with the server's
// human-readable message.
type RemoteError struct {
	Code int
	Msg  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server error [%d]: %s", e.Code, e.Msg)
}
