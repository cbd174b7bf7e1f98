package types

// ContextKey namespaces values the command tree stores in the context.
type ContextKey string

// ClientAppKey carries the assembled *client.App from root setup into
// the RunE handlers.
const ClientAppKey ContextKey = "durian.app"
