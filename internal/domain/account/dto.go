package account

// Pull modes reported by the server on GET /v1/account.
const (
	PullModeAll     = "PULL_ALL"
	PullModeNothing = "PULL_NOTHING"
)

// QueryData is the data payload of a successful pull response.
type QueryData struct {
	PullMode   string   `json:"pull_mode"`
	UpdateTime int64    `json:"update_time"`
	Accounts   []Record `json:"accounts"`
}

// InsertRequest is the body of POST /v1/account. Password must already be
// ciphertext when it reaches the wire.
type InsertRequest struct {
	Website  string `json:"website"`
	Account  string `json:"account"`
	Password string `json:"password"`
}

// UpdateRequest is the body of PUT /v1/account.
type UpdateRequest struct {
	RID      int64  `json:"rid"`
	Website  string `json:"website"`
	Account  string `json:"account"`
	Password string `json:"password"`
}

// DeleteRequest is the body of DELETE /v1/account.
type DeleteRequest struct {
	RID int64 `json:"rid"`
}

// LoginData is the data payload of a successful login response.
type LoginData struct {
	Token string `json:"token"`
}
