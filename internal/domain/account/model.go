package account

// Record is a single credential entry as it is cached and transmitted.
// Password always holds ciphertext here; the only plaintext form of a
// record is DisplayRecord.
type Record struct {
	RID      int64  `json:"rid"`
	Website  string `json:"website"`
	Account  string `json:"account"`
	Password string `json:"password"` // ciphertext
}

// Snapshot is the full cached record set of one owner as of Watermark.
// A snapshot is only ever replaced wholesale, never patched.
type Snapshot struct {
	Owner     string   `json:"owner"`
	Watermark int64    `json:"watermark"`
	Records   []Record `json:"records"`
}

// Empty reports whether the snapshot carries no records.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Records) == 0
}

// DisplayRecord is the UI-facing projection of a Record with the password
// decrypted. It lives only in memory for the current render cycle.
type DisplayRecord struct {
	RID      int64  `json:"rid"`
	Website  string `json:"website"`
	Account  string `json:"account"`
	Password string `json:"password"` // plaintext, or ciphertext fallback
}

// PullKind classifies how a query was satisfied.
type PullKind int

const (
	// ServedFromCache means the local snapshot answered the query and the
	// server was not contacted.
	ServedFromCache PullKind = iota
	// FullReplace means the server returned a full record set that has
	// replaced the cached snapshot.
	FullReplace
	// NoChange means the server had nothing newer than our watermark and
	// the cache was left untouched.
	NoChange
)

func (k PullKind) String() string {
	switch k {
	case ServedFromCache:
		return "served_from_cache"
	case FullReplace:
		return "full_replace"
	case NoChange:
		return "no_change"
	default:
		return "unknown"
	}
}

// PullOutcome is the result of a sync query: how it was resolved and the
// snapshot that is now authoritative.
type PullOutcome struct {
	Kind     PullKind
	Snapshot *Snapshot
}

// MutationResult reports the server's verdict on an insert/update/delete.
// OK mirrors code == 0 in the response envelope.
type MutationResult struct {
	OK      bool
	Message string
}
