package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const sessionPermissions = 0600

// ErrNoSession is returned when no session file exists, i.e. the user has
// not logged in on this machine.
var ErrNoSession = errors.New("no active session")

// Session is what survives between CLI invocations: who is logged in and
// the token the server issued. No key material is ever stored here; the
// core password is prompted again whenever the cipher is needed.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	Server    string    `json:"server"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager reads and writes the session file.
type Manager struct {
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Save writes the session with owner-only permissions.
func (m *Manager) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := os.WriteFile(m.path, data, sessionPermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads the stored session, or ErrNoSession if none exists.
func (m *Manager) Load() (*Session, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if s.Username == "" || s.Token == "" {
		return nil, ErrNoSession
	}

	return &s, nil
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
