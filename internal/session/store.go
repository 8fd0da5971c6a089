// Package session owns "who is logged in": the persisted session store,
// the in-memory session manager, and every mutation of both. No other
// package writes the store or the client's bearer token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/provhub/provctl/internal/authz"
)

// Storage entry names. The session is kept as two independent entries,
// matching the backend's expectations for the persisted layout.
const (
	tokenEntry = "token"
	userEntry  = "user.json"
)

// Identity is the minimal authenticated-user record held for the session's
// duration. Name is deliberately absent: login does not return one, and
// displays fall back to the email.
type Identity struct {
	ID    int        `json:"id"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

// Valid reports whether the identity satisfies the session invariants: a
// role from the closed enum and a usable id.
func (id Identity) Valid() bool {
	return id.ID > 0 && id.Role.Valid()
}

// ErrNoSession is returned by Load when either entry is missing.
var ErrNoSession = errors.New("session: no stored session")

// Store persists the session on disk under a single directory: the raw
// bearer token and the serialized identity as separate entries. Both are
// written and cleared together; Load refuses half a session.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user session directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".provctl"), nil
}

// Save persists the token and identity. The identity is written first so
// an interrupted save never leaves a token that Load would pair with a
// stale or missing identity.
func (s *Store) Save(token string, id Identity) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userEntry), data, 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenEntry), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Load reads the persisted session. Both entries must exist and the
// identity must parse and validate; otherwise ErrNoSession (absent) or a
// parse error (corrupt) is returned.
func (s *Store) Load() (token string, id Identity, err error) {
	tokenBytes, err := os.ReadFile(filepath.Join(s.dir, tokenEntry))
	if err != nil {
		if os.IsNotExist(err) {
			return "", Identity{}, ErrNoSession
		}
		return "", Identity{}, fmt.Errorf("read token: %w", err)
	}

	userBytes, err := os.ReadFile(filepath.Join(s.dir, userEntry))
	if err != nil {
		if os.IsNotExist(err) {
			return "", Identity{}, ErrNoSession
		}
		return "", Identity{}, fmt.Errorf("read identity: %w", err)
	}

	if err := json.Unmarshal(userBytes, &id); err != nil {
		return "", Identity{}, fmt.Errorf("parse identity: %w", err)
	}
	if !id.Valid() {
		return "", Identity{}, fmt.Errorf("parse identity: missing id or role")
	}

	token = string(tokenBytes)
	if token == "" {
		return "", Identity{}, ErrNoSession
	}
	return token, id, nil
}

// LoadIdentity reads and parses just the identity entry. Used as the
// storage fallback for id resolution; never returns a partial record.
func (s *Store) LoadIdentity() (Identity, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userEntry))
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, ErrNoSession
		}
		return Identity{}, fmt.Errorf("read identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("parse identity: %w", err)
	}
	return id, nil
}

// Clear removes both entries. Missing entries are not an error, so Clear
// is safe to call on an already-empty store.
func (s *Store) Clear() error {
	var firstErr error
	for _, name := range []string{tokenEntry, userEntry} {
		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return firstErr
}
