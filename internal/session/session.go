// Package session persists the client's identity between eventctl runs.
//
// The file holds two entries, "token" and "user". A file that cannot be
// parsed, or whose token has expired, is removed and the client continues
// logged out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

// Session is the persisted identity.
type Session struct {
	Token string           `json:"token"`
	User  domain.Principal `json:"user"`
	Email string           `json:"email,omitempty"`
}

type file struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

type storedUser struct {
	domain.Principal
	Email string `json:"email,omitempty"`
}

// Store reads and writes a session file.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// DefaultPath is ~/.eventhub/session.json, or ./.eventhub-session.json when
// the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventhub-session.json"
	}
	return filepath.Join(home, ".eventhub", "session.json")
}

func (s *Store) Path() string { return s.path }

// Save replaces the stored session. The file is written to a temp file and
// renamed so a crash never leaves half a session behind.
func (s *Store) Save(sess Session) error {
	user, err := json.Marshal(storedUser{Principal: sess.User, Email: sess.Email})
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	data, err := json.MarshalIndent(file{Token: sess.Token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// Restore returns the stored session, or nil when there is none. A corrupt
// file or an expired token is cleared and reported as no session.
func (s *Store) Restore() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	sess, ok := decode(data)
	if !ok || s.expired(sess.Token) {
		return nil, s.Clear()
	}
	return sess, nil
}

func decode(data []byte) (*Session, bool) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil || f.Token == "" || len(f.User) == 0 {
		return nil, false
	}

	var u storedUser
	if err := json.Unmarshal(f.User, &u); err != nil || !u.Authenticated() {
		return nil, false
	}
	return &Session{Token: f.Token, User: u.Principal, Email: u.Email}, true
}

// expired reports whether raw can no longer be used. The signature is not
// checked; the services do that.
func (s *Store) expired(raw string) bool {
	_, exp, err := token.Peek(raw)
	if err != nil {
		return true
	}
	return !exp.IsZero() && !s.now().Before(exp)
}

// Clear deletes both entries. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
