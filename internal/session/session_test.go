package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func issue(t *testing.T, p domain.Principal, ttl time.Duration) string {
	t.Helper()
	raw, err := token.NewCodec("session-secret").Issue(p, ttl)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return raw
}

func TestStore_SaveRestore(t *testing.T) {
	s := newStore(t)
	user := domain.Principal{UserID: 5, Role: domain.RoleUser, Name: "Grace", Surname: "Hopper"}
	want := Session{
		Token: issue(t, user, time.Hour),
		User:  user,
		Email: "grace@example.com",
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	got, err := s.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStore_RestoreMissing(t *testing.T) {
	got, err := newStore(t).Restore()
	if err != nil || got != nil {
		t.Fatalf("expected no session, got %+v (%v)", got, err)
	}
}

func TestStore_RestoreCorruptClears(t *testing.T) {
	cases := map[string]string{
		"not json":     "{token:",
		"no token":     `{"token":"","user":{"userId":1,"role":"user"}}`,
		"user is text": `{"token":"t","user":"{broken"}`,
		"anonymous":    `{"token":"t","user":{"userId":0}}`,
		"missing user": `{"token":"t"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(s.Path(), []byte(body), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}

			got, err := s.Restore()
			if err != nil || got != nil {
				t.Fatalf("expected no session, got %+v (%v)", got, err)
			}
			if _, err := os.Stat(s.Path()); !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("expected file removed, got %v", err)
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)
	if err := s.Clear(); err != nil {
		t.Fatalf("clear on empty: %v", err)
	}

	if err := s.Save(Session{Token: "t", User: domain.Principal{UserID: 1, Role: domain.RoleUser}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := s.Restore()
	if err != nil || got != nil {
		t.Fatalf("expected logged out, got %+v (%v)", got, err)
	}
}

func TestStore_RestoreExpiredClears(t *testing.T) {
	s := newStore(t)
	user := domain.Principal{UserID: 5, Role: domain.RoleUser}
	if err := s.Save(Session{Token: issue(t, user, time.Hour), User: user}); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	got, err := s.Restore()
	if err != nil || got != nil {
		t.Fatalf("expected expired session to be dropped, got %+v (%v)", got, err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected file removed, got %v", err)
	}
}

func TestStore_RestoreUnparsableTokenClears(t *testing.T) {
	s := newStore(t)
	if err := s.Save(Session{Token: "not-a-jwt", User: domain.Principal{UserID: 5, Role: domain.RoleUser}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Restore()
	if err != nil || got != nil {
		t.Fatalf("expected no session, got %+v (%v)", got, err)
	}
}
