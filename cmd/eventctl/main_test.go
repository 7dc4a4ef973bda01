package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
	"github.com/eventhub/platform/internal/session"
)

// fakeServices answers login and one event mutation, recording the token it
// was sent.
func fakeServices(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var seen string

	raw, err := token.NewCodec("test-secret").Issue(
		domain.Principal{UserID: 8, Role: domain.RoleUser, Name: "Ada", Surname: "Lovelace"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /authentication/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"userId": 8, "email": "ada@example.com", "name": "Ada", "surname": "Lovelace", "token": raw,
		})
	})
	mux.HandleFunc("POST /api/events/{id}/participant", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(token.Header)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"participant":{"id":"p1","eventId":"`+r.PathValue("id")+`","userId":8}}`)
	})
	mux.HandleFunc("GET /api/events", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(token.Header)
		_, _ = io.WriteString(w, `{"events":[]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &seen
}

func runCLI(t *testing.T, srv *httptest.Server, sessionPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{"--auth-url", srv.URL, "--event-url", srv.URL, "--session", sessionPath}, args...)
	err := run(context.Background(), full, &out, io.Discard)
	return out.String(), err
}

func TestSessionLifecycle(t *testing.T) {
	srv, seen := fakeServices(t)
	path := filepath.Join(t.TempDir(), "session.json")

	out, err := runCLI(t, srv, path, "whoami")
	if err != nil || strings.TrimSpace(out) != "anonymous" {
		t.Fatalf("expected anonymous, got %q (%v)", out, err)
	}

	if _, err := runCLI(t, srv, path, "login", "--email", "ada@example.com", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, err = runCLI(t, srv, path, "whoami")
	if err != nil || !strings.Contains(out, "Ada Lovelace (id 8, role user)") {
		t.Fatalf("expected restored principal, got %q (%v)", out, err)
	}

	if _, err := runCLI(t, srv, path, "join", "evt-1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if *seen == "" {
		t.Fatal("expected the stored token to be attached")
	}

	if _, err := runCLI(t, srv, path, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	out, _ = runCLI(t, srv, path, "whoami")
	if strings.TrimSpace(out) != "anonymous" {
		t.Fatalf("expected anonymous after logout, got %q", out)
	}
}

func TestCorruptSessionIsLoggedOut(t *testing.T) {
	srv, _ := fakeServices(t)
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runCLI(t, srv, path, "whoami")
	if err != nil || strings.TrimSpace(out) != "anonymous" {
		t.Fatalf("expected anonymous, got %q (%v)", out, err)
	}

	if _, err := runCLI(t, srv, path, "join", "evt-1"); err != errNotLoggedIn {
		t.Fatalf("expected errNotLoggedIn, got %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	srv, _ := fakeServices(t)
	if _, err := runCLI(t, srv, filepath.Join(t.TempDir(), "s.json"), "dance"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestExpiredSessionReadsAnonymously(t *testing.T) {
	srv, seen := fakeServices(t)
	path := filepath.Join(t.TempDir(), "session.json")

	user := domain.Principal{UserID: 8, Role: domain.RoleUser, Name: "Ada"}
	raw, err := token.NewCodec("test-secret").Issue(user, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := session.NewStore(path).Save(session.Session{Token: raw, User: user}); err != nil {
		t.Fatalf("save: %v", err)
	}

	*seen = "unset"
	if _, err := runCLI(t, srv, path, "events"); err != nil {
		t.Fatalf("events: %v", err)
	}
	if *seen != "" {
		t.Fatalf("expected no token on an expired session, got %q", *seen)
	}

	out, _ := runCLI(t, srv, path, "whoami")
	if strings.TrimSpace(out) != "anonymous" {
		t.Fatalf("expected anonymous, got %q", out)
	}
}
