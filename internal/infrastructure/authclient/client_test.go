package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

func TestFetchProfile_Success(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authentication/user/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotToken = r.Header.Get(token.Header)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Ada","surname":"Lovelace","email":"ada@example.com"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, zerolog.Nop())
	ctx := domain.WithToken(context.Background(), "caller-token")

	got := c.FetchProfile(ctx, 7)
	if got == nil {
		t.Fatalf("expected snippet, got nil")
	}
	want := domain.UserSnippet{ID: 7, Name: "Ada", Surname: "Lovelace", Email: "ada@example.com"}
	if *got != want {
		t.Fatalf("expected %+v, got %+v", want, *got)
	}
	if gotToken != "caller-token" {
		t.Fatalf("expected token to be forwarded, got %q", gotToken)
	}
}

func TestFetchProfile_AnonymousCallSendsNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header[http.CanonicalHeaderKey(token.Header)]; ok {
			t.Fatalf("expected no token header")
		}
		_, _ = w.Write([]byte(`{"id":1,"name":"Ada"}`))
	}))
	defer srv.Close()

	if New(srv.URL, time.Second, zerolog.Nop()).FetchProfile(context.Background(), 1) == nil {
		t.Fatalf("expected snippet")
	}
}

func TestFetchProfile_FailuresReturnNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"isError":true,"error":{"code":404,"message":"user-not-found"}}`))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}},
		{"wrong user", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":99,"name":"Mallory"}`))
		}},
		{"empty object", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if got := New(srv.URL, time.Second, zerolog.Nop()).FetchProfile(context.Background(), 5); got != nil {
				t.Fatalf("expected nil, got %+v", got)
			}
		})
	}
}

func TestFetchProfile_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if got := New(url, time.Second, zerolog.Nop()).FetchProfile(context.Background(), 5); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestFetchProfile_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	got := New(srv.URL, 50*time.Millisecond, zerolog.Nop()).FetchProfile(context.Background(), 5)
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("lookup not bounded by timeout: %s", elapsed)
	}
}
