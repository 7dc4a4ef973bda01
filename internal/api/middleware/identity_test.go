package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

type stubVerifier struct {
	verifyFn func(raw string) (domain.Principal, error)
	calls    int
}

func (s *stubVerifier) Verify(raw string) (domain.Principal, error) {
	s.calls++
	return s.verifyFn(raw)
}

func TestIdentity_ValidToken(t *testing.T) {
	e := echo.New()
	codec := token.NewCodec("secret")
	want := domain.Principal{UserID: 7, Role: domain.RoleAdmin, Name: "Ada", Surname: "Lovelace"}
	signed, err := codec.Issue(want, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(token.Header, signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Identity(codec)(func(c echo.Context) error {
		called = true
		if got := Principal(c); got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
		if domain.TokenFrom(c.Request().Context()) != signed {
			t.Fatalf("raw token not propagated")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentity_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	v := &stubVerifier{verifyFn: func(string) (domain.Principal, error) {
		t.Fatalf("verifier should not be called")
		return domain.Principal{}, nil
	}}
	handler := Identity(v)(func(c echo.Context) error {
		if Principal(c).Authenticated() {
			t.Fatalf("expected anonymous principal")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentity_EmptyHeaderIsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(token.Header, "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(token.NewCodec("secret"))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, token.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestIdentity_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(token.Header, "not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(token.NewCodec("secret"))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, token.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized kind")
	}
}

func TestIdentity_NoSecretConfigured(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(token.Header, "a.b.c")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(token.NewCodec(""))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, token.ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestIdentity_ResolvesOnce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(token.Header, "raw")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	v := &stubVerifier{verifyFn: func(string) (domain.Principal, error) {
		return domain.Principal{UserID: 1, Role: domain.RoleUser}, nil
	}}
	mw := Identity(v)
	handler := mw(mw(func(c echo.Context) error { return nil }))

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v.calls != 1 {
		t.Fatalf("expected 1 verification, got %d", v.calls)
	}
}
