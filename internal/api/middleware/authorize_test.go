package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/core/domain"
)

func contextWith(e *echo.Echo, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p != nil {
		req = req.WithContext(domain.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthorize_AllowsRole(t *testing.T) {
	e := echo.New()
	c, rec := contextWith(e, &domain.Principal{UserID: 3, Role: domain.RoleAdmin})

	handler := Authorize(domain.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_RejectsRole(t *testing.T) {
	e := echo.New()
	c, _ := contextWith(e, &domain.Principal{UserID: 5, Role: domain.RoleUser})

	handler := Authorize(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAuthorize_RejectsAnonymous(t *testing.T) {
	e := echo.New()

	for _, p := range []*domain.Principal{nil, {UserID: 0, Role: domain.RoleAdmin}} {
		c, _ := contextWith(e, p)
		handler := Authorize()(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})
		if err := handler(c); !errors.Is(err, domain.ErrPrincipalMissing) {
			t.Fatalf("expected ErrPrincipalMissing, got %v", err)
		}
	}
}

func TestAuthorize_NoRolesAnyPrincipal(t *testing.T) {
	e := echo.New()
	c, _ := contextWith(e, &domain.Principal{UserID: 11})

	called := false
	handler := Authorize()(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil || !called {
		t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
	}
}
