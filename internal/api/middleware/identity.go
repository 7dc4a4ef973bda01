package middleware

import (
	"errors"
	"net/textproto"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/api/metrics"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

const resolvedKey = "identity.resolved"

var tokenHeaderKey = textproto.CanonicalMIMEHeaderKey(token.Header)

// TokenVerifier is the part of token.Codec the resolver needs.
type TokenVerifier interface {
	Verify(raw string) (domain.Principal, error)
}

// Identity resolves the caller from the x-auth-token header and stores the
// principal (and raw token) on the request context. No header means an
// anonymous principal; a header that fails verification ends the request.
// Register it globally so it runs before any Authorize.
func Identity(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get(resolvedKey) != nil {
				return next(c)
			}

			req := c.Request()
			p := domain.Anonymous()
			raw := req.Header.Get(token.Header)

			// Only an absent header is anonymous; an empty one is a missing token.
			if _, present := req.Header[tokenHeaderKey]; present {
				verified, err := v.Verify(raw)
				if err != nil {
					metrics.AuthFailuresTotal.WithLabelValues(reason(err)).Inc()
					return err
				}
				p = verified
			}

			ctx := domain.WithPrincipal(req.Context(), p)
			if raw != "" {
				ctx = domain.WithToken(ctx, raw)
			}
			c.SetRequest(req.WithContext(ctx))
			c.Set(resolvedKey, true)

			return next(c)
		}
	}
}

// Principal returns the principal resolved for c, or Anonymous.
func Principal(c echo.Context) domain.Principal {
	return domain.PrincipalFrom(c.Request().Context())
}

func reason(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "unknown"
}
