package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/api/metrics"
	"github.com/eventhub/platform/internal/core/access"
	"github.com/eventhub/platform/internal/core/domain"
)

// Authorize gates a route on the resolved principal. With no roles any
// authenticated caller passes; otherwise the caller's role must be listed.
func Authorize(allowed ...domain.Role) echo.MiddlewareFunc {
	roles := append([]domain.Role(nil), allowed...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := access.Authorize(Principal(c), roles...); err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(reason(err)).Inc()
				return err
			}
			return next(c)
		}
	}
}
