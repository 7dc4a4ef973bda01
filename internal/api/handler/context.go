package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/api/middleware"
	"github.com/eventhub/platform/internal/core/domain"
)

// actor returns the principal of an authorized route. Authorize has already
// rejected anonymous callers; the check here keeps handlers safe if a route
// is wired without it.
func actor(c echo.Context) (domain.Principal, error) {
	p := middleware.Principal(c)
	if !p.Authenticated() {
		return domain.Principal{}, domain.ErrPrincipalMissing
	}
	return p, nil
}
