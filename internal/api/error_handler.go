package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventhub/platform/internal/core/domain"
)

// errorBody is the inner error object of the envelope.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope shared by both services:
// {"isError": true, "success": {}, "error": {"code": 404, "message": "..."}}.
type errorResponse struct {
	IsError bool      `json:"isError"`
	Success struct{}  `json:"success"`
	Error   errorBody `json:"error"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k domain.Kind) int {
	switch k {
	case domain.KindInvalidParameter, domain.KindBusiness:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPErrorHandler returns the single translation boundary of a service.
// Status is chosen from the error kind only; messages are passed through for
// classified errors and replaced for everything else.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{IsError: true, Error: errorBody{Code: code, Message: msg}}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var de *domain.Error
	if errors.As(err, &de) {
		code := StatusFor(de.Kind)
		if de.Kind == domain.KindInternal {
			logUnexpected(log, c, err)
		}
		return code, de.Message
	}

	// Echo's own errors (bind failures, unknown routes, method not allowed).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "request-timeout"
	}

	logUnexpected(log, c, err)
	return http.StatusInternalServerError, "internal-error"
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
