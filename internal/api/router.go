package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/eventhub/platform/internal/api/docs"
	"github.com/eventhub/platform/internal/api/handler"
	"github.com/eventhub/platform/internal/api/middleware"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
	"github.com/eventhub/platform/internal/pkg/token"
)

// Common holds what both services wire the same way.
type Common struct {
	Verifier    middleware.TokenVerifier
	Checks      map[string]handler.Check
	CORSOrigins []string
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewAuthRouter builds the auth service's Echo instance.
func NewAuthRouter(svc ports.AuthService, deps Common) *echo.Echo {
	e := newEcho("auth", docs.SwaggerInfoAuth.InstanceName(), deps)

	authHandler := handler.NewAuthHandler(svc)
	members := middleware.Authorize(domain.RoleUser, domain.RoleAdmin)

	g := e.Group("/authentication")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.PUT("/update", authHandler.Update, members)
	g.GET("/user/:id", authHandler.GetUser)

	return e
}

// NewEventRouter builds the event service's Echo instance.
func NewEventRouter(svc ports.EventService, deps Common) *echo.Echo {
	e := newEcho("events", docs.SwaggerInfoEvents.InstanceName(), deps)

	eventHandler := handler.NewEventHandler(svc)
	members := middleware.Authorize(domain.RoleUser, domain.RoleAdmin)

	g := e.Group("/api/events")
	g.GET("", eventHandler.List)
	g.GET("/", eventHandler.List)
	g.GET("/:id", eventHandler.Get)
	g.GET("/:id/comments", eventHandler.ListComments)

	g.POST("/create", eventHandler.Create, members)
	g.PUT("/:id", eventHandler.Update, members)
	g.DELETE("/:id", eventHandler.Delete, members)
	g.POST("/:id/comment", eventHandler.AddComment, members)
	g.POST("/:id/participant", eventHandler.Join, members)
	g.DELETE("/:id/participant", eventHandler.Leave, members)

	return e
}

func newEcho(subsystem, docsInstance string, deps Common) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, token.Header},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  subsystem,
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
	}))
	e.Use(middleware.Identity(deps.Verifier))

	// --- Probes, metrics and docs (identity is resolved but never required) ---
	health := handler.NewHealthHandler(deps.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docsInstance)))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
