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

	_ "github.com/usermgmt/account-service/docs"
	"github.com/usermgmt/account-service/internal/api/handler"
	"github.com/usermgmt/account-service/internal/api/middleware"
	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// APIPrefix is the mount point of every account route.
const APIPrefix = "/api"

// Dependencies are the collaborators the router wires into handlers and
// middleware.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenAuthenticator
	Gate        ports.AccessGate
	// Readiness lists the dependencies /health/ready pings, by name.
	Readiness map[string]handler.Pinger
	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// Route declares one API endpoint and the capability it needs.
type Route struct {
	Method     string
	Path       string
	Capability domain.Capability
	Handler    echo.HandlerFunc
}

// Routes is the single table of API endpoints, relative to APIPrefix.
func Routes(auth *handler.AuthHandler, users *handler.UserHandler) []Route {
	return []Route{
		{http.MethodPost, "/auth/register", domain.CapabilityPublic, auth.Register},
		{http.MethodPost, "/auth/login", domain.CapabilityPublic, auth.Login},

		{http.MethodGet, "/users/me", domain.CapabilityAuthenticated, users.GetSelf},
		{http.MethodPut, "/users/me", domain.CapabilitySelf, users.UpdateSelf},

		{http.MethodGet, "/users", domain.CapabilityAdmin, users.List},
		{http.MethodPost, "/users", domain.CapabilityAdmin, users.Create},
		{http.MethodGet, "/users/:id", domain.CapabilityAdmin, users.Get},
		{http.MethodPut, "/users/:id", domain.CapabilityAdmin, users.Update},
		{http.MethodDelete, "/users/:id", domain.CapabilityAdmin, users.Delete},
		{http.MethodPost, "/users/:id/restore", domain.CapabilityAdmin, users.Restore},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig(deps.Registry)))

	// --- Account API: identity → gate → role check → handler ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	routes := Routes(authHandler, userHandler)

	e.Pre(middleware.CaseInsensitivePaths(literalSegments(routes)))

	api := e.Group(APIPrefix, middleware.Authenticate(deps.Tokens, deps.Log))
	for _, r := range routes {
		api.Add(r.Method, r.Path, r.Handler,
			middleware.Gate(deps.Gate, r.Capability, deps.Log),
			middleware.Require(r.Capability),
		)
	}

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", promHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// literalSegments collects the non-parameter path segments of the API routes.
func literalSegments(routes []Route) []string {
	out := strings.Split(strings.Trim(APIPrefix, "/"), "/")
	for _, r := range routes {
		for _, seg := range strings.Split(r.Path, "/") {
			if seg != "" && !strings.HasPrefix(seg, ":") {
				out = append(out, seg)
			}
		}
	}
	return out
}

func promConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "accounts"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func promHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
