package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/matespatagonicos/storefront/docs"
	"github.com/matespatagonicos/storefront/internal/api/handler"
	"github.com/matespatagonicos/storefront/internal/api/middleware"
	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Stores         ports.StoreFactory
	KV             ports.KeyValueStore
	Backend        string
	JWTSecret      string
	ClientTokenTTL time.Duration
	Logger         zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	lookup := func(ctx context.Context, clientID string) (*domain.Session, bool, error) {
		return d.Stores.Accounts(clientID).CurrentSession(ctx)
	}
	client := middleware.ClientIdentity(d.JWTSecret)
	withSession := middleware.RBAC(lookup)
	adminOnly := middleware.RBAC(lookup, domain.RoleAdmin)

	clients := handler.NewClientHandler(d.JWTSecret, d.ClientTokenTTL)
	catalog := handler.NewCatalogHandler(d.Stores)
	accounts := handler.NewAccountHandler(d.Stores)
	cart := handler.NewCartHandler(d.Stores)
	checkout := handler.NewCheckoutHandler(d.Stores)

	v1 := e.Group("/v1")

	// --- Client scopes ---
	v1.POST("/clients", clients.Create)

	// --- Catalog (reads are public) ---
	v1.GET("/products", catalog.List)
	v1.GET("/products/:id", catalog.Get)
	v1.POST("/products", catalog.Create, client, adminOnly)
	v1.PATCH("/products/:id", catalog.Update, client, adminOnly)
	v1.DELETE("/products/:id", catalog.Delete, client, adminOnly)

	// --- Auth ---
	v1.POST("/auth/register", accounts.Register, client)
	v1.POST("/auth/login", accounts.Login, client)
	v1.POST("/auth/logout", accounts.Logout, client)
	v1.GET("/auth/session", accounts.Session, client)

	// --- Admin user area ---
	v1.GET("/accounts", accounts.List, client, adminOnly)
	v1.PATCH("/accounts/:id/role", accounts.SetRole, client, adminOnly)
	v1.DELETE("/accounts/:id", accounts.Remove, client, adminOnly)

	// --- Cart ---
	v1.GET("/cart", cart.Get, client)
	v1.POST("/cart/items", cart.AddItem, client, withSession)
	v1.PUT("/cart/items/:id", cart.SetQuantity, client)
	v1.DELETE("/cart/items/:id", cart.RemoveItem, client)
	v1.DELETE("/cart", cart.Clear, client)
	v1.POST("/checkout", checkout.Checkout, client, withSession)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Backend, d.KV)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
