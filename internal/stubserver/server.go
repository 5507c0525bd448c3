// Package stubserver is an in-memory implementation of the backend
// contract the console consumes. It exists for local development and for
// round-trip tests; it keeps no state beyond its own process.
package stubserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// Options configures the fixture.
type Options struct {
	JWTSecret string
	// TokenTTL bounds issued tokens; defaults to 24h.
	TokenTTL time.Duration
	// AdminUsername/AdminPassword seed the initial admin account when both
	// are non-empty.
	AdminUsername string
	AdminPassword string
	Logger        zerolog.Logger
}

// Server hosts the fixture routes over an in-memory store.
type Server struct {
	e         *echo.Echo
	store     *memStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger

	ordersCreated   prometheus.Counter
	stockRejections prometheus.Counter
}

// New builds a ready-to-serve fixture. Each server carries its own metrics
// registry so tests can spin up several instances in one process.
func New(opts Options) (*Server, error) {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	s := &Server{
		store:     newMemStore(),
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
		logger:    opts.Logger,
	}

	registry := prometheus.NewRegistry()
	s.ordersCreated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "inventory_stub",
		Name:      "orders_created_total",
		Help:      "Total number of orders accepted by the fixture.",
	})
	s.stockRejections = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "inventory_stub",
		Name:      "stock_rejections_total",
		Help:      "Total number of orders rejected for insufficient stock.",
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(opts.Logger)
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory_stub",
		Registerer: registry,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	api := e.Group("/api")
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)
	authed.GET("/auth/me", s.me)

	authed.GET("/products", s.listProducts)
	authed.POST("/products", s.createProduct)
	authed.GET("/products/:id", s.getProduct)
	authed.PUT("/products/:id", s.updateProduct)
	authed.DELETE("/products/:id", s.deleteProduct)

	authed.GET("/orders", s.listOrders)
	authed.POST("/orders", s.createOrder)
	authed.PUT("/orders/:id/status", s.updateOrderStatus)
	authed.DELETE("/orders/:id", s.deleteOrder)

	users := authed.Group("/users")
	users.GET("", s.listUsers, requireRole("Insufficient permissions", domain.RoleAdmin, domain.RoleManager))
	users.POST("", s.createUser, requireRole("Only admins can create users", domain.RoleAdmin))
	users.PUT("/:id/role", s.updateUserRole, requireRole("Only admins can update user roles", domain.RoleAdmin))

	authed.GET("/reports/dashboard-stats", s.dashboardStats)
	authed.GET("/reports/sales", s.salesReport)
	authed.GET("/reports/inventory", s.inventoryReport)

	s.e = e

	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		if err := s.SeedUser(opts.AdminUsername, opts.AdminPassword, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler exposes the fixture as an http.Handler, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.e }

// Start serves on addr until the listener fails.
func (s *Server) Start(addr string) error { return s.e.Start(addr) }

// SeedUser adds an account with a bcrypt-hashed password.
func (s *Server) SeedUser(username, password string, role domain.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, derr := s.store.addAccount(username, string(hash), role); derr != nil {
		return fmt.Errorf("seed user %s: %s", username, derr.msg)
	}
	return nil
}

// SeedProduct adds a catalog entry, assigning id and timestamps.
func (s *Server) SeedProduct(p domain.Product) (domain.Product, error) {
	created, derr := s.store.addProduct(p)
	if derr != nil {
		return domain.Product{}, fmt.Errorf("seed product %s: %s", p.SKU, derr.msg)
	}
	return created, nil
}

// newHTTPErrorHandler renders every error as the {"detail": ...} envelope
// the documented contract uses.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		} else {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		_ = c.JSON(code, map[string]string{"detail": msg})
	}
}
