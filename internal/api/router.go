package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/apiintegration/taskhub/docs"
	"github.com/apiintegration/taskhub/internal/api/handler"
	"github.com/apiintegration/taskhub/internal/api/middleware"
	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
	"github.com/apiintegration/taskhub/internal/infrastructure/http/handlers"
)

const uploadBodyLimit = "10M"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Gate      ports.Authorizer
	Todos     ports.TodoService
	Proxy     ports.ProxyService
	Readiness map[string]handlers.Pinger
	Log       zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Account routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	account := api.Group("/account")
	account.POST("/login", authHandler.Login)
	account.POST("/register", authHandler.Register)

	// --- Todo routes (bearer token required) ---
	todoHandler := handler.NewTodoHandler(deps.Todos)
	todos := api.Group("/todos", middleware.Authenticate(deps.Gate))
	todos.GET("", todoHandler.List, middleware.Require(deps.Gate, domain.PolicyUser))
	todos.GET("/:id", todoHandler.Get, middleware.Require(deps.Gate, domain.PolicyUser))
	todos.POST("", todoHandler.Create, middleware.Require(deps.Gate, domain.PolicyAdmin))
	todos.DELETE("/:id", todoHandler.Delete, middleware.Require(deps.Gate, domain.PolicyAdmin))

	// --- Pass-through routes ---
	proxyHandler := handler.NewProxyHandler(deps.Proxy)
	api.GET("/users", proxyHandler.ListUsers)
	predictions := api.Group("/predictions", echomiddleware.BodyLimit(uploadBodyLimit))
	predictions.GET("", proxyHandler.ListUsers)
	predictions.POST("/url", proxyHandler.PredictURL)
	predictions.POST("/upload", proxyHandler.PredictUpload)

	return e
}
