package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/timeclock/timeclock-api/docs"
	"github.com/timeclock/timeclock-api/internal/api/handler"
	"github.com/timeclock/timeclock-api/internal/api/middleware"
	"github.com/timeclock/timeclock-api/internal/core/ports"
	"github.com/timeclock/timeclock-api/internal/infrastructure/http/handlers"
)

const metricsPath = "/metrics"

// Dependencies are the services and probes the router exposes.
type Dependencies struct {
	JWTSecret string
	Logger    zerolog.Logger

	Auth    ports.AuthService
	WorkLog ports.WorkLogService
	Reports ports.ReportService

	Readiness *handlers.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "timeclock",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	workLogHandler := handler.NewWorkLogHandler(deps.WorkLog)
	reportHandler := handler.NewReportHandler(deps.Reports)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	worklog := v1.Group("/worklog")
	worklog.POST("/start", workLogHandler.Start)
	worklog.POST("/end", workLogHandler.End)
	worklog.GET("/today", workLogHandler.Today)
	worklog.GET("/status", workLogHandler.Status)

	reports := v1.Group("/reports")
	reports.GET("/monthly", reportHandler.Monthly)
	reports.GET("/monthly/export", reportHandler.Export)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness: mongo and redis
	}

	// --- Ops ---
	e.GET(metricsPath, echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
