package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/talentgate/jobboard/docs"
	"github.com/talentgate/jobboard/internal/api/handler"
	"github.com/talentgate/jobboard/internal/api/middleware"
	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// Dependencies are the wired services the router exposes over HTTP.
type Dependencies struct {
	Auth         ports.AuthService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Profiles     ports.ProfileService
	Admin        ports.AdminService

	Sessions ports.IdentityResolver
	Roles    access.RoleLookup
	Routes   access.RouteTable

	Health       map[string]handler.DependencyCheck
	SecureCookie bool
	Logger       zerolog.Logger
	// Registerer receives the HTTP request metrics. Defaults to the
	// process-wide registry.
	Registerer prometheus.Registerer
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
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(httpMetrics(deps.Registerer))
	e.Use(middleware.Authenticate(deps.Sessions, deps.Logger))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookie)
	jobHandler := handler.NewJobHandler(deps.Jobs, deps.Applications)
	candidateHandler := handler.NewCandidateHandler(deps.Applications, deps.Profiles)
	recruiterHandler := handler.NewRecruiterHandler(deps.Jobs, deps.Applications)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	pageHandler := handler.NewPageHandler()

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, middleware.RequireIdentity)
	auth.GET("/me", authHandler.Me, middleware.RequireIdentity)

	// --- Public job board ---
	jobs := api.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/:jobId", jobHandler.Get)
	jobs.POST("/:jobId/apply", jobHandler.Apply, middleware.RequireIdentity)

	// --- Caller's own data ---
	my := api.Group("/my", middleware.RequireIdentity)
	my.GET("/applications", candidateHandler.ListApplications)
	my.GET("/applications/:applicationId", candidateHandler.GetApplication)
	my.GET("/profile", candidateHandler.GetProfile)
	my.PUT("/profile", candidateHandler.UpdateProfile)

	// --- Recruiter ---
	rec := api.Group("/recruiter", middleware.RequireIdentity)
	rec.GET("/jobs", recruiterHandler.ListJobs)
	rec.POST("/jobs", recruiterHandler.CreateJob)
	rec.GET("/jobs/:jobId", recruiterHandler.GetJob)
	rec.PUT("/jobs/:jobId", recruiterHandler.UpdateJob)
	rec.DELETE("/jobs/:jobId", recruiterHandler.DeleteJob)
	rec.GET("/jobs/:jobId/applications", recruiterHandler.ListJobApplications)
	rec.GET("/jobs/:jobId/applications/:applicationId", recruiterHandler.GetJobApplication)
	rec.PUT("/jobs/:jobId/applications/:applicationId", recruiterHandler.ReviewApplication)
	rec.POST("/jobs/:jobId/start-pipeline", recruiterHandler.StartPipeline)
	rec.GET("/applications", recruiterHandler.ListApplications)

	// --- Admin ---
	admin := api.Group("/admin", middleware.RequireIdentity)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:userId", adminHandler.GetUser)
	admin.DELETE("/users/:userId", adminHandler.DeleteUser)
	admin.PUT("/users/:userId/role", adminHandler.ChangeRole)

	// Unknown API paths are JSON 404s, never guarded pages.
	api.Any("/*", func(echo.Context) error { return echo.ErrNotFound })

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Pages behind the route guard ---
	guard := middleware.Guard(deps.Routes, deps.Roles, deps.Logger)
	e.GET("/", pageHandler.Render, guard)
	e.GET("/*", pageHandler.Render, guard)

	return e
}

func httpMetrics(reg prometheus.Registerer) echo.MiddlewareFunc {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobboard",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	})
}

// requestLogger feeds echo's request logging into zerolog.
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
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
