package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/docs"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/handler"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/middleware"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// Services are the core services the router dispatches to.
type Services struct {
	Sessions   ports.SessionService
	Tokens     ports.TokenIssuer
	Attendance ports.AttendanceService
	Admin      ports.AdminService
	Bootstrap  ports.BootstrapService
	Dashboard  ports.DashboardService
}

// Options carries the HTTP-layer settings.
type Options struct {
	// CookieStore signs the browser session cookie.
	CookieStore sessions.Store
	CookieName  string
	// SeedEnabled mounts GET /_seed.
	SeedEnabled bool
	Assets      handler.Assets
	Clock       handler.Clock
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.PingFunc
	// Registry receives the HTTP metrics and backs /metrics. Defaults to
	// the process-wide Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer(opts.Clock)
	if err != nil {
		return nil, err
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "merryweather",
		Registerer: registerer,
	}))
	e.Use(session.Middleware(opts.CookieStore))
	e.Use(middleware.Session(svc.Sessions, opts.CookieName, opts.Log))

	cookie := handler.SessionCookie{Name: opts.CookieName}
	web := handler.NewWebHandler(svc.Sessions, svc.Dashboard, cookie, opts.Assets, opts.Log)
	attendance := handler.NewAttendanceHandler(svc.Attendance, cookie, opts.Clock, opts.Log)
	admin := handler.NewAdminHandler(svc.Admin, cookie, opts.Log)
	api := handler.NewAPIHandler(svc.Sessions, svc.Tokens, svc.Attendance, svc.Admin, svc.Dashboard)

	// --- Browser routes ---
	toLogin := middleware.RedirectTo("/login", cookie.FlashError)
	authenticated := middleware.RequireAuthenticated(toLogin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin, toLogin)

	e.GET("/", web.Home)
	e.GET("/login", web.LoginPage)
	e.POST("/login", web.Login)
	e.GET("/logout", web.Logout)
	e.GET("/dashboard", web.Dashboard, authenticated)
	e.POST("/onduty", attendance.OnDuty, authenticated)
	e.POST("/offduty", attendance.OffDuty, authenticated)
	e.POST("/admin/add-user", admin.AddUser, adminOnly)
	e.POST("/admin/add-rule", admin.AddRule, adminOnly)
	e.POST("/admin/add-notice", admin.AddNotice, adminOnly)
	if opts.SeedEnabled {
		e.GET("/_seed", handler.NewSeedHandler(svc.Bootstrap, opts.Log).Seed)
	}

	// --- JSON API ---
	e.POST("/api/v1/auth/login", api.Login)

	v1 := e.Group("/api/v1", middleware.Bearer(svc.Tokens, svc.Sessions))
	v1.POST("/auth/logout", api.Logout)
	v1.GET("/me", api.Me)
	v1.GET("/dashboard", api.Dashboard)
	v1.POST("/shifts/onduty", api.OnDuty)
	v1.POST("/shifts/offduty", api.OffDuty)

	v1Admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin, middleware.Reject))
	v1Admin.POST("/users", api.CreateUser)
	v1Admin.POST("/rules", api.CreateRule)
	v1Admin.POST("/notices", api.CreateNotice)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                        // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Readiness).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
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
