package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/handlers"
	httpMW "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/middleware"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ChurchHandler     *httpH.ChurchHandler
	MemberHandler     *httpH.MemberHandler
	AttendanceHandler *httpH.AttendanceHandler
	EventHandler      *httpH.EventHandler
	MinuteHandler     *httpH.MinuteHandler
	CalendarHandler   *httpH.CalendarHandler
	RealtimeHandler   *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	r.Use(otelgin.Middleware("gestion-cristiana"))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Church profile + stats
		if cfg.ChurchHandler != nil {
			protected.GET("/church", cfg.ChurchHandler.Get)
			protected.PATCH("/church", cfg.ChurchHandler.UpdateProfile)
			protected.POST("/church/logo", cfg.ChurchHandler.UploadLogo)
			protected.GET("/church/stats", cfg.ChurchHandler.GetStats)
		}

		// Realtime stats (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/stats/stream", cfg.RealtimeHandler.StatsStream)
		}

		// Members
		if cfg.MemberHandler != nil {
			protected.POST("/members", cfg.MemberHandler.Create)
			protected.GET("/members", cfg.MemberHandler.List)
			protected.GET("/members/:id", cfg.MemberHandler.Get)
			protected.PATCH("/members/:id", cfg.MemberHandler.Update)
			protected.DELETE("/members/:id", cfg.MemberHandler.Delete)
		}

		// Weekly attendance
		if cfg.AttendanceHandler != nil {
			protected.POST("/attendance", cfg.AttendanceHandler.Create)
			protected.GET("/attendance", cfg.AttendanceHandler.List)
			protected.PATCH("/attendance/:id", cfg.AttendanceHandler.Update)
			protected.DELETE("/attendance/:id", cfg.AttendanceHandler.Delete)
		}

		// Events + rosters
		if cfg.EventHandler != nil {
			protected.POST("/events", cfg.EventHandler.Create)
			protected.GET("/events", cfg.EventHandler.List)
			protected.GET("/events/:id", cfg.EventHandler.Get)
			protected.PATCH("/events/:id", cfg.EventHandler.Update)
			protected.DELETE("/events/:id", cfg.EventHandler.Delete)
			protected.PUT("/events/:id/attendees", cfg.EventHandler.ReplaceRoster)
			protected.GET("/events/:id/attendees", cfg.EventHandler.GetRoster)
		}

		// Meeting minutes
		if cfg.MinuteHandler != nil {
			protected.POST("/minutes", cfg.MinuteHandler.Create)
			protected.GET("/minutes", cfg.MinuteHandler.List)
			protected.GET("/minutes/:id", cfg.MinuteHandler.Get)
			protected.PATCH("/minutes/:id", cfg.MinuteHandler.Update)
			protected.DELETE("/minutes/:id", cfg.MinuteHandler.Delete)
		}

		// Calendar PNG
		if cfg.CalendarHandler != nil {
			protected.GET("/calendar/:year/:month", cfg.CalendarHandler.RenderMonth)
		}
	}

	return r
}
