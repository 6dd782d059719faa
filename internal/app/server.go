package app

import (
	httpserver "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

func wireServer(log *logger.Logger, metrics *observability.Metrics, handlerset Handlers, mw Middleware) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:     log,
		Metrics: metrics,

		AuthHandler:    handlerset.Auth,
		AuthMiddleware: mw.Auth,

		ChurchHandler:     handlerset.Church,
		MemberHandler:     handlerset.Member,
		AttendanceHandler: handlerset.Attendance,
		EventHandler:      handlerset.Event,
		MinuteHandler:     handlerset.Minute,
		CalendarHandler:   handlerset.Calendar,
		RealtimeHandler:   handlerset.Realtime,

		HealthHandler: handlerset.Health,
	})
}
