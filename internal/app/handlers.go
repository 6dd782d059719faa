package app

import (
	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/handlers"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/realtime"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Church     *handlers.ChurchHandler
	Member     *handlers.MemberHandler
	Attendance *handlers.AttendanceHandler
	Event      *handlers.EventHandler
	Minute     *handlers.MinuteHandler
	Calendar   *handlers.CalendarHandler
	Realtime   *handlers.RealtimeHandler
	Health     *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, serviceset Services, hub *realtime.StatsHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		Church:     handlers.NewChurchHandler(serviceset.Church),
		Member:     handlers.NewMemberHandler(serviceset.Member),
		Attendance: handlers.NewAttendanceHandler(serviceset.Attendance),
		Event:      handlers.NewEventHandler(serviceset.Event),
		Minute:     handlers.NewMinuteHandler(serviceset.Minute),
		Calendar:   handlers.NewCalendarHandler(serviceset.Calendar),
		Realtime:   handlers.NewRealtimeHandler(hub),
		Health:     handlers.NewHealthHandler(db),
	}
}
