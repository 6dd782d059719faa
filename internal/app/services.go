package app

import (
	"context"
	"os"

	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/clients/gcp"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/clients/twilio"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/aggregates"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/realtime"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type Services struct {
	Aggregate  domainagg.ChurchStatsAggregate
	Auth       services.AuthService
	Church     services.ChurchService
	Member     services.MemberService
	Attendance services.AttendanceService
	Event      services.EventService
	Minute     services.MinuteService
	Calendar   services.CalendarService
	Reminder   services.ReminderService
}

// hubPublisher feeds committed snapshots to in-process SSE clients and, when
// Redis is configured, to the other instances through the bus.
type hubPublisher struct {
	hub *realtime.StatsHub
	bus realtime.SnapshotBus
}

func (p hubPublisher) PublishSnapshot(ctx context.Context, snap domainagg.StatsSnapshot) error {
	if p.hub != nil {
		p.hub.Broadcast(snap)
	}
	if p.bus != nil {
		return p.bus.PublishSnapshot(ctx, snap)
	}
	return nil
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	hub *realtime.StatsHub,
	bus realtime.SnapshotBus,
	metrics *observability.Metrics,
) (Services, error) {
	log.Info("Wiring services...")

	agg := aggregates.NewChurchStatsAggregate(aggregates.ChurchStatsDeps{
		Base: aggregates.BaseDeps{
			DB:     db,
			Log:    log,
			Runner: aggregates.NewGormTxRunner(db),
			Hooks:  aggregates.NewObservabilityHooks(metrics),
		},
		Policy:     cfg.StatsPolicy,
		Publisher:  hubPublisher{hub: hub, bus: bus},
		Churches:   reposet.Church,
		Members:    reposet.Member,
		Attendance: reposet.Attendance,
		Events:     reposet.Event,
		Attendees:  reposet.EventAttendee,
	})

	var bucket gcp.BucketService
	if os.Getenv("LOGO_GCS_BUCKET_NAME") != "" {
		var err error
		bucket, err = gcp.NewBucketService(log)
		if err != nil {
			log.Warn("could not init bucket service; logo uploads disabled", "error", err)
			bucket = nil
		}
	}

	var sms twilio.Client
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		var err error
		sms, err = twilio.NewFromEnv(log)
		if err != nil {
			log.Warn("could not init twilio client; reminders disabled", "error", err)
			sms = nil
		}
	}

	eventService := services.NewEventService(log, agg, reposet.Event, reposet.EventAttendee)
	calendarService, err := services.NewCalendarService(log, eventService)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Aggregate:  agg,
		Auth:       services.NewAuthService(log, reposet.User, reposet.Church, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Church:     services.NewChurchService(log, agg, reposet.Church, bucket),
		Member:     services.NewMemberService(log, agg, reposet.Member),
		Attendance: services.NewAttendanceService(log, agg, reposet.Attendance),
		Event:      eventService,
		Minute:     services.NewMinuteService(log, reposet.MeetingMinute),
		Calendar:   calendarService,
		Reminder:   services.NewReminderService(log, reposet.Event, reposet.Member, sms, metrics),
	}, nil
}
