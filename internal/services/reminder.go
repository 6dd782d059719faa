package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/clients/twilio"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/envutil"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

// ReminderService texts service-role members (director, preacher, reader)
// ahead of events they are assigned to. It only reads committed state; it is
// never allowed near the stats aggregate.
type ReminderService interface {
	Start(ctx context.Context) error
	Stop()
	RunOnce(ctx context.Context, now time.Time) (int, error)
}

type reminderService struct {
	log     *logger.Logger
	events  repos.EventRepo
	members repos.MemberRepo
	sms     twilio.Client
	metrics *observability.Metrics

	schedule    string
	windowHours int
	maxParallel int

	cron *cron.Cron
}

func NewReminderService(log *logger.Logger, events repos.EventRepo, members repos.MemberRepo, sms twilio.Client, metrics *observability.Metrics) ReminderService {
	return &reminderService{
		log:         log.With("service", "ReminderService"),
		events:      events,
		members:     members,
		sms:         sms,
		metrics:     metrics,
		schedule:    envutil.String("REMINDER_CRON", "0 8 * * *"),
		windowHours: envutil.Int("REMINDER_WINDOW_HOURS", 48),
		maxParallel: envutil.Int("REMINDER_MAX_PARALLEL", 8),
	}
}

func (s *reminderService) Start(ctx context.Context) error {
	if s.sms == nil {
		s.log.Warn("reminders disabled: no SMS client configured")
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(s.schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()
		sent, err := s.RunOnce(runCtx, time.Now())
		if err != nil {
			s.log.Error("reminder run failed", "error", err)
			s.metrics.IncReminderRun("error")
			return
		}
		s.log.Info("reminder run complete", "sent", sent)
		s.metrics.IncReminderRun("ok")
	})
	if err != nil {
		return fmt.Errorf("invalid REMINDER_CRON %q: %w", s.schedule, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("reminder scheduler started", "cron", s.schedule, "window_hours", s.windowHours)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *reminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce sends reminders for every event starting inside the window and
// returns the number of messages delivered. Individual send failures are
// logged, not fatal; one unreachable number must not starve the rest.
func (s *reminderService) RunOnce(ctx context.Context, now time.Time) (int, error) {
	from := now.UTC()
	to := from.Add(time.Duration(s.windowHours) * time.Hour)

	events, err := s.events.ListUpcoming(dbctx.Context{Ctx: ctx}, from, to, 1000)
	if err != nil {
		return 0, fmt.Errorf("list upcoming events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	type task struct {
		event    *domain.Event
		memberID uuid.UUID
		role     string
	}
	var tasks []task
	for _, ev := range events {
		for role, ref := range map[string]*uuid.UUID{
			"director": ev.DirectorMemberID,
			"preacher": ev.PreacherMemberID,
			"reader":   ev.ReaderMemberID,
		} {
			if ref != nil && *ref != uuid.Nil {
				tasks = append(tasks, task{event: ev, memberID: *ref, role: role})
			}
		}
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	sent := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	results := make(chan struct{}, len(tasks))
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			m, err := s.members.GetByID(dbctx.Context{Ctx: gctx}, t.memberID)
			if err != nil {
				s.log.Warn("reminder member lookup failed", "member_id", t.memberID, "error", err)
				return nil
			}
			phone := strings.TrimSpace(m.Phone)
			if phone == "" {
				return nil
			}
			body := fmt.Sprintf(
				"Reminder: you are the %s for %q on %s.",
				t.role, t.event.Title, t.event.StartsAt.UTC().Format("Mon Jan 2 15:04"),
			)
			if _, err := s.sms.SendSMS(gctx, phone, body); err != nil {
				s.log.Warn("reminder SMS failed", "member_id", m.ID, "event_id", t.event.ID, "error", err)
				return nil
			}
			results <- struct{}{}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sent, err
	}
	close(results)
	for range results {
		sent++
	}
	return sent, nil
}
