package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type EventService interface {
	Create(ctx context.Context, in domainagg.CreateEventInput) (domainagg.MutationResult, error)
	Update(ctx context.Context, in domainagg.UpdateEventInput) (domainagg.MutationResult, error)
	Delete(ctx context.Context, in domainagg.DeleteEventInput) (domainagg.MutationResult, error)
	Get(ctx context.Context, churchID, eventID uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, churchID uuid.UUID, from, to *time.Time, limit int) ([]*domain.Event, error)

	ReplaceRoster(ctx context.Context, in domainagg.ReplaceRosterInput) (domainagg.ReplaceRosterResult, error)
	GetRoster(ctx context.Context, churchID, eventID uuid.UUID) ([]*domain.EventAttendee, error)
}

type eventService struct {
	log       *logger.Logger
	agg       domainagg.ChurchStatsAggregate
	events    repos.EventRepo
	attendees repos.EventAttendeeRepo
}

func NewEventService(log *logger.Logger, agg domainagg.ChurchStatsAggregate, events repos.EventRepo, attendees repos.EventAttendeeRepo) EventService {
	return &eventService{
		log:       log.With("service", "EventService"),
		agg:       agg,
		events:    events,
		attendees: attendees,
	}
}

func (s *eventService) Create(ctx context.Context, in domainagg.CreateEventInput) (domainagg.MutationResult, error) {
	return s.agg.CreateEvent(ctx, in)
}

func (s *eventService) Update(ctx context.Context, in domainagg.UpdateEventInput) (domainagg.MutationResult, error) {
	return s.agg.UpdateEvent(ctx, in)
}

func (s *eventService) Delete(ctx context.Context, in domainagg.DeleteEventInput) (domainagg.MutationResult, error) {
	return s.agg.DeleteEvent(ctx, in)
}

func (s *eventService) Get(ctx context.Context, churchID, eventID uuid.UUID) (*domain.Event, error) {
	ev, err := s.events.GetByID(dbctx.Context{Ctx: ctx}, eventID)
	if err != nil {
		return nil, err
	}
	if ev.ChurchID != churchID {
		return nil, ErrNotFound
	}
	return ev, nil
}

func (s *eventService) List(ctx context.Context, churchID uuid.UUID, from, to *time.Time, limit int) ([]*domain.Event, error) {
	return s.events.ListByChurch(dbctx.Context{Ctx: ctx}, churchID, from, to, limit)
}

func (s *eventService) ReplaceRoster(ctx context.Context, in domainagg.ReplaceRosterInput) (domainagg.ReplaceRosterResult, error) {
	return s.agg.ReplaceRoster(ctx, in)
}

func (s *eventService) GetRoster(ctx context.Context, churchID, eventID uuid.UUID) ([]*domain.EventAttendee, error) {
	if _, err := s.Get(ctx, churchID, eventID); err != nil {
		return nil, err
	}
	return s.attendees.ListByEvent(dbctx.Context{Ctx: ctx}, eventID)
}
