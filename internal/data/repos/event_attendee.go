package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type EventAttendeeRepo interface {
	CreateBatch(dbc dbctx.Context, rows []*domain.EventAttendee) ([]*domain.EventAttendee, error)
	ListByEvent(dbc dbctx.Context, eventID uuid.UUID) ([]*domain.EventAttendee, error)
	DeleteByEvent(dbc dbctx.Context, eventID uuid.UUID) (int64, error)
	DeleteByMember(dbc dbctx.Context, memberID uuid.UUID) (int64, error)

	// CountFaithDecisionsInYear counts faith-decision rows joined through the
	// church's events whose start falls inside the given calendar year.
	CountFaithDecisionsInYear(dbc dbctx.Context, churchID uuid.UUID, year int) (int64, error)
}

type eventAttendeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventAttendeeRepo(db *gorm.DB, log *logger.Logger) EventAttendeeRepo {
	return &eventAttendeeRepo{db: db, log: log.With("repo", "EventAttendeeRepo")}
}

func (r *eventAttendeeRepo) CreateBatch(dbc dbctx.Context, rows []*domain.EventAttendee) ([]*domain.EventAttendee, error) {
	if len(rows) == 0 {
		return []*domain.EventAttendee{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventAttendeeRepo) ListByEvent(dbc dbctx.Context, eventID uuid.UUID) ([]*domain.EventAttendee, error) {
	if eventID == uuid.Nil {
		return nil, fmt.Errorf("missing event_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.EventAttendee
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.EventAttendee{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventAttendeeRepo) DeleteByEvent(dbc dbctx.Context, eventID uuid.UUID) (int64, error) {
	if eventID == uuid.Nil {
		return 0, fmt.Errorf("missing event_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("event_id = ?", eventID).
		Delete(&domain.EventAttendee{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *eventAttendeeRepo) DeleteByMember(dbc dbctx.Context, memberID uuid.UUID) (int64, error) {
	if memberID == uuid.Nil {
		return 0, fmt.Errorf("missing member_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("member_id = ?", memberID).
		Delete(&domain.EventAttendee{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *eventAttendeeRepo) CountFaithDecisionsInYear(dbc dbctx.Context, churchID uuid.UUID, year int) (int64, error) {
	if churchID == uuid.Nil {
		return 0, fmt.Errorf("missing church_id")
	}
	if year <= 0 {
		return 0, fmt.Errorf("invalid year %d", year)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.EventAttendee{}).
		Joins("JOIN event ON event.id = event_attendee.event_id").
		Where("event.church_id = ? AND event_attendee.faith_decision = ?", churchID, true).
		Where("event.starts_at >= ? AND event.starts_at < ?", yearStart, yearEnd).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
