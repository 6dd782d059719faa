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

type EventRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Event) ([]*domain.Event, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Event, error)
	ListByChurch(dbc dbctx.Context, churchID uuid.UUID, from, to *time.Time, limit int) ([]*domain.Event, error)
	// ListUpcoming returns events across every church starting inside
	// [from, to); the reminder job fans these out.
	ListUpcoming(dbc dbctx.Context, from, to time.Time, limit int) ([]*domain.Event, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, log *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: log.With("repo", "EventRepo")}
}

func (r *eventRepo) Create(dbc dbctx.Context, rows []*domain.Event) ([]*domain.Event, error) {
	if len(rows) == 0 {
		return []*domain.Event{}, nil
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

func (r *eventRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Event
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *eventRepo) ListByChurch(dbc dbctx.Context, churchID uuid.UUID, from, to *time.Time, limit int) ([]*domain.Event, error) {
	if churchID == uuid.Nil {
		return nil, fmt.Errorf("missing church_id")
	}
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	q := txx.WithContext(dbc.Ctx).
		Model(&domain.Event{}).
		Where("church_id = ?", churchID)
	if from != nil {
		q = q.Where("starts_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("starts_at < ?", to.UTC())
	}
	var out []*domain.Event
	if err := q.Order("starts_at ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) ListUpcoming(dbc dbctx.Context, from, to time.Time, limit int) ([]*domain.Event, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("empty window")
	}
	if limit <= 0 || limit > 5000 {
		limit = 1000
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Event
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Event{}).
		Where("starts_at >= ? AND starts_at < ?", from.UTC(), to.UTC()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *eventRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Event{}).Error
}
