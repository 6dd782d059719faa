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

type MeetingMinuteRepo interface {
	Create(dbc dbctx.Context, rows []*domain.MeetingMinute) ([]*domain.MeetingMinute, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.MeetingMinute, error)
	ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.MeetingMinute, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type meetingMinuteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingMinuteRepo(db *gorm.DB, log *logger.Logger) MeetingMinuteRepo {
	return &meetingMinuteRepo{db: db, log: log.With("repo", "MeetingMinuteRepo")}
}

func (r *meetingMinuteRepo) Create(dbc dbctx.Context, rows []*domain.MeetingMinute) ([]*domain.MeetingMinute, error) {
	if len(rows) == 0 {
		return []*domain.MeetingMinute{}, nil
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

func (r *meetingMinuteRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.MeetingMinute, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.MeetingMinute
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *meetingMinuteRepo) ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.MeetingMinute, error) {
	if churchID == uuid.Nil {
		return nil, fmt.Errorf("missing church_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.MeetingMinute
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.MeetingMinute{}).
		Where("church_id = ?", churchID).
		Order("meeting_date DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *meetingMinuteRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.MeetingMinute{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *meetingMinuteRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.MeetingMinute{}).Error
}
