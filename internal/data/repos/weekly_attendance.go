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

type WeeklyAttendanceRepo interface {
	Create(dbc dbctx.Context, rows []*domain.WeeklyAttendance) ([]*domain.WeeklyAttendance, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.WeeklyAttendance, error)
	GetByChurchWeek(dbc dbctx.Context, churchID uuid.UUID, weekStart time.Time) (*domain.WeeklyAttendance, error)
	ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.WeeklyAttendance, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error

	// AverageCount returns the mean attendance over the church's records,
	// restricted to the most recent windowWeeks records when positive.
	// Churches without records average to zero.
	AverageCount(dbc dbctx.Context, churchID uuid.UUID, windowWeeks int) (float64, error)
}

type weeklyAttendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyAttendanceRepo(db *gorm.DB, log *logger.Logger) WeeklyAttendanceRepo {
	return &weeklyAttendanceRepo{db: db, log: log.With("repo", "WeeklyAttendanceRepo")}
}

func (r *weeklyAttendanceRepo) Create(dbc dbctx.Context, rows []*domain.WeeklyAttendance) ([]*domain.WeeklyAttendance, error) {
	if len(rows) == 0 {
		return []*domain.WeeklyAttendance{}, nil
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

func (r *weeklyAttendanceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.WeeklyAttendance, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.WeeklyAttendance
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *weeklyAttendanceRepo) GetByChurchWeek(dbc dbctx.Context, churchID uuid.UUID, weekStart time.Time) (*domain.WeeklyAttendance, error) {
	if churchID == uuid.Nil {
		return nil, fmt.Errorf("missing church_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.WeeklyAttendance
	if err := txx.WithContext(dbc.Ctx).
		Where("church_id = ? AND week_start = ?", churchID, weekStart.Format("2006-01-02")).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *weeklyAttendanceRepo) ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.WeeklyAttendance, error) {
	if churchID == uuid.Nil {
		return nil, fmt.Errorf("missing church_id")
	}
	if limit <= 0 || limit > 1000 {
		limit = 104
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.WeeklyAttendance
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.WeeklyAttendance{}).
		Where("church_id = ?", churchID).
		Order("week_start DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weeklyAttendanceRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.WeeklyAttendance{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *weeklyAttendanceRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.WeeklyAttendance{}).Error
}

func (r *weeklyAttendanceRepo) AverageCount(dbc dbctx.Context, churchID uuid.UUID, windowWeeks int) (float64, error) {
	if churchID == uuid.Nil {
		return 0, fmt.Errorf("missing church_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var avg float64
	if windowWeeks > 0 {
		sub := txx.WithContext(dbc.Ctx).
			Model(&domain.WeeklyAttendance{}).
			Select("count").
			Where("church_id = ?", churchID).
			Order("week_start DESC").
			Limit(windowWeeks)
		if err := txx.WithContext(dbc.Ctx).
			Table("(?) AS w", sub).
			Select("COALESCE(AVG(w.count), 0)").
			Scan(&avg).Error; err != nil {
			return 0, err
		}
		return avg, nil
	}
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.WeeklyAttendance{}).
		Select("COALESCE(AVG(count), 0)").
		Where("church_id = ?", churchID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}
