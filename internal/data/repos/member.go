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

// RoleTally is one group of the ministerial role breakdown.
type RoleTally struct {
	MinisterialRole string
	Ordained        bool
	Count           int64
}

type MemberRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Member, error)
	ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.Member, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error

	// CountByChurch counts members of the church, restricted to the given
	// types when the slice is non-empty.
	CountByChurch(dbc dbctx.Context, churchID uuid.UUID, types []string) (int64, error)
	// RoleTallies groups the church's members by (ministerial_role, ordained),
	// omitting members without a role.
	RoleTallies(dbc dbctx.Context, churchID uuid.UUID) ([]RoleTally, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, log *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: log.With("repo", "MemberRepo")}
}

func (r *memberRepo) Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error) {
	if len(rows) == 0 {
		return []*domain.Member{}, nil
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

func (r *memberRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Member
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memberRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Member, error) {
	if len(ids) == 0 {
		return []*domain.Member{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Member
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Member{}).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memberRepo) ListByChurch(dbc dbctx.Context, churchID uuid.UUID, limit int) ([]*domain.Member, error) {
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
	var out []*domain.Member
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Member{}).
		Where("church_id = ?", churchID).
		Order("full_name ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memberRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Member{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *memberRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Member{}).Error
}

func (r *memberRepo) CountByChurch(dbc dbctx.Context, churchID uuid.UUID, types []string) (int64, error) {
	if churchID == uuid.Nil {
		return 0, fmt.Errorf("missing church_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	q := txx.WithContext(dbc.Ctx).
		Model(&domain.Member{}).
		Where("church_id = ?", churchID)
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *memberRepo) RoleTallies(dbc dbctx.Context, churchID uuid.UUID) ([]RoleTally, error) {
	if churchID == uuid.Nil {
		return nil, fmt.Errorf("missing church_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []RoleTally
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Member{}).
		Select("ministerial_role, ordained, COUNT(*) AS count").
		Where("church_id = ? AND ministerial_role <> ''", churchID).
		Group("ministerial_role, ordained").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
