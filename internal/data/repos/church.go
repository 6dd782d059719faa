package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type ChurchRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Church) ([]*domain.Church, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Church, error)
	// LockByID takes a FOR UPDATE row lock on the church; it requires an open
	// transaction and is the per-tenant serialization point for every
	// aggregate write.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Church, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type churchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChurchRepo(db *gorm.DB, log *logger.Logger) ChurchRepo {
	return &churchRepo{db: db, log: log.With("repo", "ChurchRepo")}
}

func (r *churchRepo) Create(dbc dbctx.Context, rows []*domain.Church) ([]*domain.Church, error) {
	if len(rows) == 0 {
		return []*domain.Church{}, nil
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

func (r *churchRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Church, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Church
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *churchRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Church, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out domain.Church
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *churchRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Church{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *churchRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Church{}).Error
}
