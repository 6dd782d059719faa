package repos

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, rows []*domain.User) ([]*domain.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return &userRepo{db: db, log: log.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, rows []*domain.User) ([]*domain.User, error) {
	if len(rows) == 0 {
		return []*domain.User{}, nil
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

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.User
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("missing email")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.User
	if err := txx.WithContext(dbc.Ctx).
		Where("email = ?", email).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, fmt.Errorf("missing email")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
