package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;not null;index;column:church_id" json:"church_id"`

	Email    string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string `gorm:"not null;column:password" json:"-"`
	FullName string `gorm:"not null;column:full_name" json:"full_name"`
	Role     string `gorm:"not null;default:'secretary';column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "app_user" }
