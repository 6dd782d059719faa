package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyAttendance holds one head count per church per calendar week.
// WeekStart is the Monday of the week, stored date-only.
type WeeklyAttendance struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_attendance_church_week;column:church_id" json:"church_id"`

	WeekStart time.Time `gorm:"type:date;not null;uniqueIndex:idx_weekly_attendance_church_week;column:week_start" json:"week_start"`
	Count     int       `gorm:"not null;default:0;column:count" json:"count"`
	Notes     string    `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (WeeklyAttendance) TableName() string { return "weekly_attendance" }
