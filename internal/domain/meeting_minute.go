package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MeetingMinute struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;not null;index;column:church_id" json:"church_id"`

	MeetingDate time.Time      `gorm:"type:date;not null;column:meeting_date" json:"meeting_date"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Body        string         `gorm:"type:text;column:body" json:"body"`
	Attachments datatypes.JSON `gorm:"type:jsonb;column:attachments" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MeetingMinute) TableName() string { return "meeting_minute" }
