package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventAttendee is one roster row. The roster replacer guarantees at most one
// row per (event, member); the composite unique index is a storage backstop
// for the same invariant.
type EventAttendee struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendee_event_member;column:event_id" json:"event_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendee_event_member;index;column:member_id" json:"member_id"`

	Attended      bool   `gorm:"not null;default:false;column:attended" json:"attended"`
	FaithDecision bool   `gorm:"not null;default:false;column:faith_decision" json:"faith_decision"`
	Notes         string `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EventAttendee) TableName() string { return "event_attendee" }
