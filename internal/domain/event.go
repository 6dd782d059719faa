package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventTypeService  = "service"
	EventTypeOutreach = "outreach"
	EventTypeMeeting  = "meeting"
)

type Event struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;not null;index;column:church_id" json:"church_id"`

	Title string `gorm:"not null;column:title" json:"title"`
	// Type is a free enumeration; service/outreach/meeting are the common ones.
	Type string `gorm:"not null;default:'service';column:type" json:"type"`

	StartsAt time.Time  `gorm:"not null;index;column:starts_at" json:"starts_at"`
	EndsAt   *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`

	// Service role assignments. Each, when set, must reference a member of the
	// same church; they are not required to be distinct members.
	DirectorMemberID *uuid.UUID `gorm:"type:uuid;column:director_member_id" json:"director_member_id,omitempty"`
	PreacherMemberID *uuid.UUID `gorm:"type:uuid;column:preacher_member_id" json:"preacher_member_id,omitempty"`
	ReaderMemberID   *uuid.UUID `gorm:"type:uuid;column:reader_member_id" json:"reader_member_id,omitempty"`

	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string { return "event" }

// RoleMemberIDs returns the non-nil service role references.
func (e *Event) RoleMemberIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, 3)
	for _, ref := range []*uuid.UUID{e.DirectorMemberID, e.PreacherMemberID, e.ReaderMemberID} {
		if ref != nil && *ref != uuid.Nil {
			out = append(out, *ref)
		}
	}
	return out
}
