package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MemberTypeMember   = "member"
	MemberTypeVisitor  = "visitor"
	MemberTypeRelative = "relative"
	MemberTypeInfant   = "infant"
	MemberTypeOther    = "other"
)

const (
	MinisterialRoleNone     = ""
	MinisterialRolePreacher = "preacher"
	MinisterialRoleDeacon   = "deacon"
)

// AllMemberTypes lists every valid member type, in display order.
var AllMemberTypes = []string{
	MemberTypeMember,
	MemberTypeVisitor,
	MemberTypeRelative,
	MemberTypeInfant,
	MemberTypeOther,
}

type Member struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;not null;index;column:church_id" json:"church_id"`

	FullName string `gorm:"not null;column:full_name" json:"full_name"`
	Type     string `gorm:"not null;default:'member';column:type" json:"type"`
	Baptized bool   `gorm:"not null;default:false;column:baptized" json:"baptized"`

	// MinisterialRole is empty for members without one; Ordained only has
	// meaning when MinisterialRole is set.
	MinisterialRole string `gorm:"column:ministerial_role" json:"ministerial_role"`
	Ordained        bool   `gorm:"not null;default:false;column:ordained" json:"ordained"`

	Phone string `gorm:"column:phone" json:"phone"`
	Notes string `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Member) TableName() string { return "member" }

func ValidMemberType(t string) bool {
	for _, v := range AllMemberTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidMinisterialRole(r string) bool {
	return r == MinisterialRoleNone || r == MinisterialRolePreacher || r == MinisterialRoleDeacon
}
