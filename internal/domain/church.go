package domain

import (
	"time"

	"github.com/google/uuid"
)

// Church is the tenant row. The Stats* and aggregate columns are derived
// values: only the church stats aggregate writes them, everything else treats
// them as read-only.
type Church struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	Address    string    `gorm:"column:address" json:"address"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	PastorName string    `gorm:"column:pastor_name" json:"pastor_name"`

	LogoBucketKey string `gorm:"column:logo_bucket_key" json:"logo_bucket_key"`
	LogoURL       string `gorm:"column:logo_url" json:"logo_url"`

	MembershipCount     int `gorm:"not null;default:0;column:membership_count" json:"membership_count"`
	AvgWeeklyAttendance int `gorm:"not null;default:0;column:avg_weekly_attendance" json:"avg_weekly_attendance"`
	FaithDecisionsYear  int `gorm:"not null;default:0;column:faith_decisions_year" json:"faith_decisions_year"`
	OrdainedPreachers   int `gorm:"not null;default:0;column:ordained_preachers" json:"ordained_preachers"`
	UnordainedPreachers int `gorm:"not null;default:0;column:unordained_preachers" json:"unordained_preachers"`
	OrdainedDeacons     int `gorm:"not null;default:0;column:ordained_deacons" json:"ordained_deacons"`
	UnordainedDeacons   int `gorm:"not null;default:0;column:unordained_deacons" json:"unordained_deacons"`

	StatsVersion     int        `gorm:"not null;default:0;column:stats_version" json:"stats_version"`
	StatsRefreshedAt *time.Time `gorm:"column:stats_refreshed_at" json:"stats_refreshed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Church) TableName() string { return "church" }
