package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var ChurchStatsAggregateContract = Contract{
	Name:             "Records.ChurchStatsAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Sole writer of the church aggregate columns; serializes per-church writes on the church row.",
}

// StatsPolicy holds the tenant-independent knobs controlling recomputation.
type StatsPolicy struct {
	// ReferenceYear scopes annual counters; zero means current calendar year.
	ReferenceYear int `yaml:"reference_year"`
	// MembershipCountTypes restricts which member types count toward
	// membership_count; empty means every type counts.
	MembershipCountTypes []string `yaml:"membership_count_types"`
	// AttendanceWindowWeeks averages only the most recent N records when
	// positive; zero averages every record.
	AttendanceWindowWeeks int `yaml:"attendance_window_weeks"`
}

// EffectiveReferenceYear resolves the year annual counters are scoped to.
func (p StatsPolicy) EffectiveReferenceYear(now time.Time) int {
	if p.ReferenceYear > 0 {
		return p.ReferenceYear
	}
	return now.UTC().Year()
}

// StatsSnapshot is the full set of derived statistics for one church.
// Two snapshots taken with no intervening mutation are identical.
type StatsSnapshot struct {
	ChurchID            uuid.UUID `json:"church_id"`
	MembershipCount     int       `json:"membership_count"`
	AvgWeeklyAttendance int       `json:"avg_weekly_attendance"`
	FaithDecisionsYear  int       `json:"faith_decisions_year"`
	ReferenceYear       int       `json:"reference_year"`
	OrdainedPreachers   int       `json:"ordained_preachers"`
	UnordainedPreachers int       `json:"unordained_preachers"`
	OrdainedDeacons     int       `json:"ordained_deacons"`
	UnordainedDeacons   int       `json:"unordained_deacons"`
	StatsVersion        int       `json:"stats_version"`
	RefreshedAt         time.Time `json:"refreshed_at"`
}

// MemberPatch carries partial member updates; nil fields are left unchanged.
type MemberPatch struct {
	FullName        *string
	Type            *string
	Baptized        *bool
	MinisterialRole *string
	Ordained        *bool
	Phone           *string
	Notes           *string
}

type CreateMemberInput struct {
	ChurchID        uuid.UUID
	FullName        string
	Type            string
	Baptized        bool
	MinisterialRole string
	Ordained        bool
	Phone           string
	Notes           string
}

type UpdateMemberInput struct {
	ChurchID uuid.UUID
	MemberID uuid.UUID
	Patch    MemberPatch
}

type DeleteMemberInput struct {
	ChurchID uuid.UUID
	MemberID uuid.UUID
}

type CreateWeeklyAttendanceInput struct {
	ChurchID  uuid.UUID
	WeekStart time.Time
	Count     int
	Notes     string
}

type UpdateWeeklyAttendanceInput struct {
	ChurchID uuid.UUID
	RecordID uuid.UUID
	Count    *int
	Notes    *string
}

type DeleteWeeklyAttendanceInput struct {
	ChurchID uuid.UUID
	RecordID uuid.UUID
}

type CreateEventInput struct {
	ChurchID         uuid.UUID
	Title            string
	Type             string
	StartsAt         time.Time
	EndsAt           *time.Time
	DirectorMemberID *uuid.UUID
	PreacherMemberID *uuid.UUID
	ReaderMemberID   *uuid.UUID
	Metadata         map[string]any
}

// EventPatch carries partial event updates; nil fields are left unchanged.
// Role references use double pointers so callers can distinguish "leave as
// is" (nil) from "clear the assignment" (*ptr == nil).
type EventPatch struct {
	Title            *string
	Type             *string
	StartsAt         *time.Time
	EndsAt           **time.Time
	DirectorMemberID **uuid.UUID
	PreacherMemberID **uuid.UUID
	ReaderMemberID   **uuid.UUID
}

type UpdateEventInput struct {
	ChurchID uuid.UUID
	EventID  uuid.UUID
	Patch    EventPatch
}

type DeleteEventInput struct {
	ChurchID uuid.UUID
	EventID  uuid.UUID
}

// RosterEntry is one proposed attendee row in a roster replacement.
type RosterEntry struct {
	MemberID      uuid.UUID `json:"member_id"`
	Attended      bool      `json:"attended"`
	FaithDecision bool      `json:"faith_decision"`
	Notes         string    `json:"notes"`
}

type ReplaceRosterInput struct {
	ChurchID uuid.UUID
	EventID  uuid.UUID
	Entries  []RosterEntry
}

type ReplaceRosterResult struct {
	AttendeeCount      int
	FaithDecisionCount int
	Snapshot           StatsSnapshot
}

// MutationResult is returned by every aggregate-affecting write: the entity
// id touched plus the fresh post-commit snapshot.
type MutationResult struct {
	EntityID uuid.UUID
	Snapshot StatsSnapshot
}

// ChurchStatsAggregate owns every mutation of the aggregate source
// collections. Each write method mutates its source collection, recomputes
// the full snapshot from post-mutation state and persists it, all inside one
// transaction serialized per church. Write failures return *aggregates.Error
// with one of the ErrorCode values.
type ChurchStatsAggregate interface {
	Aggregate

	CreateMember(ctx context.Context, in CreateMemberInput) (MutationResult, error)
	UpdateMember(ctx context.Context, in UpdateMemberInput) (MutationResult, error)
	DeleteMember(ctx context.Context, in DeleteMemberInput) (MutationResult, error)

	CreateWeeklyAttendance(ctx context.Context, in CreateWeeklyAttendanceInput) (MutationResult, error)
	UpdateWeeklyAttendance(ctx context.Context, in UpdateWeeklyAttendanceInput) (MutationResult, error)
	DeleteWeeklyAttendance(ctx context.Context, in DeleteWeeklyAttendanceInput) (MutationResult, error)

	CreateEvent(ctx context.Context, in CreateEventInput) (MutationResult, error)
	UpdateEvent(ctx context.Context, in UpdateEventInput) (MutationResult, error)
	DeleteEvent(ctx context.Context, in DeleteEventInput) (MutationResult, error)

	ReplaceRoster(ctx context.Context, in ReplaceRosterInput) (ReplaceRosterResult, error)

	// GetStats returns the stored snapshot without recomputing anything.
	GetStats(ctx context.Context, churchID uuid.UUID) (StatsSnapshot, error)
}
