package aggregates

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
)

// Recomputer derives the full stats snapshot from the source collections.
// It only reads; callers run it inside the same transaction as the mutation
// so the snapshot reflects exactly the post-mutation state.
type Recomputer struct {
	Members    repos.MemberRepo
	Attendance repos.WeeklyAttendanceRepo
	Attendees  repos.EventAttendeeRepo
}

func NewRecomputer(members repos.MemberRepo, attendance repos.WeeklyAttendanceRepo, attendees repos.EventAttendeeRepo) *Recomputer {
	return &Recomputer{Members: members, Attendance: attendance, Attendees: attendees}
}

// Recompute reads the church's source collections and rebuilds every derived
// statistic from scratch. It never reads the stored aggregate columns.
func (r *Recomputer) Recompute(dbc dbctx.Context, churchID uuid.UUID, policy domainagg.StatsPolicy, now time.Time) (domainagg.StatsSnapshot, error) {
	if churchID == uuid.Nil {
		return domainagg.StatsSnapshot{}, ValidationError("missing church_id")
	}

	snap := domainagg.StatsSnapshot{
		ChurchID:      churchID,
		ReferenceYear: policy.EffectiveReferenceYear(now),
	}

	membership, err := r.Members.CountByChurch(dbc, churchID, policy.MembershipCountTypes)
	if err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("count membership: %w", err)
	}
	snap.MembershipCount = int(membership)

	avg, err := r.Attendance.AverageCount(dbc, churchID, policy.AttendanceWindowWeeks)
	if err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("average weekly attendance: %w", err)
	}
	snap.AvgWeeklyAttendance = roundHalfUp(avg)

	decisions, err := r.Attendees.CountFaithDecisionsInYear(dbc, churchID, snap.ReferenceYear)
	if err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("count faith decisions: %w", err)
	}
	snap.FaithDecisionsYear = int(decisions)

	tallies, err := r.Members.RoleTallies(dbc, churchID)
	if err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("tally ministerial roles: %w", err)
	}
	for _, t := range tallies {
		switch {
		case t.MinisterialRole == domain.MinisterialRolePreacher && t.Ordained:
			snap.OrdainedPreachers = int(t.Count)
		case t.MinisterialRole == domain.MinisterialRolePreacher:
			snap.UnordainedPreachers = int(t.Count)
		case t.MinisterialRole == domain.MinisterialRoleDeacon && t.Ordained:
			snap.OrdainedDeacons = int(t.Count)
		case t.MinisterialRole == domain.MinisterialRoleDeacon:
			snap.UnordainedDeacons = int(t.Count)
		}
	}

	return snap, nil
}

// roundHalfUp rounds to the nearest integer with .5 always rounding up.
// Attendance counts are non-negative, so negatives clamp to zero.
func roundHalfUp(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
