package aggregates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
)

// SnapshotPublisher receives fresh snapshots after a successful commit.
// Publishing is best effort; failures never affect the committed write.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap domainagg.StatsSnapshot) error
}

type ChurchStatsDeps struct {
	Base   BaseDeps
	Policy domainagg.StatsPolicy

	// Publisher and Now are optional; Now defaults to time.Now.
	Publisher SnapshotPublisher
	Now       func() time.Time

	Churches   repos.ChurchRepo
	Members    repos.MemberRepo
	Attendance repos.WeeklyAttendanceRepo
	Events     repos.EventRepo
	Attendees  repos.EventAttendeeRepo
}

type churchStatsAggregate struct {
	deps ChurchStatsDeps
	rec  *Recomputer
}

// NewChurchStatsAggregate builds the sole writer of the church aggregate
// columns. Every mutation locks the church row, mutates its source
// collection, recomputes the full snapshot and persists it in one
// transaction.
func NewChurchStatsAggregate(deps ChurchStatsDeps) domainagg.ChurchStatsAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &churchStatsAggregate{
		deps: deps,
		rec:  NewRecomputer(deps.Members, deps.Attendance, deps.Attendees),
	}
}

func (a *churchStatsAggregate) Contract() domainagg.Contract {
	return domainagg.ChurchStatsAggregateContract
}

// mutateAndRefresh is the coordinator core: lock the church row, run the
// mutation, recompute and persist the snapshot, all in one transaction.
// mutate returns the id of the entity it touched.
func (a *churchStatsAggregate) mutateAndRefresh(ctx context.Context, op string, churchID uuid.UUID, mutate func(dbc dbctx.Context) (uuid.UUID, error)) (domainagg.MutationResult, error) {
	if churchID == uuid.Nil {
		return domainagg.MutationResult{}, MapError(op, ValidationError("missing church_id"))
	}

	var result domainagg.MutationResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ch, err := a.deps.Churches.LockByID(dbc, churchID)
		if err != nil {
			return fmt.Errorf("lock church: %w", err)
		}
		entityID, err := mutate(dbc)
		if err != nil {
			return err
		}
		snap, err := a.refreshLocked(dbc, ch)
		if err != nil {
			return err
		}
		result = domainagg.MutationResult{EntityID: entityID, Snapshot: snap}
		return nil
	})
	if err != nil {
		return domainagg.MutationResult{}, err
	}
	a.publish(ctx, result.Snapshot)
	return result, nil
}

// refreshLocked recomputes the snapshot and persists it onto the already
// locked church row, bumping stats_version.
func (a *churchStatsAggregate) refreshLocked(dbc dbctx.Context, ch *domain.Church) (domainagg.StatsSnapshot, error) {
	now := a.deps.Now().UTC()
	snap, err := a.rec.Recompute(dbc, ch.ID, a.deps.Policy, now)
	if err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("recompute: %w", err)
	}
	snap.StatsVersion = ch.StatsVersion + 1
	snap.RefreshedAt = now

	updates := map[string]interface{}{
		"membership_count":      snap.MembershipCount,
		"avg_weekly_attendance": snap.AvgWeeklyAttendance,
		"faith_decisions_year":  snap.FaithDecisionsYear,
		"ordained_preachers":    snap.OrdainedPreachers,
		"unordained_preachers":  snap.UnordainedPreachers,
		"ordained_deacons":      snap.OrdainedDeacons,
		"unordained_deacons":    snap.UnordainedDeacons,
		"stats_version":         snap.StatsVersion,
		"stats_refreshed_at":    now,
	}
	if err := a.deps.Churches.UpdateFields(dbc, ch.ID, updates); err != nil {
		return domainagg.StatsSnapshot{}, fmt.Errorf("persist snapshot: %w", err)
	}
	return snap, nil
}

func (a *churchStatsAggregate) publish(ctx context.Context, snap domainagg.StatsSnapshot) {
	if a.deps.Publisher == nil {
		return
	}
	if err := a.deps.Publisher.PublishSnapshot(ctx, snap); err != nil && a.deps.Base.Log != nil {
		a.deps.Base.Log.Warn("snapshot publish failed", "church_id", snap.ChurchID, "error", err)
	}
}

// ---- member operations ----

func (a *churchStatsAggregate) CreateMember(ctx context.Context, in domainagg.CreateMemberInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.CreateMember"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		if in.FullName == "" {
			return uuid.Nil, ValidationError("full_name is required")
		}
		if in.Type == "" {
			in.Type = domain.MemberTypeMember
		}
		if !domain.ValidMemberType(in.Type) {
			return uuid.Nil, ValidationError("invalid member type: " + in.Type)
		}
		if !domain.ValidMinisterialRole(in.MinisterialRole) {
			return uuid.Nil, ValidationError("invalid ministerial role: " + in.MinisterialRole)
		}
		if in.MinisterialRole == domain.MinisterialRoleNone {
			in.Ordained = false
		}
		rows, err := a.deps.Members.Create(dbc, []*domain.Member{{
			ChurchID:        in.ChurchID,
			FullName:        in.FullName,
			Type:            in.Type,
			Baptized:        in.Baptized,
			MinisterialRole: in.MinisterialRole,
			Ordained:        in.Ordained,
			Phone:           in.Phone,
			Notes:           in.Notes,
		}})
		if err != nil {
			return uuid.Nil, fmt.Errorf("create member: %w", err)
		}
		return rows[0].ID, nil
	})
}

func (a *churchStatsAggregate) UpdateMember(ctx context.Context, in domainagg.UpdateMemberInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.UpdateMember"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		m, err := a.getOwnedMember(dbc, in.ChurchID, in.MemberID)
		if err != nil {
			return uuid.Nil, err
		}
		updates := map[string]interface{}{}
		p := in.Patch
		if p.FullName != nil {
			if *p.FullName == "" {
				return uuid.Nil, ValidationError("full_name cannot be empty")
			}
			updates["full_name"] = *p.FullName
		}
		if p.Type != nil {
			if !domain.ValidMemberType(*p.Type) {
				return uuid.Nil, ValidationError("invalid member type: " + *p.Type)
			}
			updates["type"] = *p.Type
		}
		if p.Baptized != nil {
			updates["baptized"] = *p.Baptized
		}
		role := m.MinisterialRole
		if p.MinisterialRole != nil {
			if !domain.ValidMinisterialRole(*p.MinisterialRole) {
				return uuid.Nil, ValidationError("invalid ministerial role: " + *p.MinisterialRole)
			}
			role = *p.MinisterialRole
			updates["ministerial_role"] = role
		}
		if p.Ordained != nil {
			updates["ordained"] = *p.Ordained
		}
		// Dropping the role drops ordination with it.
		if role == domain.MinisterialRoleNone {
			updates["ordained"] = false
		}
		if p.Phone != nil {
			updates["phone"] = *p.Phone
		}
		if p.Notes != nil {
			updates["notes"] = *p.Notes
		}
		if len(updates) == 0 {
			return m.ID, nil
		}
		if err := a.deps.Members.UpdateFields(dbc, m.ID, updates); err != nil {
			return uuid.Nil, fmt.Errorf("update member: %w", err)
		}
		return m.ID, nil
	})
}

func (a *churchStatsAggregate) DeleteMember(ctx context.Context, in domainagg.DeleteMemberInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.DeleteMember"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		m, err := a.getOwnedMember(dbc, in.ChurchID, in.MemberID)
		if err != nil {
			return uuid.Nil, err
		}
		// Roster rows follow the member; event role references null out via
		// the schema's ON DELETE SET NULL.
		if _, err := a.deps.Attendees.DeleteByMember(dbc, m.ID); err != nil {
			return uuid.Nil, fmt.Errorf("delete member roster rows: %w", err)
		}
		if err := a.deps.Members.Delete(dbc, m.ID); err != nil {
			return uuid.Nil, fmt.Errorf("delete member: %w", err)
		}
		return m.ID, nil
	})
}

func (a *churchStatsAggregate) getOwnedMember(dbc dbctx.Context, churchID, memberID uuid.UUID) (*domain.Member, error) {
	if memberID == uuid.Nil {
		return nil, ValidationError("missing member_id")
	}
	m, err := a.deps.Members.GetByID(dbc, memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	// A foreign tenant's member looks absent, never leaked.
	if m.ChurchID != churchID {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

// ---- weekly attendance operations ----

func (a *churchStatsAggregate) CreateWeeklyAttendance(ctx context.Context, in domainagg.CreateWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.CreateWeeklyAttendance"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		if in.WeekStart.IsZero() {
			return uuid.Nil, ValidationError("week_start is required")
		}
		if in.Count < 0 {
			return uuid.Nil, ValidationError("count cannot be negative")
		}
		week := NormalizeWeekStart(in.WeekStart)
		// The church row lock serializes this check with the insert.
		if _, err := a.deps.Attendance.GetByChurchWeek(dbc, in.ChurchID, week); err == nil {
			return uuid.Nil, ValidationError("attendance already recorded for week " + week.Format("2006-01-02"))
		} else if !isNotFound(err) {
			return uuid.Nil, fmt.Errorf("check week: %w", err)
		}
		rows, err := a.deps.Attendance.Create(dbc, []*domain.WeeklyAttendance{{
			ChurchID:  in.ChurchID,
			WeekStart: week,
			Count:     in.Count,
			Notes:     in.Notes,
		}})
		if err != nil {
			return uuid.Nil, fmt.Errorf("create weekly attendance: %w", err)
		}
		return rows[0].ID, nil
	})
}

func (a *churchStatsAggregate) UpdateWeeklyAttendance(ctx context.Context, in domainagg.UpdateWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.UpdateWeeklyAttendance"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		rec, err := a.getOwnedAttendance(dbc, in.ChurchID, in.RecordID)
		if err != nil {
			return uuid.Nil, err
		}
		updates := map[string]interface{}{}
		if in.Count != nil {
			if *in.Count < 0 {
				return uuid.Nil, ValidationError("count cannot be negative")
			}
			updates["count"] = *in.Count
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if len(updates) == 0 {
			return rec.ID, nil
		}
		if err := a.deps.Attendance.UpdateFields(dbc, rec.ID, updates); err != nil {
			return uuid.Nil, fmt.Errorf("update weekly attendance: %w", err)
		}
		return rec.ID, nil
	})
}

func (a *churchStatsAggregate) DeleteWeeklyAttendance(ctx context.Context, in domainagg.DeleteWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.DeleteWeeklyAttendance"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		rec, err := a.getOwnedAttendance(dbc, in.ChurchID, in.RecordID)
		if err != nil {
			return uuid.Nil, err
		}
		if err := a.deps.Attendance.Delete(dbc, rec.ID); err != nil {
			return uuid.Nil, fmt.Errorf("delete weekly attendance: %w", err)
		}
		return rec.ID, nil
	})
}

func (a *churchStatsAggregate) getOwnedAttendance(dbc dbctx.Context, churchID, recordID uuid.UUID) (*domain.WeeklyAttendance, error) {
	if recordID == uuid.Nil {
		return nil, ValidationError("missing record_id")
	}
	rec, err := a.deps.Attendance.GetByID(dbc, recordID)
	if err != nil {
		return nil, fmt.Errorf("get weekly attendance: %w", err)
	}
	if rec.ChurchID != churchID {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

// NormalizeWeekStart collapses any moment inside a week onto that week's
// Monday, date-only, UTC.
func NormalizeWeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ---- event operations ----

func (a *churchStatsAggregate) CreateEvent(ctx context.Context, in domainagg.CreateEventInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.CreateEvent"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		if in.Title == "" {
			return uuid.Nil, ValidationError("title is required")
		}
		if in.StartsAt.IsZero() {
			return uuid.Nil, ValidationError("starts_at is required")
		}
		if in.EndsAt != nil && !in.EndsAt.After(in.StartsAt) {
			return uuid.Nil, ValidationError("ends_at must be after starts_at")
		}
		if in.Type == "" {
			in.Type = domain.EventTypeService
		}
		refs := collectRefs(in.DirectorMemberID, in.PreacherMemberID, in.ReaderMemberID)
		if err := a.checkRoleRefs(dbc, in.ChurchID, refs); err != nil {
			return uuid.Nil, err
		}
		var metadata datatypes.JSON
		if len(in.Metadata) > 0 {
			raw, err := json.Marshal(in.Metadata)
			if err != nil {
				return uuid.Nil, ValidationError("metadata is not serializable")
			}
			metadata = datatypes.JSON(raw)
		}
		rows, err := a.deps.Events.Create(dbc, []*domain.Event{{
			ChurchID:         in.ChurchID,
			Title:            in.Title,
			Type:             in.Type,
			StartsAt:         in.StartsAt,
			EndsAt:           in.EndsAt,
			DirectorMemberID: in.DirectorMemberID,
			PreacherMemberID: in.PreacherMemberID,
			ReaderMemberID:   in.ReaderMemberID,
			Metadata:         metadata,
		}})
		if err != nil {
			return uuid.Nil, fmt.Errorf("create event: %w", err)
		}
		return rows[0].ID, nil
	})
}

func (a *churchStatsAggregate) UpdateEvent(ctx context.Context, in domainagg.UpdateEventInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.UpdateEvent"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		ev, err := a.getOwnedEvent(dbc, in.ChurchID, in.EventID)
		if err != nil {
			return uuid.Nil, err
		}
		updates := map[string]interface{}{}
		p := in.Patch
		if p.Title != nil {
			if *p.Title == "" {
				return uuid.Nil, ValidationError("title cannot be empty")
			}
			updates["title"] = *p.Title
		}
		if p.Type != nil {
			if *p.Type == "" {
				return uuid.Nil, ValidationError("type cannot be empty")
			}
			updates["type"] = *p.Type
		}
		startsAt := ev.StartsAt
		if p.StartsAt != nil {
			startsAt = *p.StartsAt
			updates["starts_at"] = startsAt
		}
		if p.EndsAt != nil {
			if *p.EndsAt != nil && !(*p.EndsAt).After(startsAt) {
				return uuid.Nil, ValidationError("ends_at must be after starts_at")
			}
			updates["ends_at"] = *p.EndsAt
		}
		var newRefs []uuid.UUID
		applyRef := func(column string, ref **uuid.UUID) {
			if ref == nil {
				return
			}
			updates[column] = *ref
			if *ref != nil && **ref != uuid.Nil {
				newRefs = append(newRefs, **ref)
			}
		}
		applyRef("director_member_id", p.DirectorMemberID)
		applyRef("preacher_member_id", p.PreacherMemberID)
		applyRef("reader_member_id", p.ReaderMemberID)
		if err := a.checkRoleRefs(dbc, in.ChurchID, newRefs); err != nil {
			return uuid.Nil, err
		}
		if len(updates) == 0 {
			return ev.ID, nil
		}
		if err := a.deps.Events.UpdateFields(dbc, ev.ID, updates); err != nil {
			return uuid.Nil, fmt.Errorf("update event: %w", err)
		}
		return ev.ID, nil
	})
}

func (a *churchStatsAggregate) DeleteEvent(ctx context.Context, in domainagg.DeleteEventInput) (domainagg.MutationResult, error) {
	const op = "ChurchStats.DeleteEvent"
	return a.mutateAndRefresh(ctx, op, in.ChurchID, func(dbc dbctx.Context) (uuid.UUID, error) {
		ev, err := a.getOwnedEvent(dbc, in.ChurchID, in.EventID)
		if err != nil {
			return uuid.Nil, err
		}
		if _, err := a.deps.Attendees.DeleteByEvent(dbc, ev.ID); err != nil {
			return uuid.Nil, fmt.Errorf("delete event roster: %w", err)
		}
		if err := a.deps.Events.Delete(dbc, ev.ID); err != nil {
			return uuid.Nil, fmt.Errorf("delete event: %w", err)
		}
		return ev.ID, nil
	})
}

func (a *churchStatsAggregate) getOwnedEvent(dbc dbctx.Context, churchID, eventID uuid.UUID) (*domain.Event, error) {
	if eventID == uuid.Nil {
		return nil, ValidationError("missing event_id")
	}
	ev, err := a.deps.Events.GetByID(dbc, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if ev.ChurchID != churchID {
		return nil, gorm.ErrRecordNotFound
	}
	return ev, nil
}

// checkRoleRefs verifies every referenced member exists and belongs to the
// church.
func (a *churchStatsAggregate) checkRoleRefs(dbc dbctx.Context, churchID uuid.UUID, refs []uuid.UUID) error {
	if len(refs) == 0 {
		return nil
	}
	members, err := a.deps.Members.GetByIDs(dbc, refs)
	if err != nil {
		return fmt.Errorf("get role members: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for _, ref := range refs {
		m, ok := byID[ref]
		if !ok {
			return fmt.Errorf("role member %s: %w", ref, gorm.ErrRecordNotFound)
		}
		if m.ChurchID != churchID {
			return CrossTenantReferenceError("role member " + ref.String() + " belongs to another church")
		}
	}
	return nil
}

func collectRefs(refs ...*uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref != nil && *ref != uuid.Nil {
			out = append(out, *ref)
		}
	}
	return out
}

// ---- roster replacement ----

func (a *churchStatsAggregate) ReplaceRoster(ctx context.Context, in domainagg.ReplaceRosterInput) (_ domainagg.ReplaceRosterResult, retErr error) {
	const op = "ChurchStats.ReplaceRoster"
	defer func() { a.deps.Base.Hooks.IncRosterReplaced(aggregateErrorStatus(retErr)) }()
	if in.ChurchID == uuid.Nil {
		return domainagg.ReplaceRosterResult{}, MapError(op, ValidationError("missing church_id"))
	}
	if err := ValidateRosterEntries(in.Entries); err != nil {
		return domainagg.ReplaceRosterResult{}, MapError(op, err)
	}

	var result domainagg.ReplaceRosterResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ch, err := a.deps.Churches.LockByID(dbc, in.ChurchID)
		if err != nil {
			return fmt.Errorf("lock church: %w", err)
		}
		ev, err := a.getOwnedEvent(dbc, in.ChurchID, in.EventID)
		if err != nil {
			return err
		}
		if err := a.checkRosterMembers(dbc, in.ChurchID, in.Entries); err != nil {
			return err
		}

		// Full replacement: the submitted list becomes the roster, whatever
		// was there before is gone.
		if _, err := a.deps.Attendees.DeleteByEvent(dbc, ev.ID); err != nil {
			return fmt.Errorf("clear roster: %w", err)
		}
		faithDecisions := 0
		rows := make([]*domain.EventAttendee, 0, len(in.Entries))
		for _, e := range in.Entries {
			if e.FaithDecision {
				faithDecisions++
			}
			rows = append(rows, &domain.EventAttendee{
				EventID:       ev.ID,
				MemberID:      e.MemberID,
				Attended:      e.Attended,
				FaithDecision: e.FaithDecision,
				Notes:         e.Notes,
			})
		}
		if _, err := a.deps.Attendees.CreateBatch(dbc, rows); err != nil {
			return fmt.Errorf("insert roster: %w", err)
		}

		snap, err := a.refreshLocked(dbc, ch)
		if err != nil {
			return err
		}
		result = domainagg.ReplaceRosterResult{
			AttendeeCount:      len(in.Entries),
			FaithDecisionCount: faithDecisions,
			Snapshot:           snap,
		}
		return nil
	})
	if err != nil {
		return domainagg.ReplaceRosterResult{}, err
	}
	a.publish(ctx, result.Snapshot)
	return result, nil
}

// ValidateRosterEntries rejects blank member ids and duplicate members before
// any storage work happens.
func ValidateRosterEntries(entries []domainagg.RosterEntry) error {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for i, e := range entries {
		if e.MemberID == uuid.Nil {
			return ValidationError(fmt.Sprintf("entry %d: missing member_id", i))
		}
		if _, dup := seen[e.MemberID]; dup {
			return DuplicateAttendeeError("member " + e.MemberID.String() + " listed more than once")
		}
		seen[e.MemberID] = struct{}{}
	}
	return nil
}

func (a *churchStatsAggregate) checkRosterMembers(dbc dbctx.Context, churchID uuid.UUID, entries []domainagg.RosterEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.MemberID)
	}
	members, err := a.deps.Members.GetByIDs(dbc, ids)
	if err != nil {
		return fmt.Errorf("get roster members: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return fmt.Errorf("roster member %s: %w", id, gorm.ErrRecordNotFound)
		}
		if m.ChurchID != churchID {
			return CrossTenantReferenceError("roster member " + id.String() + " belongs to another church")
		}
	}
	return nil
}

// ---- reads ----

// GetStats returns the stored snapshot. It never recomputes; reads observe
// only committed aggregate state.
func (a *churchStatsAggregate) GetStats(ctx context.Context, churchID uuid.UUID) (domainagg.StatsSnapshot, error) {
	const op = "ChurchStats.GetStats"
	if churchID == uuid.Nil {
		return domainagg.StatsSnapshot{}, MapError(op, ValidationError("missing church_id"))
	}
	ch, err := a.deps.Churches.GetByID(dbctx.Context{Ctx: ctx}, churchID)
	if err != nil {
		return domainagg.StatsSnapshot{}, MapError(op, err)
	}
	snap := domainagg.StatsSnapshot{
		ChurchID:            ch.ID,
		MembershipCount:     ch.MembershipCount,
		AvgWeeklyAttendance: ch.AvgWeeklyAttendance,
		FaithDecisionsYear:  ch.FaithDecisionsYear,
		ReferenceYear:       a.deps.Policy.EffectiveReferenceYear(a.deps.Now().UTC()),
		OrdainedPreachers:   ch.OrdainedPreachers,
		UnordainedPreachers: ch.UnordainedPreachers,
		OrdainedDeacons:     ch.OrdainedDeacons,
		UnordainedDeacons:   ch.UnordainedDeacons,
		StatsVersion:        ch.StatsVersion,
	}
	if ch.StatsRefreshedAt != nil {
		snap.RefreshedAt = *ch.StatsRefreshedAt
	}
	return snap, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
