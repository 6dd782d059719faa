package aggregates

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/db"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

// Integration coverage for the write coordinator. Requires a reachable
// Postgres, e.g.:
//
//	TEST_POSTGRES_DSN="host=localhost user=postgres password=postgres dbname=gc_test sslmode=disable"

type aggFixture struct {
	db        *gorm.DB
	agg       domainagg.ChurchStatsAggregate
	churches  repos.ChurchRepo
	members   repos.MemberRepo
	events    repos.EventRepo
	attendees repos.EventAttendeeRepo
	churchID  uuid.UUID
}

func newAggFixture(t *testing.T, policy domainagg.StatsPolicy) *aggFixture {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run aggregate integration tests")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		t.Fatalf("create extension: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)

	churchRepo := repos.NewChurchRepo(gdb, log)
	memberRepo := repos.NewMemberRepo(gdb, log)
	attendanceRepo := repos.NewWeeklyAttendanceRepo(gdb, log)
	eventRepo := repos.NewEventRepo(gdb, log)
	attendeeRepo := repos.NewEventAttendeeRepo(gdb, log)

	agg := NewChurchStatsAggregate(ChurchStatsDeps{
		Base: BaseDeps{
			DB:     gdb,
			Log:    log,
			Runner: NewGormTxRunner(gdb),
		},
		Policy:     policy,
		Churches:   churchRepo,
		Members:    memberRepo,
		Attendance: attendanceRepo,
		Events:     eventRepo,
		Attendees:  attendeeRepo,
	})

	dbc := dbctx.Context{Ctx: context.Background()}
	rows, err := churchRepo.Create(dbc, []*domain.Church{{Name: "Iglesia de Prueba " + uuid.NewString()[:8]}})
	if err != nil {
		t.Fatalf("create church: %v", err)
	}
	churchID := rows[0].ID
	t.Cleanup(func() {
		_ = churchRepo.Delete(dbctx.Context{Ctx: context.Background()}, churchID)
	})

	return &aggFixture{
		db:        gdb,
		agg:       agg,
		churches:  churchRepo,
		members:   memberRepo,
		events:    eventRepo,
		attendees: attendeeRepo,
		churchID:  churchID,
	}
}

func (f *aggFixture) createMember(t *testing.T, in domainagg.CreateMemberInput) uuid.UUID {
	t.Helper()
	in.ChurchID = f.churchID
	res, err := f.agg.CreateMember(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	return res.EntityID
}

func TestCreateMemberRefreshesSnapshot(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{})
	ctx := context.Background()

	res, err := f.agg.CreateMember(ctx, domainagg.CreateMemberInput{
		ChurchID:        f.churchID,
		FullName:        "Juan Perez",
		MinisterialRole: domain.MinisterialRolePreacher,
		Ordained:        true,
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if res.Snapshot.MembershipCount != 1 {
		t.Fatalf("membership_count: got=%d want=1", res.Snapshot.MembershipCount)
	}
	if res.Snapshot.OrdainedPreachers != 1 {
		t.Fatalf("ordained_preachers: got=%d want=1", res.Snapshot.OrdainedPreachers)
	}
	if res.Snapshot.StatsVersion != 1 {
		t.Fatalf("stats_version: got=%d want=1", res.Snapshot.StatsVersion)
	}

	// Reads are idempotent: two reads with no write in between are equal.
	first, err := f.agg.GetStats(ctx, f.churchID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	second, err := f.agg.GetStats(ctx, f.churchID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if first != second {
		t.Fatalf("GetStats not idempotent: %+v vs %+v", first, second)
	}
	if first.MembershipCount != 1 || first.StatsVersion != 1 {
		t.Fatalf("stored snapshot mismatch: %+v", first)
	}

	// Deleting the member drops the derived counts again.
	res, err = f.agg.DeleteMember(ctx, domainagg.DeleteMemberInput{ChurchID: f.churchID, MemberID: res.EntityID})
	if err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if res.Snapshot.MembershipCount != 0 || res.Snapshot.OrdainedPreachers != 0 {
		t.Fatalf("post-delete snapshot mismatch: %+v", res.Snapshot)
	}
	if res.Snapshot.StatsVersion != 2 {
		t.Fatalf("stats_version after delete: got=%d want=2", res.Snapshot.StatsVersion)
	}
}

func TestWeeklyAttendanceAverage(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{})
	ctx := context.Background()

	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	var last domainagg.MutationResult
	for i, count := range []int{40, 60, 50} {
		var err error
		last, err = f.agg.CreateWeeklyAttendance(ctx, domainagg.CreateWeeklyAttendanceInput{
			ChurchID:  f.churchID,
			WeekStart: base.AddDate(0, 0, 7*i),
			Count:     count,
		})
		if err != nil {
			t.Fatalf("CreateWeeklyAttendance(%d): %v", count, err)
		}
	}
	if last.Snapshot.AvgWeeklyAttendance != 50 {
		t.Fatalf("avg_weekly_attendance: got=%d want=50", last.Snapshot.AvgWeeklyAttendance)
	}

	// A second record for an already-recorded week is rejected, even when
	// the submitted timestamp is a different day inside the same week.
	_, err := f.agg.CreateWeeklyAttendance(ctx, domainagg.CreateWeeklyAttendanceInput{
		ChurchID:  f.churchID,
		WeekStart: base.AddDate(0, 0, 3),
		Count:     10,
	})
	if err == nil {
		t.Fatal("expected duplicate-week rejection")
	}
	if got := domainagg.CodeOf(err); got != domainagg.CodeValidation {
		t.Fatalf("duplicate week code: got=%q want=%q (%v)", got, domainagg.CodeValidation, err)
	}

	// Negative count rejected.
	_, err = f.agg.CreateWeeklyAttendance(ctx, domainagg.CreateWeeklyAttendanceInput{
		ChurchID:  f.churchID,
		WeekStart: base.AddDate(0, 0, 28),
		Count:     -1,
	})
	if got := domainagg.CodeOf(err); got != domainagg.CodeValidation {
		t.Fatalf("negative count code: got=%q want=%q (%v)", got, domainagg.CodeValidation, err)
	}
}

func TestReplaceRosterEndToEnd(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{ReferenceYear: 2026})
	ctx := context.Background()

	m1 := f.createMember(t, domainagg.CreateMemberInput{FullName: "Maria Lopez"})
	m2 := f.createMember(t, domainagg.CreateMemberInput{FullName: "Pedro Gomez"})

	evRes, err := f.agg.CreateEvent(ctx, domainagg.CreateEventInput{
		ChurchID: f.churchID,
		Title:    "Culto Dominical",
		StartsAt: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	eventID := evRes.EntityID

	res, err := f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  eventID,
		Entries: []domainagg.RosterEntry{
			{MemberID: m1, Attended: true, FaithDecision: true},
			{MemberID: m2, Attended: false},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceRoster: %v", err)
	}
	if res.AttendeeCount != 2 {
		t.Fatalf("attendee_count: got=%d want=2", res.AttendeeCount)
	}
	if res.FaithDecisionCount != 1 {
		t.Fatalf("faith_decision_count: got=%d want=1", res.FaithDecisionCount)
	}
	if res.Snapshot.FaithDecisionsYear != 1 {
		t.Fatalf("faith_decisions_year: got=%d want=1", res.Snapshot.FaithDecisionsYear)
	}

	// A duplicate member in the submission fails before any row changes.
	_, err = f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  eventID,
		Entries: []domainagg.RosterEntry{
			{MemberID: m1}, {MemberID: m1},
		},
	})
	if got := domainagg.CodeOf(err); got != domainagg.CodeDuplicateAttendee {
		t.Fatalf("duplicate roster code: got=%q want=%q (%v)", got, domainagg.CodeDuplicateAttendee, err)
	}
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := f.attendees.ListByEvent(dbc, eventID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("roster changed by failed replacement: got=%d rows want=2", len(rows))
	}

	// Replacement is total: the new list fully supersedes the old one.
	res, err = f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  eventID,
		Entries:  []domainagg.RosterEntry{{MemberID: m2, Attended: true}},
	})
	if err != nil {
		t.Fatalf("ReplaceRoster (second): %v", err)
	}
	if res.AttendeeCount != 1 || res.FaithDecisionCount != 0 {
		t.Fatalf("second replacement counts: %+v", res)
	}
	if res.Snapshot.FaithDecisionsYear != 0 {
		t.Fatalf("faith_decisions_year after replacement: got=%d want=0", res.Snapshot.FaithDecisionsYear)
	}
	rows, err = f.attendees.ListByEvent(dbc, eventID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(rows) != 1 || rows[0].MemberID != m2 {
		t.Fatalf("final roster mismatch: %+v", rows)
	}
}

func TestFaithDecisionsScopedToReferenceYear(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{ReferenceYear: 2026})
	ctx := context.Background()

	m := f.createMember(t, domainagg.CreateMemberInput{FullName: "Ana Torres"})

	// An event from the previous year carries a faith decision; the yearly
	// tally must not pick it up.
	oldEv, err := f.agg.CreateEvent(ctx, domainagg.CreateEventInput{
		ChurchID: f.churchID,
		Title:    "Campana de Fin de Ano",
		StartsAt: time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent (2025): %v", err)
	}
	res, err := f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  oldEv.EntityID,
		Entries:  []domainagg.RosterEntry{{MemberID: m, Attended: true, FaithDecision: true}},
	})
	if err != nil {
		t.Fatalf("ReplaceRoster (2025 event): %v", err)
	}
	if res.FaithDecisionCount != 1 {
		t.Fatalf("faith_decision_count: got=%d want=1", res.FaithDecisionCount)
	}
	if res.Snapshot.FaithDecisionsYear != 0 {
		t.Fatalf("faith_decisions_year for out-of-year event: got=%d want=0", res.Snapshot.FaithDecisionsYear)
	}

	// The same decision on an in-year event does count.
	newEv, err := f.agg.CreateEvent(ctx, domainagg.CreateEventInput{
		ChurchID: f.churchID,
		Title:    "Culto de Ano Nuevo",
		StartsAt: time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent (2026): %v", err)
	}
	res, err = f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  newEv.EntityID,
		Entries:  []domainagg.RosterEntry{{MemberID: m, Attended: true, FaithDecision: true}},
	})
	if err != nil {
		t.Fatalf("ReplaceRoster (2026 event): %v", err)
	}
	if res.Snapshot.FaithDecisionsYear != 1 {
		t.Fatalf("faith_decisions_year for in-year event: got=%d want=1", res.Snapshot.FaithDecisionsYear)
	}
}

func TestRosterRejectsForeignMembers(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{})
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	other, err := f.churches.Create(dbc, []*domain.Church{{Name: "Otra Iglesia " + uuid.NewString()[:8]}})
	if err != nil {
		t.Fatalf("create second church: %v", err)
	}
	t.Cleanup(func() {
		_ = f.churches.Delete(dbctx.Context{Ctx: context.Background()}, other[0].ID)
	})
	foreign, err := f.agg.CreateMember(ctx, domainagg.CreateMemberInput{
		ChurchID: other[0].ID,
		FullName: "Miembro Ajeno",
	})
	if err != nil {
		t.Fatalf("create foreign member: %v", err)
	}

	evRes, err := f.agg.CreateEvent(ctx, domainagg.CreateEventInput{
		ChurchID: f.churchID,
		Title:    "Estudio Biblico",
		StartsAt: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	_, err = f.agg.ReplaceRoster(ctx, domainagg.ReplaceRosterInput{
		ChurchID: f.churchID,
		EventID:  evRes.EntityID,
		Entries:  []domainagg.RosterEntry{{MemberID: foreign.EntityID}},
	})
	if got := domainagg.CodeOf(err); got != domainagg.CodeCrossTenantReference {
		t.Fatalf("foreign roster member code: got=%q want=%q (%v)", got, domainagg.CodeCrossTenantReference, err)
	}

	// Role refs are checked the same way.
	_, err = f.agg.CreateEvent(ctx, domainagg.CreateEventInput{
		ChurchID:         f.churchID,
		Title:            "Culto",
		StartsAt:         time.Now().UTC().Add(48 * time.Hour),
		PreacherMemberID: &foreign.EntityID,
	})
	if got := domainagg.CodeOf(err); got != domainagg.CodeCrossTenantReference {
		t.Fatalf("foreign role ref code: got=%q want=%q (%v)", got, domainagg.CodeCrossTenantReference, err)
	}
}

func TestConcurrentWritesDoNotLoseUpdates(t *testing.T) {
	f := newAggFixture(t, domainagg.StatsPolicy{})
	ctx := context.Background()

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(week int) {
			defer wg.Done()
			_, err := f.agg.CreateWeeklyAttendance(ctx, domainagg.CreateWeeklyAttendanceInput{
				ChurchID:  f.churchID,
				WeekStart: base.AddDate(0, 0, 7*week),
				Count:     30 + week,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent write failed: %v", err)
		}
	}

	snap, err := f.agg.GetStats(ctx, f.churchID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if snap.StatsVersion != writers {
		t.Fatalf("stats_version: got=%d want=%d", snap.StatsVersion, writers)
	}
	// mean of 30,31,32,33 is 31.5, rounding up to 32
	if snap.AvgWeeklyAttendance != 32 {
		t.Fatalf("avg_weekly_attendance: got=%d want=32", snap.AvgWeeklyAttendance)
	}
}
