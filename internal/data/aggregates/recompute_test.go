package aggregates

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
)

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{49.4, 49},
		{49.5, 50},
		{50.0, 50},
		{50.6, 51},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := roundHalfUp(tc.in); got != tc.want {
			t.Fatalf("roundHalfUp(%v): got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeWeekStart(t *testing.T) {
	// 2026-03-04 is a Wednesday; its week starts Monday 2026-03-02.
	wed := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := NormalizeWeekStart(wed); !got.Equal(want) {
		t.Fatalf("wednesday: got=%v want=%v", got, want)
	}

	// A Monday maps onto itself, time stripped.
	mon := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	if got := NormalizeWeekStart(mon); !got.Equal(want) {
		t.Fatalf("monday: got=%v want=%v", got, want)
	}

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	if got := NormalizeWeekStart(sun); !got.Equal(want) {
		t.Fatalf("sunday: got=%v want=%v", got, want)
	}

	// Non-UTC input normalizes through UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 3, 4, 2, 0, 0, 0, loc)
	wantTue := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := NormalizeWeekStart(local); !got.Equal(wantTue) {
		t.Fatalf("zoned: got=%v want=%v", got, wantTue)
	}
}

func TestValidateRosterEntries(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()

	if err := ValidateRosterEntries(nil); err != nil {
		t.Fatalf("empty roster must validate: %v", err)
	}
	if err := ValidateRosterEntries([]domainagg.RosterEntry{
		{MemberID: m1}, {MemberID: m2},
	}); err != nil {
		t.Fatalf("distinct members must validate: %v", err)
	}

	err := ValidateRosterEntries([]domainagg.RosterEntry{
		{MemberID: m1}, {MemberID: m2}, {MemberID: m1},
	})
	if err == nil {
		t.Fatal("expected duplicate member error")
	}
	mapped := MapError("ChurchStats.ReplaceRoster", err)
	if got := domainagg.CodeOf(mapped); got != domainagg.CodeDuplicateAttendee {
		t.Fatalf("unexpected code: got=%q want=%q", got, domainagg.CodeDuplicateAttendee)
	}

	err = ValidateRosterEntries([]domainagg.RosterEntry{{MemberID: uuid.Nil}})
	if err == nil {
		t.Fatal("expected missing member_id error")
	}
	mapped = MapError("ChurchStats.ReplaceRoster", err)
	if got := domainagg.CodeOf(mapped); got != domainagg.CodeValidation {
		t.Fatalf("unexpected code: got=%q want=%q", got, domainagg.CodeValidation)
	}
}

func TestEffectiveReferenceYear(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if got := (domainagg.StatsPolicy{}).EffectiveReferenceYear(now); got != 2026 {
		t.Fatalf("default year: got=%d want=2026", got)
	}
	if got := (domainagg.StatsPolicy{ReferenceYear: 2024}).EffectiveReferenceYear(now); got != 2024 {
		t.Fatalf("pinned year: got=%d want=2024", got)
	}
}
