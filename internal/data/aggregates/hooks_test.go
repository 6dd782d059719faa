package aggregates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
)

type recordingHooks struct {
	rosterStatuses []string
}

func (h *recordingHooks) ObserveOperation(string, string, time.Duration) {}
func (h *recordingHooks) IncConflict(string)                             {}
func (h *recordingHooks) IncRetry(string)                                {}

func (h *recordingHooks) IncRosterReplaced(status string) {
	h.rosterStatuses = append(h.rosterStatuses, status)
}

func TestReplaceRosterReportsOutcome(t *testing.T) {
	rec := &recordingHooks{}
	agg := NewChurchStatsAggregate(ChurchStatsDeps{Base: BaseDeps{Hooks: rec}})

	if _, err := agg.ReplaceRoster(context.Background(), domainagg.ReplaceRosterInput{}); err == nil {
		t.Fatal("expected validation failure for missing church id")
	}

	member := uuid.New()
	_, err := agg.ReplaceRoster(context.Background(), domainagg.ReplaceRosterInput{
		ChurchID: uuid.New(),
		EventID:  uuid.New(),
		Entries:  []domainagg.RosterEntry{{MemberID: member}, {MemberID: member}},
	})
	if got := domainagg.CodeOf(err); got != domainagg.CodeDuplicateAttendee {
		t.Fatalf("duplicate entries code: got=%q want=%q (%v)", got, domainagg.CodeDuplicateAttendee, err)
	}

	want := []string{string(domainagg.CodeValidation), string(domainagg.CodeDuplicateAttendee)}
	if len(rec.rosterStatuses) != len(want) {
		t.Fatalf("roster outcomes: got=%v want=%v", rec.rosterStatuses, want)
	}
	for i, w := range want {
		if rec.rosterStatuses[i] != w {
			t.Fatalf("roster outcome %d: got=%q want=%q", i, rec.rosterStatuses[i], w)
		}
	}
}
