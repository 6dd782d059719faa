package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEventPatchDistinguishesAbsentFromNull(t *testing.T) {
	preacher := uuid.New()
	body := []byte(`{
		"title": "Culto Especial",
		"preacher_member_id": "` + preacher.String() + `",
		"director_member_id": null
	}`)

	var req eventPatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err := req.toPatch()
	if err != nil {
		t.Fatalf("toPatch: %v", err)
	}

	if patch.Title == nil || *patch.Title != "Culto Especial" {
		t.Fatalf("title: %+v", patch.Title)
	}
	if patch.PreacherMemberID == nil || *patch.PreacherMemberID == nil || **patch.PreacherMemberID != preacher {
		t.Fatalf("preacher ref should be set: %+v", patch.PreacherMemberID)
	}
	if patch.DirectorMemberID == nil || *patch.DirectorMemberID != nil {
		t.Fatalf("explicit null should clear the director ref: %+v", patch.DirectorMemberID)
	}
	if patch.ReaderMemberID != nil {
		t.Fatalf("absent key must stay untouched: %+v", patch.ReaderMemberID)
	}
	if patch.EndsAt != nil {
		t.Fatalf("absent ends_at must stay untouched: %+v", patch.EndsAt)
	}
}

func TestEventPatchEndsAt(t *testing.T) {
	var req eventPatchRequest
	if err := json.Unmarshal([]byte(`{"ends_at": "2026-03-08T12:00:00Z"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err := req.toPatch()
	if err != nil {
		t.Fatalf("toPatch: %v", err)
	}
	want := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	if patch.EndsAt == nil || *patch.EndsAt == nil || !(**patch.EndsAt).Equal(want) {
		t.Fatalf("ends_at: %+v", patch.EndsAt)
	}

	req = eventPatchRequest{}
	if err := json.Unmarshal([]byte(`{"ends_at": null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err = req.toPatch()
	if err != nil {
		t.Fatalf("toPatch: %v", err)
	}
	if patch.EndsAt == nil || *patch.EndsAt != nil {
		t.Fatalf("null ends_at should clear: %+v", patch.EndsAt)
	}
}

func TestEventPatchRejectsMalformedRef(t *testing.T) {
	var req eventPatchRequest
	if err := json.Unmarshal([]byte(`{"reader_member_id": "not-a-uuid"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := req.toPatch(); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}
