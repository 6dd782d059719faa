package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
)

// eventPatchRequest keeps the clearable fields as raw JSON so that an absent
// key and an explicit null decode to different patch values.
type eventPatchRequest struct {
	Title            *string         `json:"title"`
	Type             *string         `json:"type"`
	StartsAt         *time.Time      `json:"starts_at"`
	EndsAt           json.RawMessage `json:"ends_at"`
	DirectorMemberID json.RawMessage `json:"director_member_id"`
	PreacherMemberID json.RawMessage `json:"preacher_member_id"`
	ReaderMemberID   json.RawMessage `json:"reader_member_id"`
}

func (r eventPatchRequest) toPatch() (domainagg.EventPatch, error) {
	patch := domainagg.EventPatch{
		Title:    r.Title,
		Type:     r.Type,
		StartsAt: r.StartsAt,
	}

	endsAt, err := decodeClearable[time.Time](r.EndsAt)
	if err != nil {
		return patch, err
	}
	patch.EndsAt = endsAt

	for _, f := range []struct {
		raw  json.RawMessage
		dest ***uuid.UUID
	}{
		{r.DirectorMemberID, &patch.DirectorMemberID},
		{r.PreacherMemberID, &patch.PreacherMemberID},
		{r.ReaderMemberID, &patch.ReaderMemberID},
	} {
		v, err := decodeClearable[uuid.UUID](f.raw)
		if err != nil {
			return patch, err
		}
		*f.dest = v
	}
	return patch, nil
}

// decodeClearable returns nil when the key was absent, a pointer to nil for
// an explicit JSON null, and a pointer to the decoded value otherwise.
func decodeClearable[T any](raw json.RawMessage) (**T, error) {
	if raw == nil {
		return nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var cleared *T
		return &cleared, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	p := &v
	return &p, nil
}
