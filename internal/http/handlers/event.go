package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// POST /api/events
func (eh *EventHandler) Create(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var req struct {
		Title            string         `json:"title"`
		Type             string         `json:"type"`
		StartsAt         time.Time      `json:"starts_at"`
		EndsAt           *time.Time     `json:"ends_at"`
		DirectorMemberID *uuid.UUID     `json:"director_member_id"`
		PreacherMemberID *uuid.UUID     `json:"preacher_member_id"`
		ReaderMemberID   *uuid.UUID     `json:"reader_member_id"`
		Metadata         map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := eh.eventService.Create(c.Request.Context(), domainagg.CreateEventInput{
		ChurchID:         churchID,
		Title:            req.Title,
		Type:             req.Type,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		DirectorMemberID: req.DirectorMemberID,
		PreacherMemberID: req.PreacherMemberID,
		ReaderMemberID:   req.ReaderMemberID,
		Metadata:         req.Metadata,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"event_id": res.EntityID, "stats": res.Snapshot})
}

// PATCH /api/events/:id
// Role reference fields distinguish absent (leave as is) from explicit null
// (clear the assignment), hence the raw-message decode.
func (eh *EventHandler) Update(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req eventPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := eh.eventService.Update(c.Request.Context(), domainagg.UpdateEventInput{
		ChurchID: churchID,
		EventID:  eventID,
		Patch:    patch,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event_id": res.EntityID, "stats": res.Snapshot})
}

// DELETE /api/events/:id
func (eh *EventHandler) Delete(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := eh.eventService.Delete(c.Request.Context(), domainagg.DeleteEventInput{
		ChurchID: churchID,
		EventID:  eventID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event_id": res.EntityID, "stats": res.Snapshot})
}

// GET /api/events/:id
func (eh *EventHandler) Get(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	event, err := eh.eventService.Get(c.Request.Context(), churchID, eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event": event})
}

// GET /api/events?from=...&to=...&limit=N
func (eh *EventHandler) List(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		to = &t
	}
	events, err := eh.eventService.List(c.Request.Context(), churchID, from, to, queryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

// PUT /api/events/:id/attendees
// Replaces the whole roster atomically; partial bodies are rejected by the
// aggregate before any row is touched.
func (eh *EventHandler) ReplaceRoster(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Entries []domainagg.RosterEntry `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := eh.eventService.ReplaceRoster(c.Request.Context(), domainagg.ReplaceRosterInput{
		ChurchID: churchID,
		EventID:  eventID,
		Entries:  req.Entries,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"event_id":             eventID,
		"attendee_count":       res.AttendeeCount,
		"faith_decision_count": res.FaithDecisionCount,
		"stats":                res.Snapshot,
	})
}

// GET /api/events/:id/attendees
func (eh *EventHandler) GetRoster(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	roster, err := eh.eventService.GetRoster(c.Request.Context(), churchID, eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"event_id": eventID, "attendees": roster})
}
