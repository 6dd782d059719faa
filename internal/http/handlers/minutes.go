package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type MinuteHandler struct {
	minuteService services.MinuteService
}

func NewMinuteHandler(minuteService services.MinuteService) *MinuteHandler {
	return &MinuteHandler{minuteService: minuteService}
}

// POST /api/minutes
func (mh *MinuteHandler) Create(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var req struct {
		Title       string   `json:"title"`
		Body        string   `json:"body"`
		MeetingDate string   `json:"meeting_date"`
		Attachments []string `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var meetingDate time.Time
	if req.MeetingDate != "" {
		var err error
		if meetingDate, err = parseDate(req.MeetingDate); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	minute, err := mh.minuteService.Create(c.Request.Context(), churchID, services.CreateMinuteInput{
		Title:       req.Title,
		Body:        req.Body,
		MeetingDate: meetingDate,
		Attachments: req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"minute": minute})
}

// PATCH /api/minutes/:id
func (mh *MinuteHandler) Update(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	minuteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title       *string   `json:"title"`
		Body        *string   `json:"body"`
		MeetingDate *string   `json:"meeting_date"`
		Attachments *[]string `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.UpdateMinuteInput{
		Title:       req.Title,
		Body:        req.Body,
		Attachments: req.Attachments,
	}
	if req.MeetingDate != nil {
		t, err := parseDate(*req.MeetingDate)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		in.MeetingDate = &t
	}
	minute, err := mh.minuteService.Update(c.Request.Context(), churchID, minuteID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"minute": minute})
}

// DELETE /api/minutes/:id
func (mh *MinuteHandler) Delete(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	minuteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := mh.minuteService.Delete(c.Request.Context(), churchID, minuteID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/minutes/:id
func (mh *MinuteHandler) Get(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	minuteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	minute, err := mh.minuteService.Get(c.Request.Context(), churchID, minuteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"minute": minute})
}

// GET /api/minutes?limit=N
func (mh *MinuteHandler) List(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	minutes, err := mh.minuteService.List(c.Request.Context(), churchID, queryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"minutes": minutes})
}
