package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// POST /api/attendance
// week_start accepts a date ("2026-03-02") or RFC3339 timestamp; the
// aggregate normalizes it to the Monday of that week.
func (ah *AttendanceHandler) Create(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var req struct {
		WeekStart string `json:"week_start"`
		Count     int    `json:"count"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.attendanceService.Create(c.Request.Context(), domainagg.CreateWeeklyAttendanceInput{
		ChurchID:  churchID,
		WeekStart: weekStart,
		Count:     req.Count,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"record_id": res.EntityID, "stats": res.Snapshot})
}

// PATCH /api/attendance/:id
func (ah *AttendanceHandler) Update(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	recordID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Count *int    `json:"count"`
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.attendanceService.Update(c.Request.Context(), domainagg.UpdateWeeklyAttendanceInput{
		ChurchID: churchID,
		RecordID: recordID,
		Count:    req.Count,
		Notes:    req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"record_id": res.EntityID, "stats": res.Snapshot})
}

// DELETE /api/attendance/:id
func (ah *AttendanceHandler) Delete(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	recordID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := ah.attendanceService.Delete(c.Request.Context(), domainagg.DeleteWeeklyAttendanceInput{
		ChurchID: churchID,
		RecordID: recordID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"record_id": res.EntityID, "stats": res.Snapshot})
}

// GET /api/attendance?limit=N
func (ah *AttendanceHandler) List(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	records, err := ah.attendanceService.List(c.Request.Context(), churchID, queryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"attendance": records})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
