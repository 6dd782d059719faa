package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type CalendarHandler struct {
	calendarService services.CalendarService
}

func NewCalendarHandler(calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// GET /api/calendar/:year/:month — renders the month grid as a PNG.
func (ch *CalendarHandler) RenderMonth(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	year := queryPathInt(c, "year")
	month := queryPathInt(c, "month")
	if year < 1970 || year > 9999 || month < 1 || month > 12 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("invalid year/month %d/%d", year, month))
		return
	}
	png, err := ch.calendarService.RenderMonth(c.Request.Context(), churchID, year, time.Month(month))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func queryPathInt(c *gin.Context, name string) int {
	var v int
	if _, err := fmt.Sscanf(c.Param(name), "%d", &v); err != nil {
		return 0
	}
	return v
}
