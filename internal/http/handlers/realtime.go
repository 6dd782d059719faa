package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/realtime"
)

type RealtimeHandler struct {
	hub *realtime.StatsHub
}

func NewRealtimeHandler(hub *realtime.StatsHub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// GET /api/stats/stream — SSE stream of snapshot updates for the caller's
// church, pushed after every committed aggregate write.
func (rh *RealtimeHandler) StatsStream(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	client := rh.hub.NewClient(churchID)
	defer rh.hub.CloseClient(client)
	rh.hub.ServeHTTP(c.Writer, c.Request, client)
}
