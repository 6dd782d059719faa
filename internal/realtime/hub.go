package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

// StatsClient is one dashboard connection subscribed to a single church's
// snapshot stream.
type StatsClient struct {
	ID       uuid.UUID
	ChurchID uuid.UUID
	Outbound chan domainagg.StatsSnapshot
	done     chan struct{}
}

// StatsHub fans snapshots out to connected dashboard clients, keyed by
// church. Snapshots arrive either from the in-process aggregate or from the
// Redis forwarder when another instance committed the write.
type StatsHub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	clients map[uuid.UUID]map[*StatsClient]bool
}

func NewStatsHub(log *logger.Logger) *StatsHub {
	return &StatsHub{
		log:     log.With("component", "StatsHub"),
		clients: make(map[uuid.UUID]map[*StatsClient]bool),
	}
}

func (h *StatsHub) NewClient(churchID uuid.UUID) *StatsClient {
	c := &StatsClient{
		ID:       uuid.New(),
		ChurchID: churchID,
		Outbound: make(chan domainagg.StatsSnapshot, 10),
		done:     make(chan struct{}),
	}
	h.mu.Lock()
	set, ok := h.clients[churchID]
	if !ok {
		set = make(map[*StatsClient]bool)
		h.clients[churchID] = set
	}
	set[c] = true
	h.mu.Unlock()
	h.log.Debug("stats client subscribed", "clientID", c.ID, "churchID", churchID)
	return c
}

func (h *StatsHub) Broadcast(snap domainagg.StatsSnapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set, ok := h.clients[snap.ChurchID]
	if !ok {
		return
	}
	for c := range set {
		select {
		case c.Outbound <- snap:
		default:
			h.log.Warn("dropping snapshot; outbound buffer full", "clientID", c.ID)
		}
	}
}

func (h *StatsHub) CloseClient(c *StatsClient) {
	h.mu.Lock()
	if set, ok := h.clients[c.ChurchID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.ChurchID)
		}
	}
	h.mu.Unlock()
	close(c.done)
	close(c.Outbound)
}

// ServeHTTP streams the client's snapshots as server-sent events until the
// request context ends.
func (h *StatsHub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *StatsClient) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug("stats client context done", "clientID", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case snap := <-client.Outbound:
			raw, err := json.Marshal(snap)
			if err != nil {
				h.log.Warn("failed to marshal snapshot", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: stats\ndata: %s\n\n", raw)
			flusher.Flush()
		}
	}
}
