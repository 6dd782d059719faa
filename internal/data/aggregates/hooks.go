package aggregates

import (
	"time"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
)

// Hooks receives lifecycle signals from aggregate writes so callers can feed
// whatever telemetry backend they run.
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
	IncConflict(op string)
	IncRetry(op string)
	IncRosterReplaced(status string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
func (noopHooks) IncRosterReplaced(string)                       {}

type metricsHooks struct {
	m *observability.Metrics
}

func NewObservabilityHooks(m *observability.Metrics) Hooks {
	if m == nil {
		return noopHooks{}
	}
	return metricsHooks{m: m}
}

func (h metricsHooks) ObserveOperation(op, status string, dur time.Duration) {
	h.m.ObserveAggregateOperation(op, status, dur)
}

func (h metricsHooks) IncConflict(op string)           { h.m.IncAggregateConflict(op) }
func (h metricsHooks) IncRetry(op string)              { h.m.IncAggregateRetry(op) }
func (h metricsHooks) IncRosterReplaced(status string) { h.m.IncRosterReplaced(status) }
