package observability

import (
	"strings"
	"testing"
	"time"
)

func TestInitDisabledByDefault(t *testing.T) {
	if m := Init(nil); m != nil {
		t.Fatalf("expected nil metrics when METRICS_ENABLED is unset, got %v", m)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/church", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAggregateOperation("ChurchStats.CreateMember", "success", time.Millisecond)
	m.IncAggregateConflict("ChurchStats.ReplaceRoster")
	m.IncAggregateRetry("ChurchStats.ReplaceRoster")
	m.IncRosterReplaced("success")
	m.IncReminderRun("ok")
	m.IncSnapshotEvent("publish", "ok")
	if err := m.WritePrometheus(&strings.Builder{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestWritePrometheusExposition(t *testing.T) {
	m := &Metrics{
		apiRequests: NewCounterVec("gc_api_requests_total", "Total API requests.", []string{"method", "route", "status"}),
		apiInflight: NewGauge("gc_api_inflight_requests", "In-flight API requests."),
		aggOps:      NewCounterVec("gc_aggregate_operations_total", "Aggregate ops.", []string{"op", "status"}),
		aggLatency: NewHistogramVec(
			"gc_aggregate_operation_duration_seconds",
			"Aggregate latency.",
			[]string{"op", "status"},
			[]float64{0.01, 0.1, 1},
		),
	}

	m.apiRequests.Inc("GET", "/api/church/stats", "200")
	m.apiRequests.Inc("GET", "/api/church/stats", "200")
	m.apiInflight.Set(3)
	m.aggOps.Inc("ChurchStats.ReplaceRoster", "success")
	m.aggLatency.Observe(0.05, "ChurchStats.ReplaceRoster", "success")

	var sb strings.Builder
	if err := m.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"# TYPE gc_api_requests_total counter",
		`gc_api_requests_total{method="GET",route="/api/church/stats",status="200"} 2.000000`,
		"gc_api_inflight_requests 3.000000",
		`gc_aggregate_operations_total{op="ChurchStats.ReplaceRoster",status="success"} 1.000000`,
		"# TYPE gc_aggregate_operation_duration_seconds histogram",
		`le="0.1"`,
		"gc_aggregate_operation_duration_seconds_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q:\n%s", want, out)
		}
	}
}
