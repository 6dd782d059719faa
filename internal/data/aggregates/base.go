package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

// Writes that fail on a concurrency conflict are retried this many times in
// total before the conflict surfaces to the caller.
const maxWriteAttempts = 3

const retryBaseBackoff = 50 * time.Millisecond

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	return d
}

// executeWrite runs fn inside one transaction, maps failures onto the
// aggregate error taxonomy and retries conflict failures with backoff.
// Each retry re-runs fn from scratch in a fresh transaction.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}

	var mapped error
attempts:
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		mapped = MapError(op, deps.Runner.InTx(ctx, fn))
		if mapped == nil || !domainagg.IsRetryable(mapped) || attempt == maxWriteAttempts {
			break
		}
		deps.Hooks.IncRetry(op)
		if deps.Log != nil {
			deps.Log.Warn("aggregate write conflict, retrying", "op", op, "attempt", attempt, "error", mapped)
		}
		select {
		case <-ctx.Done():
			mapped = MapError(op, ctx.Err())
			break attempts
		case <-time.After(retryBaseBackoff << (attempt - 1)):
		}
	}

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		return "failure"
	}
	return code
}
