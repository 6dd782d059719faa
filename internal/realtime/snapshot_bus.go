package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

// SnapshotBus fans out committed stats snapshots over Redis pub/sub so
// dashboards can refresh without polling. Publishing is best effort; a lost
// message only delays a dashboard until its next read.
type SnapshotBus interface {
	PublishSnapshot(ctx context.Context, snap domainagg.StatsSnapshot) error
	StartForwarder(ctx context.Context, onSnap func(snap domainagg.StatsSnapshot)) error
	Close() error
}

type snapshotBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
	metrics *observability.Metrics
}

func NewSnapshotBus(log *logger.Logger, metrics *observability.Metrics) (SnapshotBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_SNAPSHOT_CHANNEL"))
	if ch == "" {
		ch = "church_stats"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &snapshotBus{
		log:     log.With("service", "SnapshotBus"),
		rdb:     rdb,
		channel: ch,
		metrics: metrics,
	}, nil
}

func (b *snapshotBus) PublishSnapshot(ctx context.Context, snap domainagg.StatsSnapshot) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("snapshot bus not initialized")
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		b.metrics.IncSnapshotEvent("publish", "error")
		return err
	}
	b.metrics.IncSnapshotEvent("publish", "ok")
	return nil
}

func (b *snapshotBus) StartForwarder(ctx context.Context, onSnap func(snap domainagg.StatsSnapshot)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("snapshot bus not initialized")
	}
	if onSnap == nil {
		return fmt.Errorf("onSnap callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var snap domainagg.StatsSnapshot
				if err := json.Unmarshal([]byte(m.Payload), &snap); err != nil {
					b.log.Warn("bad snapshot payload", "error", err)
					b.metrics.IncSnapshotEvent("receive", "error")
					continue
				}
				b.metrics.IncSnapshotEvent("receive", "ok")
				onSnap(snap)
			}
		}
	}()

	return nil
}

func (b *snapshotBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
