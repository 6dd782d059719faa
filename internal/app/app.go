package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/db"
	httpserver "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/observability"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/envutil"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/realtime"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpserver.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Hub      *realtime.StatsHub

	bus          realtime.SnapshotBus
	metrics      *observability.Metrics
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := db.AutoMigrateAll(pg.DB()); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	metrics := observability.Init(log)
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "gestion-cristiana",
		Environment: envutil.String("APP_ENV", "development"),
	})

	hub := realtime.NewStatsHub(log)

	var bus realtime.SnapshotBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = realtime.NewSnapshotBus(log, metrics)
		if err != nil {
			log.Warn("snapshot bus unavailable; stats stay in-process only", "error", err)
			bus = nil
		}
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, hub, bus, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, theDB, serviceset, hub)
	mw := wireMiddleware(log, serviceset)
	server := wireServer(log, metrics, handlerset, mw)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		bus:          bus,
		metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background pieces: the event reminder scheduler, the
// cross-instance snapshot forwarder and the metrics exposition server.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.Reminder != nil {
		if err := a.Services.Reminder.Start(ctx); err != nil {
			a.Log.Warn("reminder scheduler failed to start", "error", err)
		}
	}

	if a.bus != nil {
		if err := a.bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Warn("snapshot forwarder failed to start", "error", err)
		}
	}

	if a.metrics != nil {
		a.metrics.StartServer(ctx, a.Log, envutil.String("METRICS_ADDR", ":9091"))
		a.metrics.StartPostgresCollector(ctx, a.Log, a.DB)
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			a.metrics.StartRedisCollector(ctx, a.Log, addr)
		}
	}
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Services.Reminder != nil {
		a.Services.Reminder.Stop()
	}
	if a.bus != nil {
		a.bus.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
