package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	configloader "xianverse/internal/adapter/config"
	staticguide "xianverse/internal/adapter/guide/static"
	httpadapter "xianverse/internal/adapter/http"
	"xianverse/internal/adapter/metrics"
	metricsinmem "xianverse/internal/adapter/metrics/inmemory"
	metricsprom "xianverse/internal/adapter/metrics/prom"
	"xianverse/internal/adapter/notify"
	gormrepo "xianverse/internal/adapter/repo/gorm"
	"xianverse/internal/adapter/repo/memory"
	"xianverse/internal/app/activity"
	"xianverse/internal/app/breakthrough"
	"xianverse/internal/app/combat"
	"xianverse/internal/app/daily"
	"xianverse/internal/app/enroll"
	"xianverse/internal/app/guide"
	"xianverse/internal/app/history"
	"xianverse/internal/app/ports"
	"xianverse/internal/app/profile"
	"xianverse/internal/app/rank"
	"xianverse/internal/app/scheduler"
	"xianverse/internal/domain/cultivation"
	"xianverse/internal/logger"
)

func main() {
	log := logger.New(envOr("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	cfg, err := configloader.Load(strings.TrimSpace(os.Getenv("XIANVERSE_CONFIG")))
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	users, events, lock := buildRepos(log)

	kpi := metricsinmem.NewRecorder()
	opMetrics := metrics.Fanout{kpi, metricsprom.NewMetrics(prometheus.DefaultRegisterer)}

	rng := cultivation.NewLockedRand(time.Now().UnixNano())
	notifier := notify.NewLogNotifier(log)
	grace := time.Duration(cfg.Scheduler.GraceSeconds) * time.Second

	// The scheduler settles through the activity usecase; the usecase arms
	// the scheduler. Closing over the variable breaks the cycle.
	var activityUC activity.UseCase
	sched := scheduler.New(func(ctx context.Context, userID string) (string, error) {
		resp, err := activityUC.Collect(ctx, activity.CollectRequest{UserID: userID})
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	}, notifier, log, grace)

	activityUC = activity.UseCase{
		Lock:      lock,
		Users:     users,
		Events:    events,
		Scheduler: sched,
		Metrics:   opMetrics,
		Config:    cfg,
		Rand:      rng,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		EnrollUC:       enroll.UseCase{Lock: lock, Users: users, Metrics: opMetrics, Config: cfg, Now: time.Now},
		ActivityUC:     activityUC,
		BreakthroughUC: breakthrough.UseCase{Lock: lock, Users: users, Events: events, Metrics: opMetrics, Config: cfg, Rand: rng, Now: time.Now},
		CombatUC:       combat.UseCase{Lock: lock, Users: users, Events: events, Metrics: opMetrics, Config: cfg, Rand: rng, Now: time.Now},
		DailyUC:        daily.UseCase{Lock: lock, Users: users, Events: events, Metrics: opMetrics, Config: cfg, Now: time.Now},
		ProfileUC:      profile.UseCase{Users: users, Config: cfg, Now: time.Now},
		RankUC:         rank.UseCase{Users: users},
		HistoryUC:      history.UseCase{Events: events},
		GuideUC:        guide.UseCase{Provider: staticguide.Provider{Root: envOr("GUIDE_ROOT", "./guide")}},
		KPI:            kpi,
	}

	rearmActiveTimers(users, sched, log)

	if addr := strings.TrimSpace(os.Getenv("METRICS_ADDR")); addr != "" {
		go serveMetrics(addr, log)
	}

	addr := envOr("HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(context.Context) {
		sched.Shutdown()
	})

	log.Info("server listening", zap.String("addr", addr))
	s.Spin()
}

func buildRepos(log *zap.Logger) (ports.UserRepository, ports.EventRepository, ports.UserLockManager) {
	dsn := strings.TrimSpace(os.Getenv("XIANVERSE_DB_DSN"))
	if dsn == "" {
		log.Info("no database configured, using in-memory store")
		store := memory.NewStore()
		return memory.NewUserRepo(store), memory.NewEventRepo(store), memory.NewLockManager()
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatal("open postgres", zap.Error(err))
	}
	migrationsDir := envOr("MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}
	return gormrepo.NewUserRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewLockManager(db)
}

// rearmActiveTimers restores completion timers lost across a restart.
func rearmActiveTimers(users ports.UserRepository, sched *scheduler.Scheduler, log *zap.Logger) {
	records, err := users.ListActive(context.Background())
	if err != nil {
		log.Warn("list active activities", zap.Error(err))
		return
	}
	for _, rec := range records {
		if rec.Activity == nil {
			continue
		}
		sched.Arm(rec.UserID, rec.Activity.EndAt, rec.UserID)
	}
	if len(records) > 0 {
		log.Info("re-armed completion timers", zap.Int("count", len(records)))
	}
}

func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics listener stopped", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
