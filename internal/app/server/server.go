package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roster/internal/domain/absence"
	"roster/internal/domain/audit"
	"roster/internal/domain/auth"
	"roster/internal/domain/compensation"
	"roster/internal/domain/coverage"
	"roster/internal/domain/notifications"
	"roster/internal/domain/org"
	"roster/internal/domain/reports"
	"roster/internal/domain/schedule"
	"roster/internal/platform/config"
	"roster/internal/platform/db"
	"roster/internal/platform/email"
	"roster/internal/platform/jobs"
	"roster/internal/platform/metrics"
	"roster/internal/platform/realtime"
	absencehandler "roster/internal/transport/http/handlers/absence"
	adminhandler "roster/internal/transport/http/handlers/admin"
	authhandler "roster/internal/transport/http/handlers/auth"
	compensationhandler "roster/internal/transport/http/handlers/compensation"
	coveragehandler "roster/internal/transport/http/handlers/coverage"
	notificationshandler "roster/internal/transport/http/handlers/notifications"
	orghandler "roster/internal/transport/http/handlers/org"
	reportshandler "roster/internal/transport/http/handlers/reports"
	schedulehandler "roster/internal/transport/http/handlers/schedule"
	"roster/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	router := NewRouter(ctx, pool, cfg)

	log.Printf("roster server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter wires the full application; tests construct it against a
// throwaway database.
func NewRouter(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) http.Handler {
	authStore := auth.NewStore(pool)
	orgStore := org.NewStore(pool)
	scheduleSvc := schedule.NewService(schedule.NewStore(pool))
	absenceStore := absence.NewStore(pool)
	compensationSvc := compensation.NewService(compensation.NewStore(pool))
	auditSvc := audit.New(pool)
	notifySvc := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailEnabled, cfg.EmailFrom)
	hub := realtime.NewHub()

	jobRunner := jobs.New(pool)
	jobRunner.Start(ctx)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	coverageSvc := coverage.NewService(
		coverage.NewStore(pool),
		orgStore,
		scheduleSvc,
		absenceStore,
		compensationSvc,
		notifySvc,
		hub,
	)
	coverageSvc.Jobs = jobRunner
	if collector != nil {
		coverageSvc.Metrics = collector
	}

	reportsSvc := reports.NewService(coverageSvc.Store, orgStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if collector != nil {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(max(cfg.RateLimitPerMinute/4, 1), time.Minute))
			authHandler.RegisterRoutes(r)
		})

		orghandler.NewHandler(orgStore, authStore).RegisterRoutes(r)
		schedulehandler.NewHandler(scheduleSvc, authStore).RegisterRoutes(r)
		coveragehandler.NewHandler(coverageSvc, authStore, auditSvc).RegisterRoutes(r)
		absencehandler.NewHandler(absenceStore, authStore).RegisterRoutes(r)
		compensationhandler.NewHandler(compensationSvc, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc, hub).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, authStore).RegisterRoutes(r)
		adminhandler.NewHandler(auditSvc, collector, authStore).RegisterRoutes(r)
	})

	return router
}
