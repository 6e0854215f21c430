package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrcomp/internal/domain/audit"
	"hrcomp/internal/domain/auth"
	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/domain/performance"
	"hrcomp/internal/domain/reports"
	"hrcomp/internal/platform/config"
	"hrcomp/internal/platform/db"
	"hrcomp/internal/platform/jobs"
	"hrcomp/internal/platform/metrics"
	compensationhandler "hrcomp/internal/transport/http/handlers/compensation"
	performancehandler "hrcomp/internal/transport/http/handlers/performance"
	"hrcomp/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

// BuildEngine turns the configured policies into a bonus engine.
func BuildEngine(cfg config.Config) (*compensation.Engine, error) {
	weights := compensation.DefaultWeightPolicy()
	if cfg.WeightPolicyFile != "" {
		loaded, err := compensation.LoadWeightPolicy(cfg.WeightPolicyFile)
		if err != nil {
			return nil, fmt.Errorf("weight policy: %w", err)
		}
		weights = loaded
	}
	proRata, err := compensation.ProRataPolicyByName(cfg.ProRataPolicy)
	if err != nil {
		return nil, err
	}
	weighting, err := compensation.ParseCorporateWeighting(cfg.CorporateWeighting)
	if err != nil {
		return nil, err
	}
	return compensation.NewEngine(
		compensation.WithWeightPolicy(weights),
		compensation.WithProRataPolicy(proRata),
		compensation.WithCorporateWeighting(weighting),
	), nil
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	collector := metrics.New()
	bonusSvc := compensation.NewService(compensation.NewStore(pool), engine, compensation.ServiceOptions{
		Workers:   cfg.BonusWorkers,
		CacheSize: cfg.CorporateCacheSize,
		CacheTTL:  cfg.CorporateCacheTTL,
		Recorder:  collector,
	})
	jobSvc := jobs.New(pool, cfg, bonusSvc)

	app := &App{Config: cfg, DB: pool, Jobs: jobSvc, Metrics: collector}
	app.Router = newRouter(cfg, pool, collector, bonusSvc, jobSvc)
	return app, nil
}

func newRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector, bonusSvc *compensation.Service, jobSvc *jobs.Service) http.Handler {
	perms := auth.StaticPermissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

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

	if cfg.MetricsEnabled {
		router.Handle("/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		compensationHandler := compensationhandler.NewHandler(bonusSvc, perms, audit.New(pool)).
			WithSummaries(reports.NewService(reports.NewStore(pool)), jobSvc)
		compensationHandler.RegisterRoutes(r)

		performanceHandler := performancehandler.NewHandler(performance.NewService(compensation.NewStore(pool)), perms)
		performanceHandler.RegisterRoutes(r)
	})

	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown failed", "err", err)
		}
	}()

	slog.Info("compensation server listening", "addr", cfg.Addr, "proRata", cfg.ProRataPolicy, "weighting", cfg.CorporateWeighting)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
