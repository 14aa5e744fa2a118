package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffdesk/internal/domain/announcement"
	"staffdesk/internal/domain/attendance"
	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/catalog"
	"staffdesk/internal/domain/directory"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/domain/payroll"
	"staffdesk/internal/domain/training"
	"staffdesk/internal/platform/config"
	"staffdesk/internal/platform/db"
	adminhandler "staffdesk/internal/transport/http/handlers/admin"
	announcementhandler "staffdesk/internal/transport/http/handlers/announcements"
	attendancehandler "staffdesk/internal/transport/http/handlers/attendance"
	authhandler "staffdesk/internal/transport/http/handlers/auth"
	cataloghandler "staffdesk/internal/transport/http/handlers/catalog"
	employeehandler "staffdesk/internal/transport/http/handlers/employees"
	leavehandler "staffdesk/internal/transport/http/handlers/leave"
	payrollhandler "staffdesk/internal/transport/http/handlers/payroll"
	traininghandler "staffdesk/internal/transport/http/handlers/training"
	"staffdesk/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds and wires the router. The caller owns
// the pool via Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, Pool: pool}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config
	pool := a.Pool

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

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
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).
			Group(func(r chi.Router) {
				authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret).RegisterRoutes(r)
			})

		directoryStore := directory.NewStore(pool)
		adminhandler.NewHandler(directoryStore, directory.NewService(pool)).RegisterRoutes(r)
		employeehandler.NewHandler(directoryStore).RegisterRoutes(r)

		catalogStore := catalog.NewStore(pool)
		cataloghandler.NewHandler(catalogStore).RegisterRoutes(r)

		payrollhandler.NewHandler(payroll.NewEngine(pool), catalogStore, cfg.PayslipDir).RegisterRoutes(r)
		leavehandler.NewHandler(leave.NewStore(pool)).RegisterRoutes(r)
		attendancehandler.NewHandler(attendance.NewStore(pool)).RegisterRoutes(r)
		announcementhandler.NewHandler(announcement.NewStore(pool)).RegisterRoutes(r)
		traininghandler.NewHandler(training.NewStore(pool)).RegisterRoutes(r)
	})

	return router
}

func (a *App) Run() error {
	slog.Info("server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

func (a *App) Close() {
	a.Pool.Close()
}
