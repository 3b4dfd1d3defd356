package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrbus/internal/domain/access"
	"hrbus/internal/domain/auth"
	"hrbus/internal/domain/contract"
	"hrbus/internal/domain/employee"
	"hrbus/internal/domain/ingest"
	"hrbus/internal/platform/config"
	"hrbus/internal/platform/db"
	"hrbus/internal/platform/metrics"
	"hrbus/internal/transport/http/api"
	accesshandler "hrbus/internal/transport/http/handlers/access"
	employeehandler "hrbus/internal/transport/http/handlers/employee"
	ingesthandler "hrbus/internal/transport/http/handlers/ingest"
	"hrbus/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects to the database, runs migrations and seed data when
// configured, and assembles the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
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
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{
		Config:  cfg,
		Pool:    pool,
		Metrics: metrics.New(),
	}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	verifier := &auth.Verifier{
		Audience:  a.Config.AuthAudience,
		Issuer:    "https://" + a.Config.AuthDomain + "/",
		DemoToken: a.Config.DemoToken,
		Keys:      auth.NewJWKSClient(a.Config.AuthDomain),
	}

	employeeStore := employee.NewStore(a.Pool)
	accessStore := access.NewStore(a.Pool)
	ingestStore := ingest.NewStore(a.Pool)
	contractClient := contract.NewClient(a.Config.ContractAPIKey, a.Config.ContractTemplateID, a.Config.ContractBaseURL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS(a.Config.CORSAllowedOrigin))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	if a.Config.MetricsEnabled {
		router.Use(middleware.Metrics(a.Metrics))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Demo token lookup stays outside the auth wall so local tooling
		// can bootstrap itself. It returns nothing in production.
		r.Get("/auth/demo-token", func(w http.ResponseWriter, r *http.Request) {
			if a.Config.DemoToken == "" {
				api.Fail(w, http.StatusNotFound, "not_available", "demo token is not enabled", middleware.GetRequestID(r.Context()))
				return
			}
			api.Success(w, map[string]string{"token": a.Config.DemoToken}, middleware.GetRequestID(r.Context()))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(verifier))

			employeehandler.NewHandler(employeeStore, contractClient).RegisterRoutes(r)
			accesshandler.NewHandler(accessStore).RegisterRoutes(r)
			ingesthandler.NewHandler(ingestStore, ingestStore, ingestStore).RegisterRoutes(r)
		})
	})

	return router
}

func (a *App) Close() {
	a.Pool.Close()
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	log.Printf("hrbus server listening on %s", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}
