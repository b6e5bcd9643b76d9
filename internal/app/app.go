// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bistroboss/bistro-api/internal/auth"
	"github.com/bistroboss/bistro-api/internal/cart"
	cartmongo "github.com/bistroboss/bistro-api/internal/cart/mongodb"
	"github.com/bistroboss/bistro-api/internal/config"
	"github.com/bistroboss/bistro-api/internal/menu"
	menumongo "github.com/bistroboss/bistro-api/internal/menu/mongodb"
	"github.com/bistroboss/bistro-api/internal/payments"
	paymentsmongo "github.com/bistroboss/bistro-api/internal/payments/mongodb"
	"github.com/bistroboss/bistro-api/internal/payments/stripe"
	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/bistroboss/bistro-api/internal/pkg/mongodb"
	"github.com/bistroboss/bistro-api/internal/review"
	reviewmongo "github.com/bistroboss/bistro-api/internal/review/mongodb"
	"github.com/bistroboss/bistro-api/internal/stats"
	statsmongo "github.com/bistroboss/bistro-api/internal/stats/mongodb"
	"github.com/bistroboss/bistro-api/internal/users"
	usersmongo "github.com/bistroboss/bistro-api/internal/users/mongodb"
	"github.com/bistroboss/bistro-api/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/time/rate"
)

// App represents the application instance.
type App struct {
	config        *config.Config
	logger        *slog.Logger
	client        *mongo.Client
	server        *http.Server
	metricsServer *http.Server
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	logger := initLogger(cfg.Log)

	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer connectCancel()

	client, err := mongodb.Connect(connectCtx, mongodb.Config{
		URI:            cfg.Database.URI,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	app := &App{
		config: cfg,
		logger: logger,
		client: client,
	}

	router := app.setupRouter(client.Database(cfg.Database.Name))

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Metrics server on separate port
	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP servers.
func (a *App) Run() error {
	// Start metrics server in background
	go func() {
		a.logger.Info("starting metrics server",
			"host", a.config.Server.Host,
			"port", a.config.Server.MetricsPort,
		)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	// Start main server
	a.logger.Info("starting server",
		"host", a.config.Server.Host,
		"port", a.config.Server.Port,
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	// Shutdown both servers in parallel
	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := a.server.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
			mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	if err := a.client.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("disconnect mongodb: %w", err))
	}

	return errors.Join(errs...)
}

// Router returns the HTTP handler for testing.
func (a *App) Router() http.Handler {
	return a.server.Handler
}

func (a *App) setupRouter(db *mongo.Database) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware must be first to measure full request time
	r.Use(httputil.MetricsMiddleware)

	// CORS must be early to handle preflight requests before other middleware
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	r.Use(middleware.RequestID)
	r.Use(httputil.RequestLoggerMiddleware(a.logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.Text(w, http.StatusOK, "Boss is running on the port")
	})
	r.Get("/healthz", a.healthzHandler)
	r.Get("/readyz", a.readyzHandler)
	r.Get("/version", a.versionHandler)

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		http.ServeFile(w, r, "api/openapi/openapi.yaml")
	})

	authenticator := auth.NewAuthenticator(a.config.JWT.SecretKey, a.config.JWT.TokenDuration)
	authHandler := auth.NewHandler(authenticator)

	usersRepo := usersmongo.NewRepository(db)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersService, usersRepo)

	menuHandler := menu.NewHandler(menumongo.NewRepository(db))
	reviewHandler := review.NewHandler(reviewmongo.NewRepository(db))

	cartRepo := cartmongo.NewRepository(db)
	cartHandler := cart.NewHandler(cartRepo)

	paymentsHandler := payments.NewHandler(
		paymentsmongo.NewRepository(db),
		cartRepo,
		stripe.NewClient(a.config.Stripe.SecretKey),
	)

	statsHandler := stats.NewHandler(statsmongo.NewRepository(db))

	requireAuth := httputil.AuthMiddleware(authenticator)
	requireAdmin := httputil.RequireAdmin(usersService)

	var limiter *rate.Limiter
	if a.config.RateLimit.PaymentIntentRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.config.RateLimit.PaymentIntentRPS), a.config.RateLimit.PaymentIntentBurst)
	}
	limitIntents := httputil.RateLimitMiddleware(limiter)

	authHandler.RegisterRoutes(r)
	usersHandler.RegisterRoutes(r, requireAuth, requireAdmin)
	menuHandler.RegisterRoutes(r, requireAuth, requireAdmin)
	reviewHandler.RegisterRoutes(r)
	cartHandler.RegisterRoutes(r, requireAuth)
	paymentsHandler.RegisterRoutes(r, requireAuth, limitIntents)
	statsHandler.RegisterRoutes(r, requireAuth, requireAdmin)

	return r
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx, readpref.Primary()); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) versionHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, version.Get())
}

func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
