// Package app wires configuration, storage and HTTP transport into a
// runnable server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/beheryahmed1991/subscription-tracker/docs"
	"github.com/beheryahmed1991/subscription-tracker/internal/auth"
	"github.com/beheryahmed1991/subscription-tracker/internal/config"
	"github.com/beheryahmed1991/subscription-tracker/internal/db"
	"github.com/beheryahmed1991/subscription-tracker/internal/middleware"
	"github.com/beheryahmed1991/subscription-tracker/internal/migrate"
	"github.com/beheryahmed1991/subscription-tracker/internal/subscription"
)

const (
	driverMemory    = "memory"
	shutdownTimeout = 10 * time.Second
)

// App owns the long-lived resources of a running server.
type App struct {
	cfg    config.Config
	log    *slog.Logger
	db     *sql.DB
	server *http.Server
}

// New opens storage, applies migrations and builds the HTTP server.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	store, database, err := openStore(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.Host = cfg.Swagger.Host

	router := NewRouter(RouterConfig{
		Service:  subscription.NewService(store, log),
		Tokens:   auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Registry: registry,
		Ping:     pinger(database),
		Logger:   log,
	})

	return &App{
		cfg: cfg,
		log: log,
		db:  database,
		server: &http.Server{
			Addr:              ":" + cfg.App.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func openStore(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (subscription.Store, *sql.DB, error) {
	if cfg.Driver == driverMemory {
		log.Warn("using in-memory storage; data is lost on exit")
		return subscription.NewMemoryStore(), nil, nil
	}

	dialect, err := db.DialectFor(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	database, err := db.New(ctx, db.Config{
		Driver:          cfg.Driver,
		URL:             cfg.DSN(),
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate.Up(ctx, database, dialect); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return subscription.NewRepository(database, dialect), database, nil
}

func pinger(database *sql.DB) func(context.Context) error {
	if database == nil {
		return func(context.Context) error { return nil }
	}
	return database.PingContext
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", a.server.Addr, "driver", a.cfg.DB.Driver)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RouterConfig lists the collaborators of the HTTP router.
type RouterConfig struct {
	Service  subscription.Service
	Tokens   middleware.TokenParser
	Registry *prometheus.Registry
	Ping     func(context.Context) error
	Logger   *slog.Logger
}

// NewRouter builds the gin engine: ambient routes are public, subscription
// routes require a bearer token.
func NewRouter(rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(rc.Logger),
		middleware.NewMetrics(rc.Registry).Handler(),
	)

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			rc.Logger.ErrorContext(c.Request.Context(), "health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rc.Registry, promhttp.HandlerOpts{Registry: rc.Registry})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/", middleware.Authenticate(rc.Tokens, rc.Logger))
	subscription.NewHandler(rc.Service, rc.Logger).RegisterRoutes(api)

	return router
}
