// Package bootstrap wires configuration, storage, services and routes into a
// runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/messenger/backend/internal/auth/guard"
	authhttp "github.com/AlibekovAA/messenger/backend/internal/auth/http"
	authservice "github.com/AlibekovAA/messenger/backend/internal/auth/service"
	"github.com/AlibekovAA/messenger/backend/internal/auth/token"
	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/messenger/backend/internal/common/crypto"
	"github.com/AlibekovAA/messenger/backend/internal/common/db"
	commonhttp "github.com/AlibekovAA/messenger/backend/internal/common/http"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/common/memstore"
	"github.com/AlibekovAA/messenger/backend/internal/common/resilience"
	messagehttp "github.com/AlibekovAA/messenger/backend/internal/message/http"
	messagerepo "github.com/AlibekovAA/messenger/backend/internal/message/repository"
	messageservice "github.com/AlibekovAA/messenger/backend/internal/message/service"
	userhttp "github.com/AlibekovAA/messenger/backend/internal/user/http"
	userrepo "github.com/AlibekovAA/messenger/backend/internal/user/repository"
	userservice "github.com/AlibekovAA/messenger/backend/internal/user/service"
)

type Repositories struct {
	Users    userrepo.Repository
	Messages messagerepo.Repository
}

type App struct {
	Config    config.Config
	Log       *logger.Logger
	Pool      *pgxpool.Pool
	Tokens    *token.Service
	Directory *userservice.Directory
	Ledger    *messageservice.Ledger
	Auth      *authservice.AuthService
}

// New opens Postgres when cfg.DatabaseURL is set, applying migrations if
// enabled, and falls back to the in-memory store otherwise.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	clk := clock.NewRealClock()

	if !cfg.UsesDatabase() {
		log.Warn("DATABASE_URL is not set, using in-memory storage")
		return NewInMemory(cfg, log, clk), nil
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  constants.CircuitBreakerThreshold,
		Timeout:    constants.DBQueryTimeout,
		ResetAfter: constants.CircuitBreakerResetAfter,
		Name:       constants.CircuitBreakerDatabaseName,
		Logger:     log,
		Clock:      clk,
	})
	run := db.NewRunner(log, breaker, db.DefaultRetryConfig)

	app := assemble(cfg, log, clk, Repositories{
		Users:    userrepo.NewPgRepository(pool, run),
		Messages: messagerepo.NewPgRepository(pool, run),
	})
	app.Pool = pool
	return app, nil
}

func NewInMemory(cfg config.Config, log *logger.Logger, clk clock.Clock) *App {
	store := memstore.New()
	return assemble(cfg, log, clk, Repositories{
		Users:    userrepo.NewMemoryRepository(store),
		Messages: messagerepo.NewMemoryRepository(store),
	})
}

func assemble(cfg config.Config, log *logger.Logger, clk clock.Clock, repos Repositories) *App {
	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptWorkFactor)
	tokens := token.NewService(cfg.SecretKey, cfg.TokenTTL, clk)
	directory := userservice.NewDirectory(repos.Users, hasher, clk, log)

	return &App{
		Config:    cfg,
		Log:       log,
		Tokens:    tokens,
		Directory: directory,
		Ledger:    messageservice.NewLedger(repos.Messages, clk, log),
		Auth:      authservice.NewAuthService(directory, tokens, log),
	}
}

// Handler returns the full HTTP stack: base middleware, the authentication
// guard and every route.
func (a *App) Handler() http.Handler {
	var checks []commonhttp.HealthCheck
	if a.Pool != nil {
		checks = append(checks, func(ctx context.Context) error { return a.Pool.Ping(ctx) })
	}

	authHandler := authhttp.NewHandler(a.Auth, a.Log)
	userHandler := userhttp.NewHandler(a.Directory, a.Log)
	messageHandler := messagehttp.NewHandler(a.Ledger, a.Log)

	mux := http.NewServeMux()
	mux.Handle("GET /health", commonhttp.HealthHandler(a.Log, checks...))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/auth/", authHandler)
	mux.Handle("/users", userHandler)
	mux.Handle("/users/", userHandler)
	mux.Handle("/messages", messageHandler)
	mux.Handle("/messages/", messageHandler)

	return commonhttp.BuildBaseHandler(a.Log, a.Config, guard.Middleware(a.Tokens, a.Log)(mux))
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
