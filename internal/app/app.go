package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clubops/matchday-ops/internal/config"
	auditdomain "github.com/clubops/matchday-ops/internal/domain/audit"
	"github.com/clubops/matchday-ops/internal/domain/clubuser"
	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/task"
	"github.com/clubops/matchday-ops/internal/domain/template"
	"github.com/clubops/matchday-ops/internal/infrastructure/audit"
	"github.com/clubops/matchday-ops/internal/infrastructure/repository/memory"
	"github.com/clubops/matchday-ops/internal/infrastructure/repository/postgres"
	"github.com/clubops/matchday-ops/internal/interfaces/httpapi"
	idgen "github.com/clubops/matchday-ops/internal/platform/id"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/clubops/matchday-ops/internal/platform/resilience"
	"github.com/clubops/matchday-ops/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App owns the HTTP server plus the resources that must be released on
// shutdown (DB pool, async audit sink).
type App struct {
	Server *http.Server

	db        *sqlx.DB
	asyncSink *audit.AsyncSink
	logger    *logging.Logger
}

type repositories struct {
	fixtures fixture.Directory
	users    clubuser.Directory
	catalog  template.Catalog
	tasks    task.Repository
	sink     auditdomain.Sink
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{logger: logger}

	repos, err := app.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink := repos.sink
	if cfg.AuditWebhookEnabled {
		sink = audit.NewWebhookSink(audit.WebhookSinkConfig{
			URL:     cfg.AuditWebhookURL,
			Token:   cfg.AuditWebhookToken,
			Timeout: cfg.AuditWebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AuditWebhookCircuitEnabled,
				FailureThreshold: cfg.AuditWebhookCircuitFailures,
				OpenTimeout:      cfg.AuditWebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AuditWebhookCircuitHalfOpenReq,
			},
		}, logger)
	}
	app.asyncSink = audit.NewAsyncSink(sink, cfg.AuditAsyncTimeout, logger)

	generatorSvc := usecase.NewTaskGeneratorService(
		repos.fixtures,
		repos.catalog,
		repos.users,
		repos.tasks,
		idgen.NewRandomGenerator(),
		logger,
	)
	seedSvc := usecase.NewSeedService(repos.fixtures, generatorSvc, logger)
	riskSvc := usecase.NewRiskService(repos.fixtures, repos.tasks, logger)
	handoverSvc := usecase.NewHandoverService(repos.fixtures, repos.users, repos.tasks, app.asyncSink, logger)

	handler := httpapi.NewHandler(generatorSvc, seedSvc, riskSvc, handoverSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if app.Server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return app, nil
}

// buildRepositories opens postgres when DB_URL is set, otherwise wires the
// seeded in-memory stack so the service runs without any storage.
func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.DBURL == "" {
		a.logger.Info("storage mode", "mode", "memory", "reason", "DB_URL empty")
		return repositories{
			fixtures: memory.NewFixtureDirectory(memory.SeedFixtures(time.Now().UTC())),
			users:    memory.NewUserDirectory(memory.SeedUsers()),
			catalog:  memory.NewTemplateCatalog(memory.SeedTemplatePacks()),
			tasks:    memory.NewTaskRepository(),
			sink:     memory.NewAuditSink(),
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping db: %w", err)
	}
	a.db = db

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		a.logger.Warn("bootstrap seed failed", "error", err)
	}

	a.logger.Info("storage mode", "mode", "postgres", "db_name", dbNameFromURL(dbURL))
	return repositories{
		fixtures: postgres.NewFixtureDirectory(db),
		users:    postgres.NewUserDirectory(db),
		catalog:  postgres.NewTemplateCatalog(db),
		tasks:    postgres.NewTaskRepository(db),
		sink:     postgres.NewAuditSink(db),
	}, nil
}

// Close drains the async audit sink before releasing the DB pool so queued
// events still reach their destination.
func (a *App) Close() {
	if a.asyncSink != nil {
		a.asyncSink.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close db", "error", err)
		}
	}
}
