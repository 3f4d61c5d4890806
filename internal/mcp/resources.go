package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-ops/internal/config"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/recruit-ops/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/recruit-ops/internal/domain/metrics"
	"github.com/honeycarbs/recruit-ops/internal/events"
	"github.com/honeycarbs/recruit-ops/internal/export"
	"github.com/honeycarbs/recruit-ops/internal/mcp/tools"
	"github.com/honeycarbs/recruit-ops/internal/storage/memory"
	storage "github.com/honeycarbs/recruit-ops/internal/storage/neo4j"
	pgstorage "github.com/honeycarbs/recruit-ops/internal/storage/postgres"
	"github.com/honeycarbs/recruit-ops/pkg/adzuna"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
	n4j "github.com/honeycarbs/recruit-ops/pkg/neo4j"
	"github.com/honeycarbs/recruit-ops/pkg/postgres"
	pkgredis "github.com/honeycarbs/recruit-ops/pkg/redis"
	"github.com/honeycarbs/recruit-ops/pkg/sheets"
)

// Resources holds everything the tools need
type Resources struct {
	JobService     job.Service
	MetricsService metrics.Service
	Exporter       *export.SheetsExporter
	ExportTarget   export.Target
	Scopes         job.ScopeConfig
}

// catalog is a store serving both listings and candidates
type catalog interface {
	job.Repository
	job.CandidateRepository
}

var (
	_ catalog        = (*memory.CatalogStore)(nil)
	_ catalog        = (*storage.CatalogRepository)(nil)
	_ tools.Exporter = (*export.SheetsExporter)(nil)
)

func newResources(
	jobService job.Service,
	metricsService metrics.Service,
	exporter *export.SheetsExporter,
	target export.Target,
	scopes job.ScopeConfig,
) *Resources {
	return &Resources{
		JobService:     jobService,
		MetricsService: metricsService,
		Exporter:       exporter,
		ExportTarget:   target,
		Scopes:         scopes,
	}
}

func provideScopes(cfg config.Config) (job.ScopeConfig, error) {
	return config.LoadRoles(cfg.RolesPath)
}

// provideCatalog picks Neo4j when configured and the in-memory demo catalog otherwise
func provideCatalog(ctx context.Context, cfg config.Config, logger *logging.Logger) (catalog, func(), error) {
	if !cfg.Neo4j.Enabled() {
		logger.Info("using in-memory job catalog with demo data")
		return memory.NewDemoCatalog(time.Now()), func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close Neo4j client", "err", err)
		}
	}

	repo := storage.NewCatalogRepository(client)
	if err := repo.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	jobs, candidates := memory.DemoData(time.Now())
	seeded, err := repo.SeedIfEmpty(ctx, jobs, candidates)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("Neo4j job catalog initialized", "uri", cfg.Neo4j.URI, "seeded", seeded)
	return repo, cleanup, nil
}

func provideJobRepository(c catalog) job.Repository { return c }

func provideCandidateRepository(c catalog) job.CandidateRepository { return c }

// provideJobProviders returns the Adzuna provider when credentials are set
func provideJobProviders(cfg config.Config, logger *logging.Logger) ([]job.Provider, error) {
	if !cfg.Adzuna.Enabled() {
		logger.Info("Adzuna credentials not set, job import disabled")
		return nil, nil
	}

	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   cfg.Adzuna.AppID,
		AppKey:  cfg.Adzuna.AppKey,
		Country: cfg.Adzuna.Country,
	})
	if err != nil {
		return nil, err
	}
	provider, err := adzunaProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}

	logger.Info("Adzuna provider initialized", "country", cfg.Adzuna.Country)
	return []job.Provider{provider}, nil
}

// providePublisher publishes catalog events to Redis when REDIS_URL is set
func providePublisher(ctx context.Context, cfg config.Config, logger *logging.Logger) (job.Publisher, func(), error) {
	if cfg.Redis.URL == "" {
		return job.NopPublisher{}, func() {}, nil
	}

	rdb, err := pkgredis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close Redis client", "err", err)
		}
	}

	logger.Info("publishing catalog events to Redis", "channel", cfg.Redis.Channel)
	return events.NewRedisPublisher(rdb, cfg.Redis.Channel), cleanup, nil
}

// provideMetricsSource reads daily_metrics from Postgres when DATABASE_URL is
// set and falls back to the seeded generator.
func provideMetricsSource(ctx context.Context, cfg config.Config, logger *logging.Logger) (metrics.Source, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using generated metric samples", "seed", cfg.Metrics.Seed)
		return metrics.NewGenerator(cfg.Metrics.Seed), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pgstorage.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("reading metric samples from Postgres")
	return pgstorage.NewMetricsSource(pool), pool.Close, nil
}

func provideMetricsService(source metrics.Source, cfg config.Config, logger *logging.Logger) (metrics.Service, error) {
	return metrics.NewServiceWithDeps(source, cfg.Metrics.WindowDays, logger.Named("metrics"))
}

// provideExporter returns nil when no Sheets credentials are configured
func provideExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*export.SheetsExporter, error) {
	if cfg.Sheets.CredentialsPath == "" {
		logger.Info("Sheets credentials not set, export disabled")
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	return export.NewSheetsExporter(client, logger.Named("export")), nil
}

func provideExportTarget(cfg config.Config) export.Target {
	return export.Target{
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		Tab:           cfg.Sheets.Tab,
	}
}
