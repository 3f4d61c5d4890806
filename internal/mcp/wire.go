//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/recruit-ops/internal/config"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up. The
// returned cleanup closes every client that was opened.
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Catalog
		provideScopes,
		provideCatalog,
		provideJobRepository,
		provideCandidateRepository,
		provideJobProviders,
		providePublisher,
		job.NewServiceWithDeps,

		// Metrics
		provideMetricsSource,
		provideMetricsService,

		// Export
		provideExporter,
		provideExportTarget,

		newResources,
	)

	return nil, nil, nil
}
