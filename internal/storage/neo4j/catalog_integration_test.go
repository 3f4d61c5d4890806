package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	pkgneo4j "github.com/honeycarbs/recruit-ops/pkg/neo4j"
)

func newIntegrationRepo(t *testing.T) *CatalogRepository {
	t.Helper()

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI must be set to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	repo := NewCatalogRepository(client)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestCatalogRepositoryIntegration_AssigneeNamePerListing(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	first := domain.JobListing{
		ID: "it-job-2", Title: "Analyst", Location: "Berlin", LocationID: "it-loc", DepartmentID: "it-dep",
		AssignedTo: ptr("it-usr-2"), AssignedToName: ptr("Bob"),
		CreatedAt: created, UpdatedAt: created,
	}
	second := first
	second.ID = "it-job-3"
	second.AssignedToName = ptr("Robert")
	second.Location = "Berlin Mitte"

	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), first.ID)
		_ = repo.Delete(context.Background(), second.ID)
	})

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedToName)
	assert.Equal(t, "Bob", *got.AssignedToName)
	assert.True(t, created.Equal(got.UpdatedAt), "assigning another listing leaves this one untouched")
	assert.Equal(t, "Berlin", got.Location, "shared location node does not rename listings")

	mine, err := repo.FindByAssignee(ctx, "it-usr-2")
	require.NoError(t, err)
	names := map[string]string{}
	for _, j := range mine {
		names[j.ID] = *j.AssignedToName
	}
	assert.Equal(t, map[string]string{"it-job-2": "Bob", "it-job-3": "Robert"}, names)
}

func TestCatalogRepositoryIntegration_SaveRejectsInconsistentCompensation(t *testing.T) {
	repo := newIntegrationRepo(t)

	comp := domain.Compensation{
		ClientBudget:            decimal.NewFromInt(1000),
		CompanyProfitPercentage: decimal.NewFromInt(20),
		CompanyProfit:           decimal.NewFromInt(999),
	}
	err := repo.Save(context.Background(), domain.JobListing{ID: "it-job-bad", Compensation: &comp})
	assert.ErrorIs(t, err, domain.ErrInvalidCompensation)
}
