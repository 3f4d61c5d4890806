package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/recruit-ops/pkg/neo4j"
)

// Ensure CatalogRepository implements the catalog ports
var (
	_ job.Repository          = (*CatalogRepository)(nil)
	_ job.CandidateRepository = (*CatalogRepository)(nil)
)

// The assignee display name lives on the ASSIGNED relationship, so each
// listing keeps the name it was assigned under.
const listingReturn = `
		OPTIONAL MATCH (p:Person)-[a:ASSIGNED]->(j)
		RETURN j, p.id AS assigneeId, a.name AS assigneeName
		ORDER BY j.createdAt, j.id
	`

// CatalogRepository stores listings as (:Job) nodes linked to their
// (:Location), (:Department) and assigned (:Person). Candidates are
// (:Candidate) nodes keyed by jobId.
type CatalogRepository struct {
	client *pkgneo4j.Client
}

// NewCatalogRepository creates a CatalogRepository with a Neo4j client
func NewCatalogRepository(client *pkgneo4j.Client) *CatalogRepository {
	return &CatalogRepository{
		client: client,
	}
}

// EnsureSchema creates the uniqueness constraints the queries rely on
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE CONSTRAINT job_id IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE`,
		`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`,
		`CREATE CONSTRAINT candidate_id IF NOT EXISTS FOR (c:Candidate) REQUIRE c.id IS UNIQUE`,
		`CREATE INDEX job_location IF NOT EXISTS FOR (j:Job) ON (j.locationId)`,
	}
	for _, stmt := range statements {
		if err := r.write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("neo4j schema: %w", err)
		}
	}
	return nil
}

// LoadAll returns every listing ordered by creation time
func (r *CatalogRepository) LoadAll(ctx context.Context) ([]domain.JobListing, error) {
	return r.readListings(ctx, `MATCH (j:Job)`+listingReturn, nil)
}

// FindByID loads a single listing
func (r *CatalogRepository) FindByID(ctx context.Context, id domain.JobID) (*domain.JobListing, error) {
	jobs, err := r.readListings(ctx, `MATCH (j:Job {id: $id})`+listingReturn, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.NewJobNotFound(id)
	}
	return &jobs[0], nil
}

// FindByLocation returns listings at a location
func (r *CatalogRepository) FindByLocation(ctx context.Context, locationID string) ([]domain.JobListing, error) {
	return r.readListings(ctx, `MATCH (j:Job {locationId: $locationId})`+listingReturn,
		map[string]any{"locationId": locationID})
}

// FindByAssignee returns listings assigned to a person
func (r *CatalogRepository) FindByAssignee(ctx context.Context, personID domain.PersonID) ([]domain.JobListing, error) {
	query := `
		MATCH (p:Person {id: $personId})-[a:ASSIGNED]->(j:Job)
		RETURN j, p.id AS assigneeId, a.name AS assigneeName
		ORDER BY j.createdAt, j.id
	`
	return r.readListings(ctx, query, map[string]any{"personId": personID})
}

// Save merges the listing node and rewires its relationships. Location and
// Department names are informational and only set when the node is created;
// listings read their names from their own properties.
func (r *CatalogRepository) Save(ctx context.Context, listing domain.JobListing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	query := `
		MERGE (j:Job {id: $id})
		SET j += $props
		WITH j
		OPTIONAL MATCH (j)-[rel:LOCATED_AT|IN_DEPARTMENT]->()
		DELETE rel
		WITH DISTINCT j
		OPTIONAL MATCH (:Person)-[a:ASSIGNED]->(j)
		DELETE a
		WITH DISTINCT j
		MERGE (l:Location {id: $props.locationId})
		ON CREATE SET l.name = $props.location
		MERGE (j)-[:LOCATED_AT]->(l)
		MERGE (d:Department {id: $props.departmentId})
		ON CREATE SET d.name = $props.department
		MERGE (j)-[:IN_DEPARTMENT]->(d)
		FOREACH (person IN CASE WHEN $assignee IS NULL THEN [] ELSE [$assignee] END |
			MERGE (p:Person {id: person.id})
			MERGE (p)-[a:ASSIGNED]->(j)
			SET a.name = person.name
		)
	`

	err := r.write(ctx, query, map[string]any{
		"id":       listing.ID,
		"props":    listingProps(listing),
		"assignee": assigneeParam(listing),
	})
	if err != nil {
		return fmt.Errorf("neo4j save job %s: %w", listing.ID, err)
	}
	return nil
}

// Delete removes a listing node and its relationships
func (r *CatalogRepository) Delete(ctx context.Context, id domain.JobID) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	deleted, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (j:Job {id: $id})
			DETACH DELETE j
			RETURN count(*) AS deleted
		`, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := record.Get("deleted")
		return n, nil
	})
	if err != nil {
		return fmt.Errorf("neo4j delete job %s: %w", id, err)
	}
	if n, _ := deleted.(int64); n == 0 {
		return domain.NewJobNotFound(id)
	}
	return nil
}

// FindByJob returns the candidates of a listing ordered by application time
func (r *CatalogRepository) FindByJob(ctx context.Context, jobID domain.JobID) ([]domain.JobCandidate, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (c:Candidate {jobId: $jobId})
			RETURN c
			ORDER BY c.appliedAt, c.id
		`, map[string]any{"jobId": jobID})
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		candidates := make([]domain.JobCandidate, 0, len(records))
		for _, record := range records {
			val, _ := record.Get("c")
			node, ok := val.(neo4j.Node)
			if !ok {
				continue
			}
			candidates = append(candidates, candidateFromProps(node.Props))
		}
		return candidates, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j candidates of job %s: %w", jobID, err)
	}
	return out.([]domain.JobCandidate), nil
}

// DeleteByJob drops every candidate of a listing
func (r *CatalogRepository) DeleteByJob(ctx context.Context, jobID domain.JobID) error {
	err := r.write(ctx, `
		MATCH (c:Candidate {jobId: $jobId})
		DETACH DELETE c
	`, map[string]any{"jobId": jobID})
	if err != nil {
		return fmt.Errorf("neo4j delete candidates of job %s: %w", jobID, err)
	}
	return nil
}

// SaveCandidates merges candidate nodes and links them to their listing
func (r *CatalogRepository) SaveCandidates(ctx context.Context, candidates []domain.JobCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	data := make([]map[string]any, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, candidateProps(c))
	}

	err := r.write(ctx, `
		UNWIND $candidates AS cand
		MERGE (c:Candidate {id: cand.id})
		SET c += cand
		WITH c, cand
		MATCH (j:Job {id: cand.jobId})
		MERGE (c)-[:APPLIED_TO]->(j)
	`, map[string]any{"candidates": data})
	if err != nil {
		return fmt.Errorf("neo4j save candidates: %w", err)
	}
	return nil
}

// SeedIfEmpty stores the given catalog when no listing exists yet. It reports
// whether anything was written.
func (r *CatalogRepository) SeedIfEmpty(ctx context.Context, jobs []domain.JobListing, candidates []domain.JobCandidate) (bool, error) {
	existing, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, j := range jobs {
		if err := r.Save(ctx, j); err != nil {
			return false, err
		}
	}
	if err := r.SaveCandidates(ctx, candidates); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CatalogRepository) readListings(ctx context.Context, query string, params map[string]any) ([]domain.JobListing, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		jobs := make([]domain.JobListing, 0, len(records))
		for _, record := range records {
			jobVal, ok := record.Get("j")
			if !ok {
				continue
			}
			node, ok := jobVal.(neo4j.Node)
			if !ok {
				continue
			}
			assigneeID, _ := record.Get("assigneeId")
			assigneeName, _ := record.Get("assigneeName")
			jobs = append(jobs, listingFromProps(node.Props, assigneeID, assigneeName))
		}
		return jobs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j read jobs: %w", err)
	}

	return out.([]domain.JobListing), nil
}

func (r *CatalogRepository) write(ctx context.Context, query string, params map[string]any) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return err
}
