package neo4j

import (
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

func sampleListing() domain.JobListing {
	id, name := "usr-1", "Alice"
	comp := domain.NewCompensation(decimal.NewFromInt(5000), decimal.NewFromInt(30), decimal.NewFromInt(3000), decimal.RequireFromString("7.5"))
	return domain.JobListing{
		ID:              "job-1",
		Title:           "Engineer",
		Department:      "Engineering",
		DepartmentID:    "dep-eng",
		Location:        "Berlin",
		LocationID:      "loc-ber",
		Status:          domain.JobStatusPublished,
		Priority:        domain.PriorityHigh,
		AssignedTo:      &id,
		AssignedToName:  &name,
		ApplicantsCount: 4,
		CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:       time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		Compensation:    &comp,
	}
}

func TestListingProps_RoundTrip(t *testing.T) {
	in := sampleListing()

	props := listingProps(in)
	assert.NotContains(t, props, "assignedTo", "assignment lives on a relationship")
	assert.Equal(t, int64(4), props["applicantsCount"])
	assert.Equal(t, "225", props["comp_consultancyFee"])

	out := listingFromProps(props, "usr-1", "Alice")
	require.NotNil(t, out.Compensation)
	assert.True(t, in.Compensation.FinalCandidateRate.Equal(out.Compensation.FinalCandidateRate))
	assert.NoError(t, out.Compensation.Validate())

	out.Compensation, in.Compensation = nil, nil
	assert.Equal(t, in, out)
}

func TestListingProps_ClearsCompensation(t *testing.T) {
	in := sampleListing()
	in.Compensation = nil

	props := listingProps(in)
	for _, key := range compensationKeys {
		v, ok := props["comp_"+key]
		assert.True(t, ok)
		assert.Nil(t, v)
	}
}

func TestListingFromProps_Unassigned(t *testing.T) {
	props := map[string]any{"id": "job-2", "title": "Analyst", "createdAt": neo4j.LocalDateTime(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))}

	j := listingFromProps(props, nil, nil)
	assert.Equal(t, "job-2", j.ID)
	assert.Nil(t, j.AssignedTo)
	assert.Nil(t, j.AssignedToName)
	assert.Nil(t, j.Compensation)
	assert.Equal(t, 2024, j.CreatedAt.Year())
}

func TestAssigneeParam(t *testing.T) {
	assert.Nil(t, assigneeParam(domain.JobListing{}))
	assert.Equal(t, map[string]any{"id": "usr-1", "name": "Alice"}, assigneeParam(sampleListing()))
}

func TestAssigneeParam_NamePerListing(t *testing.T) {
	first := sampleListing()
	first.ID = "job-2"
	first.AssignedTo, first.AssignedToName = ptr("usr-2"), ptr("Bob")

	second := sampleListing()
	second.ID = "job-3"
	second.AssignedTo, second.AssignedToName = ptr("usr-2"), ptr("Robert")

	assert.Equal(t, "Bob", assigneeParam(first)["name"])
	assert.Equal(t, "Robert", assigneeParam(second)["name"])

	// each row carries the name from its own ASSIGNED relationship
	a := listingFromProps(listingProps(first), "usr-2", "Bob")
	b := listingFromProps(listingProps(second), "usr-2", "Robert")
	assert.Equal(t, "Bob", *a.AssignedToName)
	assert.Equal(t, "Robert", *b.AssignedToName)
	assert.Equal(t, a.AssignedToID(), b.AssignedToID())
}

func TestCandidateProps_RoundTrip(t *testing.T) {
	in := domain.JobCandidate{
		ID:        "cand-1",
		JobID:     "job-1",
		Name:      "Dana",
		Email:     "dana@example.com",
		Status:    domain.CandidateOffer,
		AppliedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, in, candidateFromProps(candidateProps(in)))
}

func TestGetIntProp(t *testing.T) {
	props := map[string]any{"a": int64(3), "b": 4, "c": 5.0, "d": "6"}
	assert.Equal(t, int64(3), getIntProp(props, "a"))
	assert.Equal(t, int64(4), getIntProp(props, "b"))
	assert.Equal(t, int64(5), getIntProp(props, "c"))
	assert.Equal(t, int64(0), getIntProp(props, "d"))
	assert.Equal(t, int64(0), getIntProp(props, "missing"))
}

func ptr[T any](v T) *T { return &v }
