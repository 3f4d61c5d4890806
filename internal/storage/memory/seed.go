package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// NewDemoCatalog returns a store populated with the demo dashboard data
func NewDemoCatalog(now time.Time) *CatalogStore {
	jobs, candidates := DemoData(now)
	return NewCatalogStore(jobs, candidates)
}

// DemoData builds a small but representative catalog relative to now
func DemoData(now time.Time) ([]domain.JobListing, []domain.JobCandidate) {
	now = now.UTC().Truncate(time.Second)
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	person := func(id, name string) (*domain.PersonID, *string) { return &id, &name }

	aliceID, aliceName := person("usr-alice", "Alice Moreau")
	benID, benName := person("usr-ben", "Ben Okafor")
	chloeID, chloeName := person("usr-chloe", "Chloe Lindqvist")

	comp := domain.NewCompensation(
		decimal.NewFromInt(120000),
		decimal.NewFromInt(20),
		decimal.NewFromInt(90000),
		decimal.NewFromInt(8),
	)

	jobs := []domain.JobListing{
		{
			ID: "job-001", Title: "Senior Backend Engineer",
			Department: "Engineering", DepartmentID: "dep-eng",
			Location: "London HQ", LocationID: "loc-hq",
			Status: domain.JobStatusPublished, Priority: domain.PriorityHigh,
			AssignedTo: aliceID, AssignedToName: aliceName,
			ApplicantsCount: 3, CreatedAt: days(30), UpdatedAt: days(2),
			Compensation: &comp,
		},
		{
			ID: "job-002", Title: "Account Executive",
			Department: "Sales", DepartmentID: "dep-sales",
			Location: "Berlin", LocationID: "loc-ber",
			Status: domain.JobStatusInProgress, Priority: domain.PriorityMedium,
			ApplicantsCount: 1, CreatedAt: days(21), UpdatedAt: days(5),
		},
		{
			ID: "job-003", Title: "Financial Controller",
			Department: "Finance", DepartmentID: "dep-fin",
			Location: "London HQ", LocationID: "loc-hq",
			Status: domain.JobStatusDraft, Priority: domain.PriorityLow,
			CreatedAt: days(3), UpdatedAt: days(3),
		},
		{
			ID: "job-004", Title: "People Partner",
			Department: "People", DepartmentID: "dep-people",
			Location: "New York", LocationID: "loc-nyc",
			Status: domain.JobStatusOnHold, Priority: domain.PriorityMedium,
			AssignedTo: benID, AssignedToName: benName,
			ApplicantsCount: 1, CreatedAt: days(45), UpdatedAt: days(10),
		},
		{
			ID: "job-005", Title: "Site Reliability Engineer",
			Department: "Engineering", DepartmentID: "dep-eng",
			Location: "Berlin", LocationID: "loc-ber",
			Status: domain.JobStatusPublished, Priority: domain.PriorityUrgent,
			AssignedTo: chloeID, AssignedToName: chloeName,
			ApplicantsCount: 0, CreatedAt: days(7), UpdatedAt: days(1),
		},
		{
			ID: "job-006", Title: "Sales Development Representative",
			Department: "Sales", DepartmentID: "dep-sales",
			Location: "London HQ", LocationID: "loc-hq",
			Status: domain.JobStatusFilled, Priority: domain.PriorityLow,
			AssignedTo: aliceID, AssignedToName: aliceName,
			ApplicantsCount: 0, CreatedAt: days(60), UpdatedAt: days(15),
		},
	}

	candidates := []domain.JobCandidate{
		{ID: "cand-001", JobID: "job-001", Name: "Daniel Reyes", Email: "daniel.reyes@example.com", Status: domain.CandidateInterview, AppliedAt: days(20), UpdatedAt: days(4)},
		{ID: "cand-002", JobID: "job-001", Name: "Priya Nair", Email: "priya.nair@example.com", Status: domain.CandidateScreening, AppliedAt: days(12), UpdatedAt: days(6)},
		{ID: "cand-003", JobID: "job-001", Name: "Tom Becker", Email: "tom.becker@example.com", Status: domain.CandidateRejected, Notes: "Relocation not possible", AppliedAt: days(25), UpdatedAt: days(18)},
		{ID: "cand-004", JobID: "job-002", Name: "Lena Vogel", Email: "lena.vogel@example.com", Phone: "+49 30 5550101", Status: domain.CandidateOffer, AppliedAt: days(15), UpdatedAt: days(2)},
		{ID: "cand-005", JobID: "job-004", Name: "Marcus Hill", Email: "marcus.hill@example.com", Status: domain.CandidateNew, AppliedAt: days(9), UpdatedAt: days(9)},
	}

	return jobs, candidates
}
