package neo4j

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/shopspring/decimal"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

// Compensation amounts are stored as decimal strings so no precision is lost
var compensationKeys = []string{
	"clientBudget",
	"companyProfit",
	"companyProfitPercentage",
	"candidateOffer",
	"consultancyFee",
	"consultancyFeePercentage",
	"finalCandidateRate",
}

// listingProps flattens a listing into node properties. Assignment is kept
// on an ASSIGNED relationship, not on the node.
func listingProps(j domain.JobListing) map[string]any {
	props := map[string]any{
		"id":              j.ID,
		"title":           j.Title,
		"description":     j.Description,
		"department":      j.Department,
		"departmentId":    j.DepartmentID,
		"location":        j.Location,
		"locationId":      j.LocationID,
		"status":          string(j.Status),
		"priority":        string(j.Priority),
		"applicantsCount": int64(j.ApplicantsCount),
		"createdAt":       j.CreatedAt.UTC(),
		"updatedAt":       j.UpdatedAt.UTC(),
	}

	// a nil value removes the property on SET j += $props
	var values []decimal.Decimal
	if c := j.Compensation; c != nil {
		values = []decimal.Decimal{
			c.ClientBudget, c.CompanyProfit, c.CompanyProfitPercentage,
			c.CandidateOffer, c.ConsultancyFee, c.ConsultancyFeePercentage,
			c.FinalCandidateRate,
		}
	}
	for i, key := range compensationKeys {
		if values == nil {
			props["comp_"+key] = nil
			continue
		}
		props["comp_"+key] = values[i].String()
	}

	return props
}

// assigneeParam is nil for unassigned listings
func assigneeParam(j domain.JobListing) map[string]any {
	if !j.IsAssigned() {
		return nil
	}
	name := ""
	if j.AssignedToName != nil {
		name = *j.AssignedToName
	}
	return map[string]any{"id": *j.AssignedTo, "name": name}
}

// listingFromProps rebuilds a listing from node properties and the optional
// assignee columns.
func listingFromProps(props map[string]any, assigneeID, assigneeName any) domain.JobListing {
	j := domain.JobListing{
		ID:              getStringProp(props, "id"),
		Title:           getStringProp(props, "title"),
		Description:     getStringProp(props, "description"),
		Department:      getStringProp(props, "department"),
		DepartmentID:    getStringProp(props, "departmentId"),
		Location:        getStringProp(props, "location"),
		LocationID:      getStringProp(props, "locationId"),
		Status:          domain.JobStatus(getStringProp(props, "status")),
		Priority:        domain.Priority(getStringProp(props, "priority")),
		ApplicantsCount: int(getIntProp(props, "applicantsCount")),
		CreatedAt:       getTimeProp(props, "createdAt"),
		UpdatedAt:       getTimeProp(props, "updatedAt"),
	}

	if id, ok := assigneeID.(string); ok && id != "" {
		name, _ := assigneeName.(string)
		j.AssignedTo = &id
		j.AssignedToName = &name
	}

	if _, ok := props["comp_clientBudget"]; ok {
		values := make([]decimal.Decimal, len(compensationKeys))
		for i, key := range compensationKeys {
			values[i] = getDecimalProp(props, "comp_"+key)
		}
		j.Compensation = &domain.Compensation{
			ClientBudget:             values[0],
			CompanyProfit:            values[1],
			CompanyProfitPercentage:  values[2],
			CandidateOffer:           values[3],
			ConsultancyFee:           values[4],
			ConsultancyFeePercentage: values[5],
			FinalCandidateRate:       values[6],
		}
	}

	return j
}

func candidateProps(c domain.JobCandidate) map[string]any {
	return map[string]any{
		"id":        c.ID,
		"jobId":     c.JobID,
		"name":      c.Name,
		"email":     c.Email,
		"phone":     c.Phone,
		"status":    string(c.Status),
		"notes":     c.Notes,
		"appliedAt": c.AppliedAt.UTC(),
		"updatedAt": c.UpdatedAt.UTC(),
	}
}

func candidateFromProps(props map[string]any) domain.JobCandidate {
	return domain.JobCandidate{
		ID:        getStringProp(props, "id"),
		JobID:     getStringProp(props, "jobId"),
		Name:      getStringProp(props, "name"),
		Email:     getStringProp(props, "email"),
		Phone:     getStringProp(props, "phone"),
		Status:    domain.CandidateStatus(getStringProp(props, "status")),
		Notes:     getStringProp(props, "notes"),
		AppliedAt: getTimeProp(props, "appliedAt"),
		UpdatedAt: getTimeProp(props, "updatedAt"),
	}
}

func getStringProp(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getIntProp(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func getDecimalProp(props map[string]any, key string) decimal.Decimal {
	s := getStringProp(props, key)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func getTimeProp(props map[string]any, key string) time.Time {
	if v, ok := props[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t.UTC()
		}
		if dt, ok := v.(neo4j.LocalDateTime); ok {
			return dt.Time()
		}
	}
	return time.Time{}
}
