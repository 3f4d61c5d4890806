package tools

import (
	"errors"
	"strings"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

var errCallerRequired = errors.New("caller id and role are required")

// CallerParams identifies who is invoking a tool. Every catalog tool takes it
// explicitly; there is no session-wide user.
type CallerParams struct {
	ID   string `json:"id" jsonschema:"Person identifier of the caller"`
	Name string `json:"name,omitempty" jsonschema:"Display name of the caller"`
	Role string `json:"role" jsonschema:"One of company-admin, hiring-manager, talent-scout, team-member, applicant"`
}

func (p CallerParams) toDomain() (domain.Caller, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" || p.Role == "" {
		return domain.Caller{}, errCallerRequired
	}
	role, err := domain.ParseRole(strings.TrimSpace(p.Role))
	if err != nil {
		return domain.Caller{}, err
	}
	return domain.Caller{
		ID:   id,
		Name: strings.TrimSpace(p.Name),
		Role: role,
	}, nil
}
