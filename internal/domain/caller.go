package domain

import "fmt"

// Role is the only authorization input of a caller
type Role string

const (
	RoleCompanyAdmin  Role = "company-admin"
	RoleHiringManager Role = "hiring-manager"
	RoleTalentScout   Role = "talent-scout"
	RoleTeamMember    Role = "team-member"
	RoleApplicant     Role = "applicant"
)

// Roles lists every known role in display order
var Roles = []Role{
	RoleCompanyAdmin,
	RoleHiringManager,
	RoleTalentScout,
	RoleTeamMember,
	RoleApplicant,
}

// ParseRole converts a raw string to a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Caller identifies who is performing an operation. It is passed explicitly
// into every scoped or mutating call.
type Caller struct {
	ID   PersonID `json:"id"`
	Name string   `json:"name"`
	Role Role     `json:"role"`
}
