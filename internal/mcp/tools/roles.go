package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
)

// RolesURI addresses the role table resource
const RolesURI = "recruitops://roles"

// RoleEntry is one row of the role table resource
type RoleEntry struct {
	Role       domain.Role   `json:"role"`
	Scope      job.ScopeKind `json:"scope"`
	LocationID string        `json:"location,omitempty"`
	CanManage  bool          `json:"can_manage"`
	Menu       []string      `json:"menu"`
}

// RolesPayload is the body of the role table resource
type RolesPayload struct {
	Roles []RoleEntry `json:"roles"`
}

// WithRolesResource exposes the role table so clients can build menus and
// pick a caller role.
func WithRolesResource(scopes job.ScopeConfig) Option {
	return func(reg *registry) {
		reg.server.AddResource(&sdkmcp.Resource{
			URI:         RolesURI,
			Name:        "roles",
			Description: "Role table: visibility scope, home location and menu per role",
			MIMEType:    "application/json",
		}, RolesResourceHandler(scopes))
		reg.names = append(reg.names, RolesURI)
	}
}

// RolesResourceHandler renders scopes in the fixed role order
func RolesResourceHandler(scopes job.ScopeConfig) sdkmcp.ResourceHandler {
	return func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		payload := RolesPayload{Roles: make([]RoleEntry, 0, len(domain.Roles))}
		for _, role := range domain.Roles {
			rs := scopes[role]
			kind := scopes.KindFor(role)
			menu := rs.Menu
			if menu == nil {
				menu = []string{}
			}
			payload.Roles = append(payload.Roles, RoleEntry{
				Role:       role,
				Scope:      kind,
				LocationID: rs.LocationID,
				CanManage:  scopes.CanManage(role),
				Menu:       menu,
			})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal roles: %w", err)
		}

		uri := RolesURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}
}
