package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/domain/job"
)

type rolesFile struct {
	Roles map[string]roleEntry `toml:"roles"`
}

type roleEntry struct {
	Scope    string   `toml:"scope"`
	Location string   `toml:"location"`
	Menu     []string `toml:"menu"`
}

// LoadRoles reads the role table at path. An empty path returns the
// built-in table.
func LoadRoles(path string) (job.ScopeConfig, error) {
	if path == "" {
		return job.DefaultScopeConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role table: %w", err)
	}

	scopes, err := ParseRoles(data)
	if err != nil {
		return nil, fmt.Errorf("role table %s: %w", path, err)
	}
	return scopes, nil
}

// ParseRoles decodes a TOML role table:
//
//	[roles.hiring-manager]
//	scope = "location"
//	location = "loc-hq"
//	menu = ["dashboard", "jobs"]
func ParseRoles(data []byte) (job.ScopeConfig, error) {
	var file rolesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, fmt.Errorf("no roles defined")
	}

	scopes := make(job.ScopeConfig, len(file.Roles))
	for name, entry := range file.Roles {
		role, err := domain.ParseRole(name)
		if err != nil {
			return nil, err
		}
		kind, err := job.ParseScopeKind(entry.Scope)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
		if kind != job.ScopeLocation && entry.Location != "" {
			return nil, fmt.Errorf("role %s: location is only valid with scope %q", name, job.ScopeLocation)
		}
		scopes[role] = job.RoleScope{
			Kind:       kind,
			LocationID: entry.Location,
			Menu:       entry.Menu,
		}
	}
	return scopes, nil
}
