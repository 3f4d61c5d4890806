package job

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/recruit-ops/internal/domain"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestAssign_ByAdmin(t *testing.T) {
	j := listing("J2", "B", nil)
	admin := domain.Caller{ID: "ADM", Role: domain.RoleCompanyAdmin}

	got, err := Assign(j, &Grantee{ID: "U2", Name: "Bob"}, admin, testScopes(), fixedNow)
	require.NoError(t, err)

	require.NotNil(t, got.AssignedTo)
	require.NotNil(t, got.AssignedToName)
	assert.Equal(t, "U2", *got.AssignedTo)
	assert.Equal(t, "Bob", *got.AssignedToName)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	assert.Nil(t, j.AssignedTo, "input listing must not change")
}

func TestAssign_Unassign(t *testing.T) {
	j := listing("J1", "A", ptr("U1"))
	admin := domain.Caller{ID: "ADM", Role: domain.RoleCompanyAdmin}

	got, err := Assign(j, nil, admin, testScopes(), fixedNow)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
	assert.Nil(t, got.AssignedToName)
	assert.False(t, got.IsAssigned())
}

func TestAssign_HandOffByCurrentAssignee(t *testing.T) {
	j := listing("J1", "A", ptr("U1"))
	owner := domain.Caller{ID: "U1", Role: domain.RoleTeamMember}

	got, err := Assign(j, &Grantee{ID: "U3", Name: "Cleo"}, owner, testScopes(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "U3", got.AssignedToID())

	released, err := Assign(j, nil, owner, testScopes(), fixedNow)
	require.NoError(t, err)
	assert.False(t, released.IsAssigned())
}

func TestAssign_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		listing domain.JobListing
		caller  domain.Caller
		grantee *Grantee
	}{
		{
			name:    "team member who is not the assignee",
			listing: listing("J1", "A", ptr("U1")),
			caller:  domain.Caller{ID: "U7", Role: domain.RoleTeamMember},
			grantee: &Grantee{ID: "U7", Name: "Eve"},
		},
		{
			name:    "scout on unassigned listing",
			listing: listing("J2", "B", nil),
			caller:  domain.Caller{ID: "U1", Role: domain.RoleTalentScout},
			grantee: &Grantee{ID: "U1", Name: "Alice"},
		},
		{
			name:    "applicant unassign",
			listing: listing("J1", "A", ptr("U1")),
			caller:  domain.Caller{ID: "U9", Role: domain.RoleApplicant},
		},
		{
			name:    "empty caller id never matches an assignee",
			listing: listing("J1", "A", ptr("")),
			caller:  domain.Caller{Role: domain.RoleTeamMember},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assign(tt.listing, tt.grantee, tt.caller, testScopes(), fixedNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))

			var authErr *domain.AuthorizationError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.caller.Role, authErr.Role)
			assert.Equal(t, tt.listing, got, "listing must be returned unchanged")
		})
	}
}

func TestAssign_InvalidGrantee(t *testing.T) {
	admin := domain.Caller{ID: "ADM", Role: domain.RoleCompanyAdmin}
	_, err := Assign(listing("J2", "B", nil), &Grantee{Name: "Nobody"}, admin, testScopes(), fixedNow)
	assert.ErrorIs(t, err, ErrInvalidGrantee)
}

func TestAssign_LocationManagerIsRoleGated(t *testing.T) {
	// a location manager may reassign listings outside their location
	mgr := domain.Caller{ID: "M1", Role: domain.RoleHiringManager}
	got, err := Assign(listing("J9", "Z", nil), &Grantee{ID: "U4", Name: "Dan"}, mgr, testScopes(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "U4", got.AssignedToID())
}

func TestAssign_PairInvariant(t *testing.T) {
	admin := domain.Caller{ID: "ADM", Role: domain.RoleCompanyAdmin}
	states := []*Grantee{{ID: "U1", Name: "Alice"}, nil, {ID: "U2", Name: ""}, nil}

	j := listing("J1", "A", nil)
	for _, g := range states {
		var err error
		j, err = Assign(j, g, admin, testScopes(), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, j.AssignedTo == nil, j.AssignedToName == nil)
	}
}

func TestAuthorizeRemoval(t *testing.T) {
	j := listing("J1", "A", ptr("U1"))
	cfg := testScopes()

	assert.NoError(t, AuthorizeRemoval(j, domain.Caller{ID: "ADM", Role: domain.RoleCompanyAdmin}, cfg))
	assert.NoError(t, AuthorizeRemoval(j, domain.Caller{ID: "M1", Role: domain.RoleHiringManager}, cfg))

	err := AuthorizeRemoval(j, domain.Caller{ID: "U1", Role: domain.RoleTeamMember}, cfg)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
