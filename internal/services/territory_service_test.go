package services

import (
	"testing"

	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerritory_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.territory.CreateTerritory(TerritoryInput{Name: ""})
	assert.ErrorIs(t, err, ErrTerritoryNameRequired)

	_, err = env.territory.CreateTerritory(TerritoryInput{Name: "Ward", AreaType: "county"})
	assert.ErrorIs(t, err, ErrInvalidAreaType)

	ghost := uint64(404)
	_, err = env.territory.CreateTerritory(TerritoryInput{Name: "Ward", AssignedTo: &ghost})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)

	territory, err := env.territory.CreateTerritory(TerritoryInput{Name: " Ward 9 "})
	require.NoError(t, err)
	assert.Equal(t, "Ward 9", territory.Name)
	assert.Equal(t, models.AreaTypeCustom, territory.AreaType)
}

func TestTerritory_ReassignReplacesAssignee(t *testing.T) {
	env := newTestEnv(t)
	first := env.user(t, "first", models.RoleVolunteer)
	second := env.user(t, "second", models.RoleVolunteer)

	territory, err := env.territory.CreateTerritory(TerritoryInput{Name: "North", AreaType: "ward", AssignedTo: &first.ID})
	require.NoError(t, err)

	_, err = env.territory.UpdateTerritory(territory.ID, TerritoryInput{Name: "North", AreaType: "ward", AssignedTo: &second.ID})
	require.NoError(t, err)

	mine, err := env.territory.ListMyTerritories(first.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	mine, err = env.territory.ListMyTerritories(second.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	_, err = env.territory.UpdateTerritory(999, TerritoryInput{Name: "None"})
	assert.ErrorIs(t, err, ErrTerritoryNotFound)
}

func TestTerritory_GetChecksOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner", models.RoleVolunteer)
	other := env.user(t, "other", models.RoleVolunteer)

	territory, err := env.territory.CreateTerritory(TerritoryInput{Name: "South", AssignedTo: &owner.ID})
	require.NoError(t, err)
	env.voter(t, "Zed", "2 Z St", &territory.ID)
	env.voter(t, "Amy", "1 A St", &territory.ID)

	_, voters, err := env.territory.GetTerritory(authz.Identity{UserID: owner.ID, Role: models.RoleVolunteer}, territory.ID)
	require.NoError(t, err)
	require.Len(t, voters, 2)
	assert.Equal(t, "Amy", voters[0].Name)

	_, _, err = env.territory.GetTerritory(authz.Identity{UserID: other.ID, Role: models.RoleVolunteer}, territory.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	got, _, err := env.territory.GetTerritory(authz.Identity{UserID: 99, Role: models.RoleManager}, territory.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, "owner", got.Assignee.Username)

	_, _, err = env.territory.GetTerritory(authz.Identity{UserID: 99, Role: models.RoleManager}, 12345)
	assert.ErrorIs(t, err, ErrTerritoryNotFound)
}

func TestTerritory_AssignVotersIdempotent(t *testing.T) {
	env := newTestEnv(t)
	territory, err := env.territory.CreateTerritory(TerritoryInput{Name: "East"})
	require.NoError(t, err)
	a := env.voter(t, "A", "1 East Rd", nil)
	b := env.voter(t, "B", "2 East Rd", nil)

	n, err := env.territory.AssignVoters(territory.ID, []uint64{a.ID, b.ID, a.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = env.territory.AssignVoters(territory.ID, []uint64{a.ID, b.ID})
	require.NoError(t, err)

	voters, err := env.voters.ListByTerritory(territory.ID)
	require.NoError(t, err)
	assert.Len(t, voters, 2)

	n, err = env.territory.AssignVoters(territory.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = env.territory.AssignVoters(555, []uint64{a.ID})
	assert.ErrorIs(t, err, ErrTerritoryNotFound)
}

func TestTerritory_DeleteKeepsVoters(t *testing.T) {
	env := newTestEnv(t)
	territory, err := env.territory.CreateTerritory(TerritoryInput{Name: "West"})
	require.NoError(t, err)
	v1 := env.voter(t, "V1", "1 West St", &territory.ID)
	v2 := env.voter(t, "V2", "2 West St", &territory.ID)

	require.NoError(t, env.territory.DeleteTerritory(territory.ID))

	for _, id := range []uint64{v1.ID, v2.ID} {
		voter, err := env.voterSvc.GetVoter(id)
		require.NoError(t, err)
		assert.Nil(t, voter.TerritoryID)
	}

	assert.ErrorIs(t, env.territory.DeleteTerritory(territory.ID), ErrTerritoryNotFound)
}
