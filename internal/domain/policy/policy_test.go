package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
)

func adminActor(id string) *entity.Actor {
	return &entity.Actor{User: entity.User{ID: id, Role: entity.RoleAdministrateur, IsActive: true}}
}

func supervisorActor(userID, profileID string) *entity.Actor {
	return &entity.Actor{
		User:       entity.User{ID: userID, Role: entity.RoleSuperviseur, IsActive: true},
		Supervisor: &entity.SupervisorProfile{ID: profileID, UserID: userID},
	}
}

func merchandiserActor(userID, profileID, managerID string) *entity.Actor {
	return &entity.Actor{
		User:         entity.User{ID: userID, Role: entity.RoleMerchandiser, IsActive: true},
		Merchandiser: &entity.MerchandiserProfile{ID: profileID, UserID: userID, ManagerID: managerID, Zone: "Nord"},
	}
}

func TestCanManageSystem(t *testing.T) {
	assert.True(t, policy.CanManageSystem(adminActor("u1")))
	assert.False(t, policy.CanManageSystem(supervisorActor("u2", "s1")))
	assert.False(t, policy.CanManageSystem(merchandiserActor("u3", "m1", "s1")))
	assert.False(t, policy.CanManageSystem(nil))
}

func TestScopeForVisitRead_ParRole(t *testing.T) {
	scope, err := policy.ScopeForVisitRead(adminActor("u1"))
	require.NoError(t, err)
	assert.Equal(t, policy.ScopeAll, scope.Kind)

	scope, err = policy.ScopeForVisitRead(supervisorActor("u2", "s1"))
	require.NoError(t, err)
	assert.Equal(t, policy.ScopeTeam, scope.Kind)
	assert.Equal(t, "s1", scope.SupervisorID)

	scope, err = policy.ScopeForVisitRead(merchandiserActor("u3", "m1", "s1"))
	require.NoError(t, err)
	assert.Equal(t, policy.ScopeOwn, scope.Kind)
	assert.Equal(t, "m1", scope.MerchandiserID)
}

func TestScopeForVisitRead_ProfilManquantRefuse(t *testing.T) {
	// Rôle superviseur sans profil attaché : incohérence de données, refus.
	actor := &entity.Actor{User: entity.User{ID: "u9", Role: entity.RoleSuperviseur}}
	_, err := policy.ScopeForVisitRead(actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestScopeAllows(t *testing.T) {
	all := policy.Scope{Kind: policy.ScopeAll}
	team := policy.Scope{Kind: policy.ScopeTeam, SupervisorID: "s1"}
	own := policy.Scope{Kind: policy.ScopeOwn, MerchandiserID: "m1"}

	assert.True(t, all.Allows("m7", "s9"))
	assert.True(t, team.Allows("m1", "s1"))
	assert.False(t, team.Allows("m2", "s2"), "visite d'une autre équipe hors portée")
	assert.True(t, own.Allows("m1", "s1"))
	assert.False(t, own.Allows("m2", "s1"), "un merchandiser ne voit que ses visites")
}

func TestCanReadTeam_MerchandiserRefuse(t *testing.T) {
	assert.True(t, policy.CanReadTeam(adminActor("u1")))
	assert.True(t, policy.CanReadTeam(supervisorActor("u2", "s1")))
	// Refus explicite, pas de rétrécissement silencieux vers "own".
	assert.False(t, policy.CanReadTeam(merchandiserActor("u3", "m1", "s1")))
}

func TestCanSubmitVisit(t *testing.T) {
	assert.True(t, policy.CanSubmitVisit(merchandiserActor("u3", "m1", "s1")))
	assert.False(t, policy.CanSubmitVisit(supervisorActor("u2", "s1")))
	assert.False(t, policy.CanSubmitVisit(adminActor("u1")))
}

func TestCanDecideVisit(t *testing.T) {
	sup := supervisorActor("u2", "s1")
	assert.True(t, policy.CanDecideVisit(sup, "s1"))
	assert.False(t, policy.CanDecideVisit(sup, "s2"), "le superviseur ne décide que pour son équipe")
	// L'admin ne décide pas : visibilité totale mais validation superviseur-only.
	assert.False(t, policy.CanDecideVisit(adminActor("u1"), "s1"))
	assert.False(t, policy.CanDecideVisit(merchandiserActor("u3", "m1", "s1"), "s1"))
}

func TestCanDeleteUser_AutoSuppressionToujoursRefusee(t *testing.T) {
	admin := adminActor("u1")
	assert.True(t, policy.CanDeleteUser(admin, "u2"))
	assert.False(t, policy.CanDeleteUser(admin, "u1"))
	assert.False(t, policy.CanDeleteUser(supervisorActor("u2", "s1"), "u3"))
}

func TestCheckAssignableRole(t *testing.T) {
	assert.NoError(t, policy.CheckAssignableRole(entity.RoleSuperviseur))
	assert.NoError(t, policy.CheckAssignableRole(entity.RoleMerchandiser))
	// Garde anti-élévation : même un admin ne crée pas d'Administrateur.
	assert.ErrorIs(t, policy.CheckAssignableRole(entity.RoleAdministrateur), domain.ErrValidationFailed)
	assert.ErrorIs(t, policy.CheckAssignableRole("Directeur"), domain.ErrValidationFailed)
}
