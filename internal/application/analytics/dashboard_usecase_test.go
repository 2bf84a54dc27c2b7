package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/internal/application/analytics"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// fakeStatsRepo retourne des valeurs fixes et enregistre les portées reçues,
// pour vérifier que les compteurs sont scopés comme les listings.
type fakeStatsRepo struct {
	countVisitsScope *policy.Scope
	statusScope      *policy.Scope
	teamSupervisorID string
	orderedQuantity  int
	visitsToday      int
}

func (r *fakeStatsRepo) CountVisits(_ context.Context, scope policy.Scope, status string) (int, error) {
	r.countVisitsScope = &scope
	if status == entity.VisitStatusSubmitted {
		return 3, nil
	}
	return 42, nil
}

func (r *fakeStatsRepo) StatusDistribution(_ context.Context, scope policy.Scope) (map[string]int, error) {
	r.statusScope = &scope
	return map[string]int{"soumis": 3, "valide": 10, "rejete": 1}, nil
}

func (r *fakeStatsRepo) TeamPerformance(_ context.Context, supervisorID string) ([]repository.MemberPerformance, error) {
	r.teamSupervisorID = supervisorID
	return []repository.MemberPerformance{
		{Name: "Aline", Visits: 9},
		{Name: "Brice", Visits: 0},
	}, nil
}

func (r *fakeStatsRepo) CountVisitsOnDay(context.Context, string, time.Time) (int, error) {
	return r.visitsToday, nil
}

func (r *fakeStatsRepo) OrderedQuantityBetween(context.Context, string, time.Time, time.Time) (int, error) {
	return r.orderedQuantity, nil
}

func (r *fakeStatsRepo) CountUsers(context.Context) (int, error)    { return 17, nil }
func (r *fakeStatsRepo) CountProducts(context.Context) (int, error) { return 23, nil }
func (r *fakeStatsRepo) RoleDistribution(context.Context) (map[string]int, error) {
	return map[string]int{entity.RoleAdministrateur: 1, entity.RoleSuperviseur: 4, entity.RoleMerchandiser: 12}, nil
}

// stubVisitRepo ne sert que ListRecent.
type stubVisitRepo struct {
	repository.VisitRepository
	recent []*entity.VisitSummary
}

func (r *stubVisitRepo) ListRecent(context.Context, string, int) ([]*entity.VisitSummary, error) {
	return r.recent, nil
}

func adminActor() *entity.Actor {
	return &entity.Actor{User: entity.User{ID: "u-a", Role: entity.RoleAdministrateur, IsActive: true}}
}

func supervisorActor() *entity.Actor {
	return &entity.Actor{
		User:       entity.User{ID: "u-s", Role: entity.RoleSuperviseur, IsActive: true},
		Supervisor: &entity.SupervisorProfile{ID: "sup-1", UserID: "u-s"},
	}
}

func merchandiserActor() *entity.Actor {
	return &entity.Actor{
		User: entity.User{ID: "u-m", Role: entity.RoleMerchandiser, IsActive: true},
		Merchandiser: &entity.MerchandiserProfile{
			ID: "merch-1", UserID: "u-m", Zone: "Littoral", ManagerID: "sup-1",
		},
	}
}

func TestAdminDashboard_TotauxSysteme(t *testing.T) {
	stats := &fakeStatsRepo{}
	uc := analytics.NewDashboardUseCase(stats, &stubVisitRepo{})

	out, err := uc.GetAdminDashboard(context.Background(), adminActor())
	require.NoError(t, err)

	assert.Equal(t, 17, out.TotalUsers)
	assert.Equal(t, 42, out.TotalVisits)
	assert.Equal(t, 23, out.TotalProducts)
	assert.Equal(t, 12, out.RolesDistribution[entity.RoleMerchandiser])
	require.NotNil(t, stats.countVisitsScope)
	assert.Equal(t, policy.ScopeAll, stats.countVisitsScope.Kind, "l'admin compte sur tout le système")
}

func TestAdminDashboard_NonAdminRefuse(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeStatsRepo{}, &stubVisitRepo{})

	_, err := uc.GetAdminDashboard(context.Background(), supervisorActor())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSupervisorDashboard_CompteursScopesEquipe(t *testing.T) {
	stats := &fakeStatsRepo{}
	uc := analytics.NewDashboardUseCase(stats, &stubVisitRepo{})

	out, err := uc.GetSupervisorDashboard(context.Background(), supervisorActor())
	require.NoError(t, err)

	assert.Equal(t, 3, out.PendingVisits)
	assert.Equal(t, 10, out.StatusDistribution["valide"])
	require.Len(t, out.TeamPerformance, 2)
	assert.Equal(t, 0, out.TeamPerformance[1].Visits, "un membre sans visite apparaît avec zéro")

	// Tous les compteurs passent par la portée équipe, jamais par ScopeAll.
	require.NotNil(t, stats.countVisitsScope)
	assert.Equal(t, policy.ScopeTeam, stats.countVisitsScope.Kind)
	assert.Equal(t, "sup-1", stats.countVisitsScope.SupervisorID)
	require.NotNil(t, stats.statusScope)
	assert.Equal(t, policy.ScopeTeam, stats.statusScope.Kind)
	assert.Equal(t, "sup-1", stats.teamSupervisorID)
}

func TestSupervisorDashboard_SansProfilRefuse(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeStatsRepo{}, &stubVisitRepo{})

	_, err := uc.GetSupervisorDashboard(context.Background(), merchandiserActor())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetSupervisorDashboard(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMerchandiserDashboard_EstimationCA(t *testing.T) {
	stats := &fakeStatsRepo{visitsToday: 5, orderedQuantity: 12}
	visits := &stubVisitRepo{recent: []*entity.VisitSummary{
		{ID: "v-1", Status: entity.VisitStatusValidated, ClientName: "Supermarché Mahima"},
	}}
	uc := analytics.NewDashboardUseCase(stats, visits)

	out, err := uc.GetMerchandiserDashboard(context.Background(), merchandiserActor())
	require.NoError(t, err)

	assert.Equal(t, 5, out.VisitsToday)
	assert.Equal(t, 8, out.DailyTarget)
	// 12 packs commandés x 2500 FCFA le pack.
	assert.True(t, decimal.NewFromInt(30000).Equal(out.MonthlyRevenue),
		"CA attendu 30000, obtenu %s", out.MonthlyRevenue)
	require.Len(t, out.LastVisits, 1)
	assert.Equal(t, "Supermarché Mahima", out.LastVisits[0].ClientName)
}

func TestMerchandiserDashboard_SansProfilRefuse(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeStatsRepo{}, &stubVisitRepo{})

	_, err := uc.GetMerchandiserDashboard(context.Background(), supervisorActor())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
