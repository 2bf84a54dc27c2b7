// Package analytics contient les cas d'usage des tableaux de bord par rôle.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

const (
	dashboardRecentVisits = 5 // visites dans le widget du merchandiser
	dailyVisitTarget      = 8
)

// Prix moyen d'un pack pour l'estimation du chiffre d'affaires mensuel du
// merchandiser. Estimation indicative, pas une donnée comptable.
var (
	averagePackPrice     = decimal.NewFromInt(2500)
	monthlyRevenueTarget = decimal.NewFromInt(1500000)
)

// DashboardUseCase construit le tableau de bord adapté au rôle de l'acteur.
//
// Source de données : StatsRepository (lectures seules, calculées à la
// demande). Les compteurs du superviseur passent par la même portée que ses
// listings de visites.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	visitRepo repository.VisitRepository
}

// NewDashboardUseCase construit le cas d'usage.
func NewDashboardUseCase(statsRepo repository.StatsRepository, visitRepo repository.VisitRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, visitRepo: visitRepo}
}

// GetAdminDashboard totaux système, vue non scopée.
//
// Quatre requêtes en parallèle, même motif canal-résultat partout.
func (uc *DashboardUseCase) GetAdminDashboard(ctx context.Context, actor *entity.Actor) (*dto.AdminDashboard, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}

	type countResult struct {
		n   int
		err error
	}
	type rolesResult struct {
		roles map[string]int
		err   error
	}

	usersCh := make(chan countResult, 1)
	visitsCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	rolesCh := make(chan rolesResult, 1)

	go func() {
		n, err := uc.statsRepo.CountUsers(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountVisits(ctx, policy.Scope{Kind: policy.ScopeAll}, "")
		visitsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		roles, err := uc.statsRepo.RoleDistribution(ctx)
		rolesCh <- rolesResult{roles, err}
	}()

	users := <-usersCh
	visits := <-visitsCh
	products := <-productsCh
	roles := <-rolesCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard admin: total utilisateurs: %w", users.err)
	}
	if visits.err != nil {
		return nil, fmt.Errorf("dashboard admin: total visites: %w", visits.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard admin: total produits: %w", products.err)
	}
	if roles.err != nil {
		return nil, fmt.Errorf("dashboard admin: distribution des rôles: %w", roles.err)
	}

	return &dto.AdminDashboard{
		TotalUsers:        users.n,
		TotalVisits:       visits.n,
		TotalProducts:     products.n,
		RolesDistribution: roles.roles,
	}, nil
}

// GetSupervisorDashboard compteurs de l'équipe, strictement scopés sur les
// merchandisers du superviseur.
func (uc *DashboardUseCase) GetSupervisorDashboard(ctx context.Context, actor *entity.Actor) (*dto.SupervisorDashboard, error) {
	if actor == nil || actor.Supervisor == nil {
		return nil, domain.ErrForbidden
	}
	scope, err := policy.ScopeForVisitRead(actor)
	if err != nil {
		return nil, err
	}

	type countResult struct {
		n   int
		err error
	}
	type statusResult struct {
		statuses map[string]int
		err      error
	}
	type perfResult struct {
		members []repository.MemberPerformance
		err     error
	}

	pendingCh := make(chan countResult, 1)
	statusCh := make(chan statusResult, 1)
	perfCh := make(chan perfResult, 1)

	go func() {
		n, err := uc.statsRepo.CountVisits(ctx, scope, entity.VisitStatusSubmitted)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		statuses, err := uc.statsRepo.StatusDistribution(ctx, scope)
		statusCh <- statusResult{statuses, err}
	}()
	go func() {
		members, err := uc.statsRepo.TeamPerformance(ctx, actor.Supervisor.ID)
		perfCh <- perfResult{members, err}
	}()

	pending := <-pendingCh
	statuses := <-statusCh
	perf := <-perfCh

	if pending.err != nil {
		return nil, fmt.Errorf("dashboard superviseur: visites en attente: %w", pending.err)
	}
	if statuses.err != nil {
		return nil, fmt.Errorf("dashboard superviseur: distribution des statuts: %w", statuses.err)
	}
	if perf.err != nil {
		return nil, fmt.Errorf("dashboard superviseur: performance équipe: %w", perf.err)
	}

	team := make([]dto.TeamMemberPerformance, 0, len(perf.members))
	for _, m := range perf.members {
		team = append(team, dto.TeamMemberPerformance{Name: m.Name, Visits: m.Visits})
	}

	return &dto.SupervisorDashboard{
		PendingVisits:      pending.n,
		StatusDistribution: statuses.statuses,
		TeamPerformance:    team,
	}, nil
}

// GetMerchandiserDashboard activité du jour et estimation du chiffre
// d'affaires du mois en cours pour le merchandiser connecté.
func (uc *DashboardUseCase) GetMerchandiserDashboard(ctx context.Context, actor *entity.Actor) (*dto.MerchandiserDashboard, error) {
	if actor == nil || actor.Merchandiser == nil {
		return nil, domain.ErrForbidden
	}
	merchandiserID := actor.Merchandiser.ID
	now := time.Now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type countResult struct {
		n   int
		err error
	}
	type visitsResult struct {
		visits []*entity.VisitSummary
		err    error
	}

	todayCh := make(chan countResult, 1)
	orderedCh := make(chan countResult, 1)
	recentCh := make(chan visitsResult, 1)

	go func() {
		n, err := uc.statsRepo.CountVisitsOnDay(ctx, merchandiserID, todayStart)
		todayCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.OrderedQuantityBetween(ctx, merchandiserID, monthStart, monthEnd)
		orderedCh <- countResult{n, err}
	}()
	go func() {
		visits, err := uc.visitRepo.ListRecent(ctx, merchandiserID, dashboardRecentVisits)
		recentCh <- visitsResult{visits, err}
	}()

	today := <-todayCh
	ordered := <-orderedCh
	recent := <-recentCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard merchandiser: visites du jour: %w", today.err)
	}
	if ordered.err != nil {
		return nil, fmt.Errorf("dashboard merchandiser: quantités commandées: %w", ordered.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard merchandiser: dernières visites: %w", recent.err)
	}

	revenue := averagePackPrice.Mul(decimal.NewFromInt(int64(ordered.n))).Round(2)

	last := make([]dto.VisitSummaryResponse, 0, len(recent.visits))
	for _, s := range recent.visits {
		last = append(last, dto.VisitSummaryResponse{
			ID:               s.ID,
			Date:             s.Date,
			Status:           s.Status,
			ClientID:         s.ClientID,
			ClientName:       s.ClientName,
			MerchandiserID:   s.MerchandiserID,
			MerchandiserName: s.MerchandiserName,
			Zone:             s.Zone,
			ValidatorID:      s.ValidatorID,
			ValidatedAt:      s.ValidatedAt,
		})
	}

	return &dto.MerchandiserDashboard{
		VisitsToday:    today.n,
		DailyTarget:    dailyVisitTarget,
		MonthlyRevenue: revenue,
		MonthlyTarget:  monthlyRevenueTarget,
		LastVisits:     last,
	}, nil
}
