package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agrégations de lecture pour les tableaux de bord. Les requêtes
// scopées réutilisent scopePredicate, le même prédicat que les listings.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountVisits compte les visites de la portée ; status vide = tous statuts.
func (r *StatsRepo) CountVisits(ctx context.Context, scope policy.Scope, status string) (int, error) {
	args := []any{}
	statusCond := "TRUE"
	if status != "" {
		statusCond = "v.status = $1"
		args = append(args, status)
	}
	pred, scopeArgs := scopePredicate(scope, len(args)+1)
	args = append(args, scopeArgs...)

	query := `
		SELECT COUNT(*)
		FROM visits v
		JOIN merchandiser_profiles m ON m.id = v.merchandiser_id
		WHERE ` + statusCond + ` AND ` + pred
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

// StatusDistribution ventile les visites de la portée par statut.
func (r *StatsRepo) StatusDistribution(ctx context.Context, scope policy.Scope) (map[string]int, error) {
	pred, args := scopePredicate(scope, 1)
	query := `
		SELECT v.status, COUNT(*)
		FROM visits v
		JOIN merchandiser_profiles m ON m.id = v.merchandiser_id
		WHERE ` + pred + `
		GROUP BY v.status`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	defer rows.Close()
	dist := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status distribution: %w", err)
		}
		dist[status] = n
	}
	return dist, rows.Err()
}

// TeamPerformance compte les visites par membre de l'équipe du superviseur.
// Les merchandisers sans visite apparaissent avec zéro.
func (r *StatsRepo) TeamPerformance(ctx context.Context, supervisorID string) ([]repository.MemberPerformance, error) {
	query := `
		SELECT u.name, COUNT(v.id)
		FROM merchandiser_profiles m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN visits v ON v.merchandiser_id = m.id
		WHERE m.manager_id = $1
		GROUP BY u.name
		ORDER BY COUNT(v.id) DESC, u.name`
	rows, err := r.q.Query(ctx, query, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("team performance: %w", err)
	}
	defer rows.Close()
	var list []repository.MemberPerformance
	for rows.Next() {
		var p repository.MemberPerformance
		if err := rows.Scan(&p.Name, &p.Visits); err != nil {
			return nil, fmt.Errorf("scan team performance: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountVisitsOnDay compte les visites d'un merchandiser à une date donnée.
func (r *StatsRepo) CountVisitsOnDay(ctx context.Context, merchandiserID string, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM visits
		WHERE merchandiser_id = $1 AND visit_date::date = $2::date`
	var n int
	if err := r.q.QueryRow(ctx, query, merchandiserID, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("count visits on day: %w", err)
	}
	return n, nil
}

// OrderedQuantityBetween somme les quantités commandées d'un merchandiser sur
// une période.
func (r *StatsRepo) OrderedQuantityBetween(ctx context.Context, merchandiserID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(d.quantity), 0)
		FROM visit_product_details d
		JOIN visits v ON v.id = d.visit_id
		WHERE v.merchandiser_id = $1
		  AND d.detail_type = 'commande'
		  AND v.visit_date BETWEEN $2 AND $3`
	var n int
	if err := r.q.QueryRow(ctx, query, merchandiserID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("ordered quantity: %w", err)
	}
	return n, nil
}

// CountUsers compte les comptes du système.
func (r *StatsRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountProducts compte les produits du catalogue.
func (r *StatsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// RoleDistribution ventile les comptes par rôle.
func (r *StatsRepo) RoleDistribution(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("role distribution: %w", err)
	}
	defer rows.Close()
	dist := make(map[string]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role distribution: %w", err)
		}
		dist[role] = n
	}
	return dist, rows.Err()
}
