package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implémentation du port VisitRepository sur PostgreSQL.
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

// Projection commune des listes : la visite avec l'identité du merchandiser,
// son manager et le client. Toute requête de liste part de ce SELECT.
const summarySelect = `
	SELECT v.id, v.visit_date, v.status, v.client_id, c.name,
	       v.merchandiser_id, u.name, m.zone, m.manager_id,
	       v.validator_id, v.validated_at
	FROM visits v
	JOIN merchandiser_profiles m ON m.id = v.merchandiser_id
	JOIN users u ON u.id = m.user_id
	JOIN clients c ON c.id = v.client_id`

// Create insère la visite et ses trois collections de lignes. Appelé dans une
// transaction via le TxRunner : tout commit ou rien.
func (r *VisitRepo) Create(ctx context.Context, visit *entity.Visit) error {
	query := `
		INSERT INTO visits (id, merchandiser_id, client_id, visit_date, status,
			observations, fifo_respected, plano_respected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		visit.ID, visit.MerchandiserID, visit.ClientID, visit.Date, visit.Status,
		visit.Observations, visit.FIFORespected, visit.PlanoRespected, visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}

	for _, s := range visit.StockReadings {
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_readings (id, visit_id, product_id, quantity, out_of_stock, shortage_kind)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, visit.ID, s.ProductID, s.Quantity, s.OutOfStock, s.ShortageKind,
		)
		if err != nil {
			return fmt.Errorf("insert stock reading: %w", err)
		}
	}
	for _, d := range visit.ProductDetails {
		_, err := r.q.Exec(ctx, `
			INSERT INTO visit_product_details (id, visit_id, product_id, detail_type, quantity, observation)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, visit.ID, d.ProductID, d.DetailType, d.Quantity, d.Observation,
		)
		if err != nil {
			return fmt.Errorf("insert product detail: %w", err)
		}
	}
	for _, o := range visit.CompetitorObs {
		_, err := r.q.Exec(ctx, `
			INSERT INTO competitor_observations (id, visit_id, competitor_id, brand, pack_count, activity, mechanism)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, visit.ID, o.CompetitorID, o.Brand, o.PackCount, o.Activity, o.Mechanism,
		)
		if err != nil {
			return fmt.Errorf("insert competitor observation: %w", err)
		}
	}
	return nil
}

// GetByID charge la visite complète avec ses lignes. (nil, nil) si absente.
func (r *VisitRepo) GetByID(ctx context.Context, id string) (*entity.Visit, error) {
	query := `
		SELECT id, merchandiser_id, client_id, visit_date, status, observations,
		       fifo_respected, plano_respected, validator_id, validated_at, created_at
		FROM visits WHERE id = $1`
	var v entity.Visit
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.MerchandiserID, &v.ClientID, &v.Date, &v.Status, &v.Observations,
		&v.FIFORespected, &v.PlanoRespected, &v.ValidatorID, &v.ValidatedAt, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit by id: %w", err)
	}

	if err := r.loadStockReadings(ctx, &v); err != nil {
		return nil, err
	}
	if err := r.loadProductDetails(ctx, &v); err != nil {
		return nil, err
	}
	if err := r.loadCompetitorObs(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetSummary charge la projection de liste d'une seule visite.
func (r *VisitRepo) GetSummary(ctx context.Context, id string) (*entity.VisitSummary, error) {
	query := summarySelect + ` WHERE v.id = $1`
	var s entity.VisitSummary
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Date, &s.Status, &s.ClientID, &s.ClientName,
		&s.MerchandiserID, &s.MerchandiserName, &s.Zone, &s.ManagerID,
		&s.ValidatorID, &s.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit summary: %w", err)
	}
	return &s, nil
}

// ListByStatus liste les visites d'un statut donné dans la portée.
func (r *VisitRepo) ListByStatus(ctx context.Context, scope policy.Scope, status string) ([]*entity.VisitSummary, error) {
	pred, args := scopePredicate(scope, 2)
	query := summarySelect + `
		WHERE v.status = $1 AND ` + pred + `
		ORDER BY v.visit_date DESC, v.created_at DESC`
	return r.querySummaries(ctx, query, append([]any{status}, args...)...)
}

// ListHistory liste les visites décidées dans la portée, les plus récentes
// d'abord (par date de décision).
func (r *VisitRepo) ListHistory(ctx context.Context, scope policy.Scope) ([]*entity.VisitSummary, error) {
	pred, args := scopePredicate(scope, 1)
	query := summarySelect + `
		WHERE v.status IN ('valide', 'rejete') AND ` + pred + `
		ORDER BY v.validated_at DESC`
	return r.querySummaries(ctx, query, args...)
}

// ListRecent liste les dernières visites d'un merchandiser.
func (r *VisitRepo) ListRecent(ctx context.Context, merchandiserID string, limit int) ([]*entity.VisitSummary, error) {
	query := summarySelect + `
		WHERE v.merchandiser_id = $1
		ORDER BY v.visit_date DESC, v.created_at DESC
		LIMIT $2`
	return r.querySummaries(ctx, query, merchandiserID, limit)
}

// MarkDecided applique soumis → outcome par mise à jour conditionnelle.
// RowsAffected = 0 signifie que la garde a échoué : la visite n'était plus
// "soumis". C'est elle qui départage deux décisions concurrentes.
func (r *VisitRepo) MarkDecided(ctx context.Context, visitID, outcome, validatorID string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE visits
		SET status = $2, validator_id = $3, validated_at = $4
		WHERE id = $1 AND status = 'soumis'`
	tag, err := r.q.Exec(ctx, query, visitID, outcome, validatorID, decidedAt)
	if err != nil {
		return false, fmt.Errorf("mark visit decided: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *VisitRepo) querySummaries(ctx context.Context, query string, args ...any) ([]*entity.VisitSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	var list []*entity.VisitSummary
	for rows.Next() {
		var s entity.VisitSummary
		if err := rows.Scan(
			&s.ID, &s.Date, &s.Status, &s.ClientID, &s.ClientName,
			&s.MerchandiserID, &s.MerchandiserName, &s.Zone, &s.ManagerID,
			&s.ValidatorID, &s.ValidatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *VisitRepo) loadStockReadings(ctx context.Context, v *entity.Visit) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, visit_id, product_id, quantity, out_of_stock, shortage_kind
		FROM stock_readings WHERE visit_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("list stock readings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.StockReading
		if err := rows.Scan(&s.ID, &s.VisitID, &s.ProductID, &s.Quantity, &s.OutOfStock, &s.ShortageKind); err != nil {
			return fmt.Errorf("scan stock reading: %w", err)
		}
		v.StockReadings = append(v.StockReadings, s)
	}
	return rows.Err()
}

func (r *VisitRepo) loadProductDetails(ctx context.Context, v *entity.Visit) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, visit_id, product_id, detail_type, quantity, observation
		FROM visit_product_details WHERE visit_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("list product details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.ProductDetail
		if err := rows.Scan(&d.ID, &d.VisitID, &d.ProductID, &d.DetailType, &d.Quantity, &d.Observation); err != nil {
			return fmt.Errorf("scan product detail: %w", err)
		}
		v.ProductDetails = append(v.ProductDetails, d)
	}
	return rows.Err()
}

func (r *VisitRepo) loadCompetitorObs(ctx context.Context, v *entity.Visit) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, visit_id, competitor_id, brand, pack_count, activity, mechanism
		FROM competitor_observations WHERE visit_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("list competitor observations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o entity.CompetitorObservation
		if err := rows.Scan(&o.ID, &o.VisitID, &o.CompetitorID, &o.Brand, &o.PackCount, &o.Activity, &o.Mechanism); err != nil {
			return fmt.Errorf("scan competitor observation: %w", err)
		}
		v.CompetitorObs = append(v.CompetitorObs, o)
	}
	return rows.Err()
}
