package postgres

import (
	"context"
	"fmt"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implémentation du port ActivityRepository sur PostgreSQL.
// Le journal est append-only : pas d'update, pas de delete.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append insère une entrée de journal.
func (r *ActivityRepo) Append(ctx context.Context, entry *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, action, created_at) VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.UserID, entry.Action, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListRecent retourne les dernières entrées, les plus récentes d'abord.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, action, created_at FROM activity_logs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
