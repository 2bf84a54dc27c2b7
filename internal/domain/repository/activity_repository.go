package repository

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

// ActivityRepository port du journal d'activité. Append s'exécute dans la
// transaction de l'opération journalisée : si l'écriture du journal échoue,
// toute l'opération est annulée.
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}
