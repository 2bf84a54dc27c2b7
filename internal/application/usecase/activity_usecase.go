package usecase

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

const defaultActivityLimit = 50

// ActivityUseCase consultation du journal d'activité (admin).
type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
}

// NewActivityUseCase construit le cas d'usage.
func NewActivityUseCase(activityRepo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// ListRecent retourne les dernières entrées du journal, les plus récentes
// d'abord.
func (uc *ActivityUseCase) ListRecent(ctx context.Context, actor *entity.Actor, limit int) ([]dto.ActivityLogResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = defaultActivityLimit
	}
	entries, err := uc.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Timestamp: e.Timestamp,
		})
	}
	return out, nil
}
