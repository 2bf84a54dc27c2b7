package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// CompetitorUseCase référentiel des concurrents suivis en veille. Lecture
// ouverte, création admin, nom unique.
type CompetitorUseCase struct {
	competitorRepo repository.CompetitorRepository
}

// NewCompetitorUseCase construit le cas d'usage.
func NewCompetitorUseCase(competitorRepo repository.CompetitorRepository) *CompetitorUseCase {
	return &CompetitorUseCase{competitorRepo: competitorRepo}
}

// Create crée un concurrent (admin). Le nom est vérifié avant insertion, la
// contrainte d'unicité couvre la course résiduelle.
func (uc *CompetitorUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.CompetitorCreateRequest) (*dto.CompetitorResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrValidationFailed
	}
	existing, err := uc.competitorRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	competitor := &entity.Competitor{
		ID:   uuid.New().String(),
		Name: in.Name,
	}
	if err := uc.competitorRepo.Create(ctx, competitor); err != nil {
		return nil, err
	}
	return &dto.CompetitorResponse{ID: competitor.ID, Name: competitor.Name}, nil
}

// List liste les concurrents suivis.
func (uc *CompetitorUseCase) List(ctx context.Context) ([]dto.CompetitorResponse, error) {
	competitors, err := uc.competitorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompetitorResponse, 0, len(competitors))
	for _, c := range competitors {
		out = append(out, dto.CompetitorResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}
