package visit

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

const recentVisitsLimit = 10

// QueryVisitsUseCase lectures scopées des visites. La portée vient de
// policy.ScopeForVisitRead et part dans le repository comme prédicat
// obligatoire ; on ne filtre jamais après coup en mémoire.
type QueryVisitsUseCase struct {
	visitRepo repository.VisitRepository
}

// NewQueryVisitsUseCase construit le cas d'usage.
func NewQueryVisitsUseCase(visitRepo repository.VisitRepository) *QueryVisitsUseCase {
	return &QueryVisitsUseCase{visitRepo: visitRepo}
}

// GetDetail retourne la visite complète si elle est dans la portée de
// l'acteur. Visite absente → ErrNotFound ; visite existante hors portée →
// ErrForbidden. Les deux cas restent distincts volontairement.
func (uc *QueryVisitsUseCase) GetDetail(ctx context.Context, actor *entity.Actor, visitID string) (*dto.VisitDetailResponse, error) {
	summary, err := uc.visitRepo.GetSummary(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrNotFound
	}
	scope, err := policy.ScopeForVisitRead(actor)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(summary.MerchandiserID, summary.ManagerID) {
		return nil, domain.ErrForbidden
	}
	v, err := uc.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toDetailResponse(v), nil
}

// ListPending liste les visites soumises de la portée. Lecture d'équipe :
// refusée aux merchandisers, qui passent par ListMine.
func (uc *QueryVisitsUseCase) ListPending(ctx context.Context, actor *entity.Actor) ([]dto.VisitSummaryResponse, error) {
	return uc.listTeamByStatus(ctx, actor, entity.VisitStatusSubmitted)
}

// ListValidated liste les visites validées de la portée (rapports, export).
func (uc *QueryVisitsUseCase) ListValidated(ctx context.Context, actor *entity.Actor) ([]dto.VisitSummaryResponse, error) {
	return uc.listTeamByStatus(ctx, actor, entity.VisitStatusValidated)
}

// ListHistory liste les visites décidées (validées ET rejetées) de la
// portée, les plus récentes d'abord.
func (uc *QueryVisitsUseCase) ListHistory(ctx context.Context, actor *entity.Actor) ([]dto.VisitSummaryResponse, error) {
	if !policy.CanReadTeam(actor) {
		return nil, domain.ErrForbidden
	}
	scope, err := policy.ScopeForVisitRead(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.visitRepo.ListHistory(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(list), nil
}

// ListMine liste les dernières visites du merchandiser connecté.
func (uc *QueryVisitsUseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]dto.VisitSummaryResponse, error) {
	if actor == nil || actor.Merchandiser == nil {
		return nil, domain.ErrForbidden
	}
	list, err := uc.visitRepo.ListRecent(ctx, actor.Merchandiser.ID, recentVisitsLimit)
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(list), nil
}

func (uc *QueryVisitsUseCase) listTeamByStatus(ctx context.Context, actor *entity.Actor, status string) ([]dto.VisitSummaryResponse, error) {
	if !policy.CanReadTeam(actor) {
		return nil, domain.ErrForbidden
	}
	scope, err := policy.ScopeForVisitRead(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.visitRepo.ListByStatus(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(list), nil
}
