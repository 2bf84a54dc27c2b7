package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// DecideVisitUseCase applique le verdict d'un superviseur sur une visite
// soumise. La transition soumis → valide|rejete se fait exactement une fois :
// la mise à jour est conditionnée au statut courant, donc de deux décisions
// concurrentes une seule gagne, l'autre reçoit ErrInvalidTransition.
type DecideVisitUseCase struct {
	txRunner  TxRunner
	visitRepo repository.VisitRepository
}

// NewDecideVisitUseCase construit le cas d'usage.
func NewDecideVisitUseCase(txRunner TxRunner, visitRepo repository.VisitRepository) *DecideVisitUseCase {
	return &DecideVisitUseCase{txRunner: txRunner, visitRepo: visitRepo}
}

// Decide vérifie autorisation et état avant toute mutation, puis applique la
// transition conditionnelle et journalise dans la même transaction. Pas
// idempotent : redécider une visite déjà décidée est une erreur, pas un no-op.
func (uc *DecideVisitUseCase) Decide(ctx context.Context, actor *entity.Actor, visitID, outcome string) (*dto.VisitSummaryResponse, error) {
	if !entity.ValidOutcome(outcome) {
		return nil, domain.ErrValidationFailed
	}

	summary, err := uc.visitRepo.GetSummary(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanDecideVisit(actor, summary.ManagerID) {
		return nil, domain.ErrForbidden
	}
	if summary.Status != entity.VisitStatusSubmitted {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	validatorID := actor.Supervisor.ID
	err = uc.txRunner.Run(ctx, func(visits repository.VisitRepository, activity repository.ActivityRepository) error {
		won, err := visits.MarkDecided(ctx, visitID, outcome, validatorID, now)
		if err != nil {
			return err
		}
		if !won {
			// Une décision concurrente est passée entre la lecture et ici.
			return domain.ErrInvalidTransition
		}
		return activity.Append(ctx, &entity.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    actor.User.ID,
			Action:    fmt.Sprintf("Décision %s sur la visite %s", outcome, visitID),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}

	summary.Status = outcome
	summary.ValidatorID = &validatorID
	summary.ValidatedAt = &now
	return toSummaryResponse(summary), nil
}
