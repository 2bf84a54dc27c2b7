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

// CreateVisitUseCase soumission d'une visite : la ligne visite et ses trois
// collections deviennent visibles ensemble ou pas du tout.
type CreateVisitUseCase struct {
	txRunner   TxRunner
	clientRepo repository.ClientRepository
}

// NewCreateVisitUseCase construit le cas d'usage.
func NewCreateVisitUseCase(txRunner TxRunner, clientRepo repository.ClientRepository) *CreateVisitUseCase {
	return &CreateVisitUseCase{txRunner: txRunner, clientRepo: clientRepo}
}

// Create vérifie l'autorisation et les entrées AVANT toute mutation, puis
// insère la visite complète et son entrée de journal dans une transaction.
func (uc *CreateVisitUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.VisitCreateRequest) (*dto.VisitDetailResponse, error) {
	if !policy.CanSubmitVisit(actor) {
		return nil, domain.ErrForbidden
	}
	if in.ClientID == "" {
		return nil, domain.ErrValidationFailed
	}
	for _, d := range in.ProductDetails {
		if d.DetailType != entity.DetailTypeOrder && d.DetailType != entity.DetailTypeIncident {
			return nil, domain.ErrValidationFailed
		}
		if d.ProductID == "" || d.Quantity < 0 {
			return nil, domain.ErrValidationFailed
		}
	}
	for _, s := range in.StockReadings {
		if s.ProductID == "" || s.Quantity < 0 {
			return nil, domain.ErrValidationFailed
		}
	}
	for _, c := range in.CompetitorObs {
		if c.CompetitorID == "" {
			return nil, domain.ErrValidationFailed
		}
	}

	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrValidationFailed
	}

	now := time.Now()
	// Minuit local, pas le jour UTC : une soumission tôt le matin dans un
	// fuseau UTC+n doit rester datée d'aujourd'hui.
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrValidationFailed
		}
		date = parsed
	}
	v := &entity.Visit{
		ID:             uuid.New().String(),
		MerchandiserID: actor.Merchandiser.ID,
		ClientID:       in.ClientID,
		Date:           date,
		Status:         entity.VisitStatusSubmitted,
		Observations:   in.Observations,
		FIFORespected:  in.FIFORespected,
		PlanoRespected: in.PlanoRespected,
		CreatedAt:      now,
	}
	for _, s := range in.StockReadings {
		v.StockReadings = append(v.StockReadings, entity.StockReading{
			ID:           uuid.New().String(),
			VisitID:      v.ID,
			ProductID:    s.ProductID,
			Quantity:     s.Quantity,
			OutOfStock:   s.OutOfStock,
			ShortageKind: s.ShortageKind,
		})
	}
	for _, d := range in.ProductDetails {
		v.ProductDetails = append(v.ProductDetails, entity.ProductDetail{
			ID:          uuid.New().String(),
			VisitID:     v.ID,
			ProductID:   d.ProductID,
			DetailType:  d.DetailType,
			Quantity:    d.Quantity,
			Observation: d.Observation,
		})
	}
	for _, c := range in.CompetitorObs {
		v.CompetitorObs = append(v.CompetitorObs, entity.CompetitorObservation{
			ID:           uuid.New().String(),
			VisitID:      v.ID,
			CompetitorID: c.CompetitorID,
			Brand:        c.Brand,
			PackCount:    c.PackCount,
			Activity:     c.Activity,
			Mechanism:    c.Mechanism,
		})
	}

	err = uc.txRunner.Run(ctx, func(visits repository.VisitRepository, activity repository.ActivityRepository) error {
		if err := visits.Create(ctx, v); err != nil {
			return err
		}
		return activity.Append(ctx, &entity.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    actor.User.ID,
			Action:    fmt.Sprintf("Soumission de la visite %s (client %s)", v.ID, client.Name),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toDetailResponse(v), nil
}
