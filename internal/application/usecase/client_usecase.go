package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
	"github.com/sourcedupays/terrain-api/pkg/textutil"
)

// ClientUseCase CRUD des points de vente. Lecture ouverte aux utilisateurs
// authentifiés (les merchandisers choisissent un client pour leurs visites) ;
// mutation réservée à l'administrateur.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create crée un point de vente (admin).
func (uc *ClientUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.ClientCreateRequest) (*dto.ClientResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrValidationFailed
	}
	creatorID := actor.User.ID
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Typology:  in.Typology,
		Location:  in.Location,
		CreatorID: &creatorID,
		CreatedAt: time.Now(),
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update mise à jour partielle explicite (admin).
func (uc *ClientUseCase) Update(ctx context.Context, actor *entity.Actor, clientID string, in dto.ClientUpdateRequest) (*dto.ClientResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrValidationFailed
		}
		client.Name = *in.Name
	}
	if in.Contact != nil {
		client.Contact = *in.Contact
	}
	if in.Typology != nil {
		client.Typology = *in.Typology
	}
	if in.Location != nil {
		client.Location = *in.Location
	}
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete supprime un point de vente (admin).
func (uc *ClientUseCase) Delete(ctx context.Context, actor *entity.Actor, clientID string) error {
	if !policy.CanManageSystem(actor) {
		return domain.ErrForbidden
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(ctx, clientID)
}

// List liste les points de vente (tout utilisateur authentifié).
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toClientResponses(clients), nil
}

// Search recherche par nom ou contact, insensible aux accents (admin).
func (uc *ClientUseCase) Search(ctx context.Context, actor *entity.Actor, query string) ([]dto.ClientResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	clients, err := uc.clientRepo.Search(ctx, textutil.Fold(query))
	if err != nil {
		return nil, err
	}
	return toClientResponses(clients), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:       c.ID,
		Name:     c.Name,
		Contact:  c.Contact,
		Typology: c.Typology,
		Location: c.Location,
	}
}

func toClientResponses(clients []*entity.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out
}
