// Package identity résout un identifiant de token en acteur complet.
//
// La résolution est faite en une seule passe, profil compris, AVANT toute
// décision d'autorisation : aller chercher le profil paresseusement au milieu
// d'un contrôle de policy serait un bug de correction, les décisions dépendant
// de la présence du profil.
package identity

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// Resolver charge l'acteur depuis le port utilisateur.
type Resolver struct {
	userRepo repository.UserRepository
}

// NewResolver construit le résolveur.
func NewResolver(userRepo repository.UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// Resolve retourne l'acteur actif correspondant à userID. Un compte inconnu
// ou désactivé donne ErrNotFound : il est invisible pour toutes les
// opérations.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*entity.Actor, error) {
	actor, err := r.userRepo.GetActorByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.User.IsActive {
		return nil, domain.ErrNotFound
	}
	return actor, nil
}
