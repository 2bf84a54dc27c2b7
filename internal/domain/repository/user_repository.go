package repository

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

// SupervisorInfo projection d'un profil superviseur avec l'identité du compte,
// pour les écrans d'affectation des managers.
type SupervisorInfo struct {
	ProfileID string
	UserID    string
	Name      string
	Email     string
}

// UserRepository port de persistance des comptes et profils (DIP).
// Les méthodes retournent (nil, nil) quand l'entité n'existe pas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	CreateSupervisorProfile(ctx context.Context, profile *entity.SupervisorProfile) error
	CreateMerchandiserProfile(ctx context.Context, profile *entity.MerchandiserProfile) error

	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetActorByID résout l'identité complète : utilisateur + rôle + profil
	// superviseur ou merchandiser, en un seul aller-retour. Obligatoire avant
	// toute décision d'autorisation.
	GetActorByID(ctx context.Context, userID string) (*entity.Actor, error)

	GetSupervisorProfile(ctx context.Context, profileID string) (*entity.SupervisorProfile, error)
	ListSupervisors(ctx context.Context) ([]SupervisorInfo, error)

	List(ctx context.Context) ([]*entity.User, error)

	// Search reçoit une requête repliée (minuscules, sans accents) et doit
	// comparer contre les colonnes repliées de la même façon.
	Search(ctx context.Context, query string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
