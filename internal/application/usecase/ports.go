package usecase

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// UserTxRunner exécute fn dans une transaction avec les repositories compte
// et journal liés à la transaction : création complète d'un utilisateur
// (compte + profil + journal) et suppression journalisée, tout ou rien.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		users repository.UserRepository,
		activity repository.ActivityRepository,
	) error) error
}
