package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
	"github.com/sourcedupays/terrain-api/pkg/textutil"
)

// UserUseCase gestion des comptes par l'administrateur : création complète
// (compte + profil métier), mise à jour explicite champ par champ, suppression
// journalisée, recherche.
type UserUseCase struct {
	userRepo repository.UserRepository
	txRunner UserTxRunner
}

// NewUserUseCase construit le cas d'usage.
func NewUserUseCase(userRepo repository.UserRepository, txRunner UserTxRunner) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, txRunner: txRunner}
}

// CreateFullUser crée le compte et le profil correspondant au rôle en une
// transaction. La garde anti-élévation s'applique avant tout : role_nom
// "Administrateur" est refusé inconditionnellement, aucune ligne n'est créée.
func (uc *UserUseCase) CreateFullUser(ctx context.Context, actor *entity.Actor, in dto.FullUserCreateRequest) (*dto.UserResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if err := policy.CheckAssignableRole(in.RoleName); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrValidationFailed
	}
	if in.RoleName == entity.RoleMerchandiser && (in.ManagerID == "" || in.Zone == "") {
		return nil, domain.ErrValidationFailed
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	if in.RoleName == entity.RoleMerchandiser {
		manager, err := uc.userRepo.GetSupervisorProfile(ctx, in.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, domain.ErrValidationFailed
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.RoleName,
		IsActive:     true,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunUsers(ctx, func(users repository.UserRepository, activity repository.ActivityRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		switch in.RoleName {
		case entity.RoleSuperviseur:
			if err := users.CreateSupervisorProfile(ctx, &entity.SupervisorProfile{
				ID:     uuid.New().String(),
				UserID: user.ID,
			}); err != nil {
				return err
			}
		case entity.RoleMerchandiser:
			if err := users.CreateMerchandiserProfile(ctx, &entity.MerchandiserProfile{
				ID:        uuid.New().String(),
				UserID:    user.ID,
				Zone:      in.Zone,
				ManagerID: in.ManagerID,
			}); err != nil {
				return err
			}
		}
		return activity.Append(ctx, &entity.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    actor.User.ID,
			Action:    fmt.Sprintf("Création de l'utilisateur %s (%s)", in.Email, in.RoleName),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update applique une mise à jour partielle : chaque champ fourni est affecté
// par un conditionnel explicite, les champs absents restent inchangés.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.Actor, userID string, in dto.UserUpdateRequest) (*dto.UserResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrValidationFailed
		}
		user.Name = *in.Name
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, domain.ErrValidationFailed
		}
		if *in.Email != user.Email {
			existing, err := uc.userRepo.GetByEmail(ctx, *in.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, domain.ErrConflict
			}
		}
		user.Email = *in.Email
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete supprime un compte. L'auto-suppression est toujours refusée, même
// pour un administrateur. L'entrée de journal part dans la même transaction.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.Actor, targetUserID string) error {
	if !policy.CanDeleteUser(actor, targetUserID) {
		if policy.CanManageSystem(actor) {
			// Admin visant son propre compte.
			return domain.ErrValidationFailed
		}
		return domain.ErrForbidden
	}
	target, err := uc.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunUsers(ctx, func(users repository.UserRepository, activity repository.ActivityRepository) error {
		if err := users.Delete(ctx, targetUserID); err != nil {
			return err
		}
		return activity.Append(ctx, &entity.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    actor.User.ID,
			Action:    fmt.Sprintf("Suppression de l'utilisateur %s", target.Email),
			Timestamp: time.Now(),
		})
	})
}

// List retourne tous les comptes (admin).
func (uc *UserUseCase) List(ctx context.Context, actor *entity.Actor) ([]dto.UserResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// Search recherche par nom ou email, insensible à la casse et aux accents.
func (uc *UserUseCase) Search(ctx context.Context, actor *entity.Actor, query string) ([]dto.UserResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if query == "" {
		return uc.List(ctx, actor)
	}
	users, err := uc.userRepo.Search(ctx, textutil.Fold(query))
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// ListSupervisors liste les profils superviseurs pour l'affectation des
// managers (admin).
func (uc *UserUseCase) ListSupervisors(ctx context.Context, actor *entity.Actor) ([]dto.SupervisorResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.userRepo.ListSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupervisorResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupervisorResponse{
			ProfileID: s.ProfileID,
			UserID:    s.UserID,
			Name:      s.Name,
			Email:     s.Email,
		})
	}
	return out, nil
}

// Roles retourne l'énumération fixe des rôles.
func (uc *UserUseCase) Roles() []dto.RoleResponse {
	return []dto.RoleResponse{
		{Name: entity.RoleAdministrateur, Description: "Gère tout le système"},
		{Name: entity.RoleSuperviseur, Description: "Encadre une équipe de merchandisers"},
		{Name: entity.RoleMerchandiser, Description: "Employé terrain"},
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out
}
