package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
	"github.com/sourcedupays/terrain-api/pkg/jwt"
)

// JWTConfig paramètres de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase authentification : vérification des identifiants et émission du
// token. Un compte désactivé est traité comme des identifiants invalides : il
// est "inexistant" pour toute opération.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construit le cas d'usage.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login vérifie email/mot de passe et retourne le token signé avec le rôle.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		// bcrypt à vide pour garder un temps de réponse comparable
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000"), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserRole:    user.Role,
	}, nil
}
