package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sourcedupays/terrain-api/internal/application/auth"
	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
	"github.com/sourcedupays/terrain-api/pkg/jwt"
)

// stubUserRepo ne sert que GetByEmail ; les autres méthodes du port ne sont
// pas appelées par Login.
type stubUserRepo struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func newAuthUC(users ...*entity.User) *auth.AuthUseCase {
	repo := &stubUserRepo{byEmail: make(map[string]*entity.User)}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secret-de-test-suffisamment-long",
		ExpMinutes: 15,
		Issuer:     "terrain-api-test",
	})
}

func userWithPassword(t *testing.T, email, password, role string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID: "user-1", Name: "Aline", Email: email,
		PasswordHash: string(hash), Role: role, IsActive: active,
	}
}

func TestLogin_IdentifiantsValides(t *testing.T) {
	uc := newAuthUC(userWithPassword(t, "aline@sourcedupays.cm", "motdepasse", entity.RoleMerchandiser, true))

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "aline@sourcedupays.cm", Password: "motdepasse",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, entity.RoleMerchandiser, out.UserRole)

	// Le token embarque l'identité et le rôle du compte.
	userID, role, err := jwt.Parse("secret-de-test-suffisamment-long", out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleMerchandiser, role)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	uc := newAuthUC(userWithPassword(t, "aline@sourcedupays.cm", "motdepasse", entity.RoleMerchandiser, true))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "aline@sourcedupays.cm", Password: "autre-chose",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_EmailInconnu(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "personne@sourcedupays.cm", Password: "motdepasse",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_CompteDesactive(t *testing.T) {
	uc := newAuthUC(userWithPassword(t, "aline@sourcedupays.cm", "motdepasse", entity.RoleMerchandiser, false))

	// Même erreur qu'un compte inexistant : pas d'indice sur l'existence.
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "aline@sourcedupays.cm", Password: "motdepasse",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
