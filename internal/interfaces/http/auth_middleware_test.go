package http_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	apihttp "github.com/sourcedupays/terrain-api/internal/interfaces/http"
	"github.com/sourcedupays/terrain-api/pkg/jwt"
)

const testSecret = "secret-de-test-suffisamment-long"

// buildTestApp monte une route protégée par AuthMiddleware (+ RequireRole si
// fourni) qui renvoie le user_id et le rôle extraits du token.
func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apihttp.AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, apihttp.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apihttp.GetUserID(c),
			"role":    apihttp.GetRole(c),
		})
	})
	app.Get("/protegee", handlers...)
	return app
}

func tokenForRole(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "terrain-api-test", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protegee", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValide(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, "user-123", entity.RoleMerchandiser)

	status, body := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "user-123")
	assert.Contains(t, body, entity.RoleMerchandiser)
}

func TestAuthMiddleware_EnTeteAbsent(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatInvalide(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/protegee", nil)
	req.Header.Set("Authorization", "Basic abcdef")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalforme(t *testing.T) {
	app := buildTestApp()

	status, body := doRequest(t, app, "pas.un.jwt")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_MauvaisSecret(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("un-autre-secret", "user-123", entity.RoleMerchandiser, "terrain-api-test", 15)
	require.NoError(t, err)

	status, _ := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_TokenExpire(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "user-123", entity.RoleMerchandiser, "terrain-api-test", -5)
	require.NoError(t, err)

	status, _ := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RoleAutorise(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrateur)
	token := tokenForRole(t, "admin-1", entity.RoleAdministrateur)

	status, _ := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_PlusieursRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrateur, entity.RoleSuperviseur)
	token := tokenForRole(t, "sup-1", entity.RoleSuperviseur)

	status, _ := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_RoleRefuse(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrateur)
	token := tokenForRole(t, "merch-1", entity.RoleMerchandiser)

	status, body := doRequest(t, app, token)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// jwt Generate/Parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_AllerRetour(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", entity.RoleSuperviseur, "terrain-api-test", 15)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, entity.RoleSuperviseur, role)
}

func TestJWT_SecretVideRefuse(t *testing.T) {
	_, err := jwt.Generate("", "user-42", entity.RoleSuperviseur, "terrain-api-test", 15)
	assert.Error(t, err)
}
