package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/application/identity"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/pkg/jwt"
)

// Clés Locals Fiber posées par les middlewares d'authentification.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalActor  = "actor"
)

// AuthMiddleware valide le Bearer Token JWT et pose user_id et role dans
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "en-tête Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format attendu: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vide"})
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token invalide ou expiré"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// ActorMiddleware résout l'acteur complet (compte + profil) à chaque requête,
// après AuthMiddleware. Un compte supprimé ou désactivé depuis l'émission du
// token est rejeté ici : le token seul ne suffit jamais.
func ActorMiddleware(resolver *identity.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
		}
		actor, err := resolver.Resolve(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "compte inconnu ou désactivé"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// RequireRole refuse la requête si le rôle du token n'est pas dans la liste.
// Filtre rapide avant les contrôles fins des cas d'usage.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "accès refusé"})
	}
}

// GetUserID retourne le UserID du contexte (après AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole retourne le rôle du contexte (après AuthMiddleware).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetActor retourne l'acteur résolu du contexte (après ActorMiddleware).
func GetActor(c *fiber.Ctx) *entity.Actor {
	v := c.Locals(LocalActor)
	if v == nil {
		return nil
	}
	a, _ := v.(*entity.Actor)
	return a
}
