package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/auth"
	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/pkg/observability"
)

// AuthHandler endpoints d'authentification (public).
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *observability.Metrics
}

// NewAuthHandler construit le handler.
func NewAuthHandler(uc *auth.AuthUseCase, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: metrics}
}

// Login vérifie les identifiants et retourne le token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		h.metrics.IncrLogin("failure")
		return respondError(c, err)
	}
	h.metrics.IncrLogin("success")
	return c.JSON(out)
}

// Me retourne l'identité du compte connecté et son profil métier.
// GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "acteur non résolu"})
	}
	out := dto.MeResponse{
		UserResponse: dto.UserResponse{
			ID:        actor.User.ID,
			Name:      actor.User.Name,
			Email:     actor.User.Email,
			Role:      actor.User.Role,
			IsActive:  actor.User.IsActive,
			CreatedAt: actor.User.CreatedAt,
		},
	}
	switch {
	case actor.Supervisor != nil:
		out.ProfileID = actor.Supervisor.ID
	case actor.Merchandiser != nil:
		out.ProfileID = actor.Merchandiser.ID
		out.Zone = actor.Merchandiser.Zone
		out.ManagerID = actor.Merchandiser.ManagerID
	}
	return c.JSON(out)
}
