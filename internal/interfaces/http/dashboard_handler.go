package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/analytics"
	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

// DashboardHandler endpoint du tableau de bord par rôle (protégé).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construit le handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get retourne le tableau de bord correspondant au rôle de l'acteur.
// GET /api/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalide"})
	}
	switch {
	case actor.User.Role == entity.RoleAdministrateur:
		out, err := h.uc.GetAdminDashboard(c.Context(), actor)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	case actor.Supervisor != nil:
		out, err := h.uc.GetSupervisorDashboard(c.Context(), actor)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	case actor.Merchandiser != nil:
		out, err := h.uc.GetMerchandiserDashboard(c.Context(), actor)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "accès refusé"})
}
