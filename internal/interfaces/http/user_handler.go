package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/application/usecase"
)

// UserHandler endpoints d'administration des comptes (protégé, admin).
type UserHandler struct {
	userUC     *usecase.UserUseCase
	activityUC *usecase.ActivityUseCase
}

// NewUserHandler construit le handler.
func NewUserHandler(userUC *usecase.UserUseCase, activityUC *usecase.ActivityUseCase) *UserHandler {
	return &UserHandler{userUC: userUC, activityUC: activityUC}
}

// Create crée un compte complet (compte + profil selon le rôle).
// POST /api/admin/utilisateurs
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.FullUserCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.userUC.CreateFullUser(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List liste tous les comptes ; ?q= bascule en recherche.
// GET /api/admin/utilisateurs
func (h *UserHandler) List(c *fiber.Ctx) error {
	query := c.Query("q")
	var (
		out []dto.UserResponse
		err error
	)
	if query != "" {
		out, err = h.userUC.Search(c.Context(), GetActor(c), query)
	} else {
		out, err = h.userUC.List(c.Context(), GetActor(c))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update mise à jour partielle d'un compte.
// PUT /api/admin/utilisateurs/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.UserUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.userUC.Update(c.Context(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete supprime un compte (jamais le sien).
// DELETE /api/admin/utilisateurs/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	if err := h.userUC.Delete(c.Context(), GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSupervisors liste les profils superviseurs pour l'affectation.
// GET /api/admin/superviseurs
func (h *UserHandler) ListSupervisors(c *fiber.Ctx) error {
	out, err := h.userUC.ListSupervisors(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Roles retourne l'énumération fixe des rôles.
// GET /api/admin/roles
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(h.userUC.Roles())
}

// Activity retourne les dernières entrées du journal d'activité.
// GET /api/admin/journal
func (h *UserHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	out, err := h.activityUC.ListRecent(c.Context(), GetActor(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
