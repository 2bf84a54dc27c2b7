package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/application/usecase"
)

// ReferenceHandler endpoints des données de référence : points de vente,
// catalogue, catégories, concurrents (protégé ; mutation admin).
type ReferenceHandler struct {
	clientUC     *usecase.ClientUseCase
	productUC    *usecase.ProductUseCase
	competitorUC *usecase.CompetitorUseCase
}

// NewReferenceHandler construit le handler.
func NewReferenceHandler(
	clientUC *usecase.ClientUseCase,
	productUC *usecase.ProductUseCase,
	competitorUC *usecase.CompetitorUseCase,
) *ReferenceHandler {
	return &ReferenceHandler{clientUC: clientUC, productUC: productUC, competitorUC: competitorUC}
}

// CreateClient crée un point de vente.
// POST /api/clients
func (h *ReferenceHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.ClientCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.clientUC.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients liste les points de vente ; ?q= bascule en recherche (admin).
// GET /api/clients
func (h *ReferenceHandler) ListClients(c *fiber.Ctx) error {
	if query := c.Query("q"); query != "" {
		out, err := h.clientUC.Search(c.Context(), GetActor(c), query)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	out, err := h.clientUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateClient mise à jour partielle d'un point de vente.
// PUT /api/clients/:id
func (h *ReferenceHandler) UpdateClient(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ClientUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.clientUC.Update(c.Context(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteClient supprime un point de vente.
// DELETE /api/clients/:id
func (h *ReferenceHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.clientUC.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProduct crée un produit du catalogue.
// POST /api/produits
func (h *ReferenceHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.productUC.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts liste le catalogue ; ?q= bascule en recherche.
// GET /api/produits
func (h *ReferenceHandler) ListProducts(c *fiber.Ctx) error {
	if query := c.Query("q"); query != "" {
		out, err := h.productUC.Search(c.Context(), query)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	out, err := h.productUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProduct mise à jour partielle d'un produit.
// PUT /api/produits/:id
func (h *ReferenceHandler) UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ProductUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.productUC.Update(c.Context(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct supprime un produit.
// DELETE /api/produits/:id
func (h *ReferenceHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.productUC.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCategory crée une catégorie produit.
// POST /api/categories
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.productUC.CreateCategory(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories liste les catégories.
// GET /api/categories
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.productUC.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCompetitor crée un concurrent suivi.
// POST /api/concurrents
func (h *ReferenceHandler) CreateCompetitor(c *fiber.Ctx) error {
	var in dto.CompetitorCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.competitorUC.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCompetitors liste les concurrents suivis.
// GET /api/concurrents
func (h *ReferenceHandler) ListCompetitors(c *fiber.Ctx) error {
	out, err := h.competitorUC.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
