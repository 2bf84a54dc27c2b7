package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/application/visit"
	"github.com/sourcedupays/terrain-api/pkg/observability"
)

// VisitHandler endpoints du workflow de visites (protégé).
type VisitHandler struct {
	createUC *visit.CreateVisitUseCase
	decideUC *visit.DecideVisitUseCase
	queryUC  *visit.QueryVisitsUseCase
	metrics  *observability.Metrics
}

// NewVisitHandler construit le handler.
func NewVisitHandler(
	createUC *visit.CreateVisitUseCase,
	decideUC *visit.DecideVisitUseCase,
	queryUC *visit.QueryVisitsUseCase,
	metrics *observability.Metrics,
) *VisitHandler {
	return &VisitHandler{createUC: createUC, decideUC: decideUC, queryUC: queryUC, metrics: metrics}
}

// Create soumet une nouvelle visite.
// POST /api/visites
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var in dto.VisitCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.createUC.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.IncrVisitCreated()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID retourne le détail complet d'une visite de la portée.
// GET /api/visites/:id
func (h *VisitHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	out, err := h.queryUC.GetDetail(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Decide applique le verdict valide ou rejete sur une visite soumise.
// PUT /api/visites/:id/decision
func (h *VisitHandler) Decide(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.DecideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.decideUC.Decide(c.Context(), GetActor(c), id, in.Outcome)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.IncrVisitDecision(in.Outcome)
	return c.JSON(out)
}

// ListPending liste les visites soumises de la portée.
// GET /api/visites/en-attente
func (h *VisitHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.queryUC.ListPending(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListValidated liste les visites validées de la portée.
// GET /api/visites/validees
func (h *VisitHandler) ListValidated(c *fiber.Ctx) error {
	out, err := h.queryUC.ListValidated(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListHistory liste l'historique des visites décidées de la portée.
// GET /api/visites/historique
func (h *VisitHandler) ListHistory(c *fiber.Ctx) error {
	out, err := h.queryUC.ListHistory(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMine liste les dernières visites du merchandiser connecté.
// GET /api/visites/mes-visites
func (h *VisitHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.queryUC.ListMine(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
