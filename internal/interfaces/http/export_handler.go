package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sourcedupays/terrain-api/internal/application/export"
)

// ExportHandler endpoints d'export des visites validées (protégé, lectures
// d'équipe).
type ExportHandler struct {
	uc *export.ReportUseCase
}

// NewExportHandler construit le handler.
func NewExportHandler(uc *export.ReportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// CSV exporte les visites validées de la portée au format CSV.
// GET /api/exports/visites.csv
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportValidatedCSV(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// PDF exporte le rapport des visites validées de la portée au format PDF.
// GET /api/exports/visites.pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportValidatedPDF(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
