// Package export produit les rapports de visites validées, au format CSV et
// PDF.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// ReportPDFGenerator rend le rapport PDF des visites validées.
type ReportPDFGenerator interface {
	GenerateVisitsReport(ctx context.Context, title string, visits []*entity.VisitSummary) ([]byte, error)
}

// ReportUseCase exporte les visites validées de la portée de l'acteur. Les
// exports passent par le même prédicat de portée que les listings : un
// superviseur n'exporte que son équipe.
type ReportUseCase struct {
	visitRepo repository.VisitRepository
	pdfGen    ReportPDFGenerator
}

// NewReportUseCase construit le cas d'usage.
func NewReportUseCase(visitRepo repository.VisitRepository, pdfGen ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{visitRepo: visitRepo, pdfGen: pdfGen}
}

// ExportValidatedCSV retourne le CSV des visites validées et son nom de
// fichier.
func (uc *ReportUseCase) ExportValidatedCSV(ctx context.Context, actor *entity.Actor) ([]byte, string, error) {
	visits, err := uc.validatedVisits(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date_visite", "merchandiser", "zone", "client", "statut", "date_validation"}); err != nil {
		return nil, "", fmt.Errorf("export csv: %w", err)
	}
	for _, v := range visits {
		validatedAt := ""
		if v.ValidatedAt != nil {
			validatedAt = v.ValidatedAt.Format("2006-01-02")
		}
		record := []string{
			v.Date.Format("2006-01-02"),
			v.MerchandiserName,
			v.Zone,
			v.ClientName,
			v.Status,
			validatedAt,
		}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), exportFilename("csv"), nil
}

// ExportValidatedPDF retourne le rapport PDF des visites validées et son nom
// de fichier.
func (uc *ReportUseCase) ExportValidatedPDF(ctx context.Context, actor *entity.Actor) ([]byte, string, error) {
	visits, err := uc.validatedVisits(ctx, actor)
	if err != nil {
		return nil, "", err
	}
	title := "Rapport des visites validées"
	doc, err := uc.pdfGen.GenerateVisitsReport(ctx, title, visits)
	if err != nil {
		return nil, "", fmt.Errorf("export pdf: %w", err)
	}
	return doc, exportFilename("pdf"), nil
}

func (uc *ReportUseCase) validatedVisits(ctx context.Context, actor *entity.Actor) ([]*entity.VisitSummary, error) {
	if !policy.CanReadTeam(actor) {
		return nil, domain.ErrForbidden
	}
	scope, err := policy.ScopeForVisitRead(actor)
	if err != nil {
		return nil, err
	}
	return uc.visitRepo.ListByStatus(ctx, scope, entity.VisitStatusValidated)
}

func exportFilename(ext string) string {
	return fmt.Sprintf("visites_validees_%s.%s", time.Now().Format("20060102"), ext)
}
