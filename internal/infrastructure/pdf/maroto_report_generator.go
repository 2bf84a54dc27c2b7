// Package pdf génère le rapport PDF des visites validées.
//
// Layout de la page A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Titre du rapport + date d'édition                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Date | Merchandiser | Zone | Client | Validée le    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total des visites                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implémente export.ReportPDFGenerator avec Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construit le générateur.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateVisitsReport génère le PDF et retourne ses octets.
func (g *MarotoReportGenerator) GenerateVisitsReport(
	_ context.Context,
	title string,
	visits []*entity.VisitSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("Source du Pays", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, len(visits)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(visits) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(visits)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: titre (gauche) et date d'édition (droite).
func headerRow(title string, count int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("SOURCE DU PAYS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d visite(s)", count), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: en-tête de la table.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Merchandiser", 3, align.Left),
		h("Zone", 2, align.Left),
		h("Client", 3, align.Left),
		h("Validée le", 2, align.Right),
	)
}

// tableRows: une ligne par visite validée.
func tableRows(visits []*entity.VisitSummary) []core.Row {
	result := make([]core.Row, 0, len(visits))
	for _, v := range visits {
		validatedAt := "—"
		if v.ValidatedAt != nil {
			validatedAt = v.ValidatedAt.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				v.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				v.MerchandiserName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				v.Zone,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				v.ClientName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				validatedAt,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: total en pied de rapport.
func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total des visites validées : %d", count), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		}),
	))
}
