package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/internal/application/export"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// stubVisitRepo ne sert que ListByStatus ; il enregistre la portée et le
// statut demandés.
type stubVisitRepo struct {
	repository.VisitRepository
	scope     *policy.Scope
	status    string
	summaries []*entity.VisitSummary
}

func (r *stubVisitRepo) ListByStatus(_ context.Context, scope policy.Scope, status string) ([]*entity.VisitSummary, error) {
	r.scope = &scope
	r.status = status
	return r.summaries, nil
}

type stubPDFGen struct {
	title  string
	visits []*entity.VisitSummary
}

func (g *stubPDFGen) GenerateVisitsReport(_ context.Context, title string, visits []*entity.VisitSummary) ([]byte, error) {
	g.title = title
	g.visits = visits
	return []byte("%PDF-stub"), nil
}

func supervisorActor() *entity.Actor {
	return &entity.Actor{
		User:       entity.User{ID: "u-s", Role: entity.RoleSuperviseur, IsActive: true},
		Supervisor: &entity.SupervisorProfile{ID: "sup-1", UserID: "u-s"},
	}
}

func sampleSummaries() []*entity.VisitSummary {
	date := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	decided := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	validator := "sup-1"
	return []*entity.VisitSummary{
		{
			ID: "v-1", Date: date, Status: entity.VisitStatusValidated,
			ClientName: "Supermarché Mahima", MerchandiserName: "Aline",
			Zone: "Littoral", ManagerID: "sup-1",
			ValidatorID: &validator, ValidatedAt: &decided,
		},
	}
}

func TestExportCSV_ContenuEtPortee(t *testing.T) {
	repo := &stubVisitRepo{summaries: sampleSummaries()}
	uc := export.NewReportUseCase(repo, &stubPDFGen{})

	data, filename, err := uc.ExportValidatedCSV(context.Background(), supervisorActor())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "en-tête + une ligne de données")
	assert.Equal(t, "date_visite,merchandiser,zone,client,statut,date_validation", lines[0])
	assert.Equal(t, "2026-08-12,Aline,Littoral,Supermarché Mahima,valide,2026-08-14", lines[1])

	assert.True(t, strings.HasPrefix(filename, "visites_validees_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	// L'export passe par la portée équipe, seul le statut validé est demandé.
	require.NotNil(t, repo.scope)
	assert.Equal(t, policy.ScopeTeam, repo.scope.Kind)
	assert.Equal(t, "sup-1", repo.scope.SupervisorID)
	assert.Equal(t, entity.VisitStatusValidated, repo.status)
}

func TestExportCSV_SansVisites(t *testing.T) {
	repo := &stubVisitRepo{}
	uc := export.NewReportUseCase(repo, &stubPDFGen{})

	data, _, err := uc.ExportValidatedCSV(context.Background(), supervisorActor())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1, "seulement l'en-tête")
}

func TestExportCSV_MerchandiserRefuse(t *testing.T) {
	uc := export.NewReportUseCase(&stubVisitRepo{}, &stubPDFGen{})
	merch := &entity.Actor{
		User:         entity.User{ID: "u-m", Role: entity.RoleMerchandiser, IsActive: true},
		Merchandiser: &entity.MerchandiserProfile{ID: "merch-1", UserID: "u-m", ManagerID: "sup-1"},
	}

	_, _, err := uc.ExportValidatedCSV(context.Background(), merch)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportPDF_DelegueAuGenerateur(t *testing.T) {
	repo := &stubVisitRepo{summaries: sampleSummaries()}
	gen := &stubPDFGen{}
	uc := export.NewReportUseCase(repo, gen)

	data, filename, err := uc.ExportValidatedPDF(context.Background(), supervisorActor())
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-stub"), data)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, "Rapport des visites validées", gen.title)
	require.Len(t, gen.visits, 1)
}
