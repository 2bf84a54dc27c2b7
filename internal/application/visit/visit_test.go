package visit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/application/visit"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type merchInfo struct {
	name      string
	zone      string
	managerID string
}

// fakeStore état partagé des fakes, protégé par mutex pour les tests de
// concurrence.
type fakeStore struct {
	mu      sync.Mutex
	visits  map[string]*entity.Visit
	merch   map[string]merchInfo
	clients map[string]*entity.Client
	logs    []entity.ActivityLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		visits:  make(map[string]*entity.Visit),
		merch:   make(map[string]merchInfo),
		clients: make(map[string]*entity.Client),
	}
}

func (s *fakeStore) summaryLocked(v *entity.Visit) *entity.VisitSummary {
	m := s.merch[v.MerchandiserID]
	clientName := ""
	if c, ok := s.clients[v.ClientID]; ok {
		clientName = c.Name
	}
	return &entity.VisitSummary{
		ID:               v.ID,
		Date:             v.Date,
		Status:           v.Status,
		ClientID:         v.ClientID,
		ClientName:       clientName,
		MerchandiserID:   v.MerchandiserID,
		MerchandiserName: m.name,
		Zone:             m.zone,
		ManagerID:        m.managerID,
		ValidatorID:      v.ValidatorID,
		ValidatedAt:      v.ValidatedAt,
	}
}

type fakeVisitRepo struct {
	s *fakeStore
}

func (r *fakeVisitRepo) Create(_ context.Context, v *entity.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.visits[v.ID] = &cp
	return nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id string) (*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.visits[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVisitRepo) GetSummary(_ context.Context, id string) (*entity.VisitSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.visits[id]
	if !ok {
		return nil, nil
	}
	return r.s.summaryLocked(v), nil
}

func (r *fakeVisitRepo) ListByStatus(_ context.Context, scope policy.Scope, status string) ([]*entity.VisitSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.VisitSummary
	for _, v := range r.s.visits {
		sum := r.s.summaryLocked(v)
		if v.Status == status && scope.Allows(sum.MerchandiserID, sum.ManagerID) {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) ListHistory(_ context.Context, scope policy.Scope) ([]*entity.VisitSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.VisitSummary
	for _, v := range r.s.visits {
		if v.Status == entity.VisitStatusSubmitted {
			continue
		}
		sum := r.s.summaryLocked(v)
		if scope.Allows(sum.MerchandiserID, sum.ManagerID) {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) ListRecent(_ context.Context, merchandiserID string, limit int) ([]*entity.VisitSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.VisitSummary
	for _, v := range r.s.visits {
		if v.MerchandiserID == merchandiserID && len(out) < limit {
			out = append(out, r.s.summaryLocked(v))
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) MarkDecided(_ context.Context, visitID, outcome, validatorID string, decidedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.visits[visitID]
	if !ok || v.Status != entity.VisitStatusSubmitted {
		return false, nil
	}
	v.Status = outcome
	v.ValidatorID = &validatorID
	v.ValidatedAt = &decidedAt
	return true, nil
}

type fakeActivityRepo struct {
	s    *fakeStore
	fail bool
}

func (r *fakeActivityRepo) Append(_ context.Context, e *entity.ActivityLog) error {
	if r.fail {
		return errors.New("journal indisponible")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, *e)
	return nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]*entity.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ActivityLog
	for i := len(r.s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.logs[i]
		out = append(out, &e)
	}
	return out, nil
}

// trackingVisitRepo journalise les mutations du callback pour pouvoir les
// défaire si la "transaction" échoue.
type trackingVisitRepo struct {
	*fakeVisitRepo
	created []string
	decided []string
}

func (r *trackingVisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	if err := r.fakeVisitRepo.Create(ctx, v); err != nil {
		return err
	}
	r.created = append(r.created, v.ID)
	return nil
}

func (r *trackingVisitRepo) MarkDecided(ctx context.Context, visitID, outcome, validatorID string, decidedAt time.Time) (bool, error) {
	won, err := r.fakeVisitRepo.MarkDecided(ctx, visitID, outcome, validatorID, decidedAt)
	if won {
		r.decided = append(r.decided, visitID)
	}
	return won, err
}

// fakeTxRunner émule la sémantique tout-ou-rien : les mutations faites par le
// callback sont défaites si celui-ci retourne une erreur.
type fakeTxRunner struct {
	s           *fakeStore
	failJournal bool
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	visits repository.VisitRepository,
	activity repository.ActivityRepository,
) error) error {
	tracking := &trackingVisitRepo{fakeVisitRepo: &fakeVisitRepo{s: r.s}}
	err := fn(tracking, &fakeActivityRepo{s: r.s, fail: r.failJournal})
	if err != nil {
		r.s.mu.Lock()
		for _, id := range tracking.created {
			delete(r.s.visits, id)
		}
		for _, id := range tracking.decided {
			if v, ok := r.s.visits[id]; ok {
				v.Status = entity.VisitStatusSubmitted
				v.ValidatorID = nil
				v.ValidatedAt = nil
			}
		}
		r.s.mu.Unlock()
	}
	return err
}

type fakeClientRepo struct {
	s *fakeStore
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeClientRepo) List(context.Context, int, int) ([]*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) Search(context.Context, string) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(context.Context, *entity.Client) error { return nil }
func (r *fakeClientRepo) Delete(context.Context, string) error         { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func merchandiserActor(userID, profileID, managerID string) *entity.Actor {
	return &entity.Actor{
		User: entity.User{ID: userID, Role: entity.RoleMerchandiser, IsActive: true},
		Merchandiser: &entity.MerchandiserProfile{
			ID: profileID, UserID: userID, Zone: "Littoral", ManagerID: managerID,
		},
	}
}

func supervisorActor(userID, profileID string) *entity.Actor {
	return &entity.Actor{
		User:       entity.User{ID: userID, Role: entity.RoleSuperviseur, IsActive: true},
		Supervisor: &entity.SupervisorProfile{ID: profileID, UserID: userID},
	}
}

func adminActor(userID string) *entity.Actor {
	return &entity.Actor{
		User: entity.User{ID: userID, Role: entity.RoleAdministrateur, IsActive: true},
	}
}

// fixture crée un magasin avec un client, deux merchandisers (équipes
// distinctes) et leurs superviseurs.
func fixture() *fakeStore {
	s := newFakeStore()
	s.clients["client-1"] = &entity.Client{ID: "client-1", Name: "Supermarché Mahima"}
	s.merch["merch-1"] = merchInfo{name: "Aline", zone: "Littoral", managerID: "sup-1"}
	s.merch["merch-2"] = merchInfo{name: "Brice", zone: "Centre", managerID: "sup-2"}
	return s
}

func submitVisit(t *testing.T, s *fakeStore, merchProfileID string) string {
	t.Helper()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-"+merchProfileID, merchProfileID, s.merch[merchProfileID].managerID)
	out, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{
		ClientID: "client-1",
		StockReadings: []dto.StockReadingRequest{
			{ProductID: "prod-1", Quantity: 12},
		},
		ProductDetails: []dto.ProductDetailRequest{
			{ProductID: "prod-1", DetailType: entity.DetailTypeOrder, Quantity: 5},
		},
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Soumission
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VisiteEtLignesEnsemble(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")

	v := s.visits[id]
	require.NotNil(t, v)
	assert.Equal(t, entity.VisitStatusSubmitted, v.Status)
	assert.Len(t, v.StockReadings, 1)
	assert.Len(t, v.ProductDetails, 1)
	assert.Len(t, s.logs, 1, "la soumission doit être journalisée")
	assert.Nil(t, v.ValidatorID, "pas de validateur tant que la visite est soumise")
}

func TestCreate_SuperviseurRefuse(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})

	_, err := uc.Create(context.Background(), supervisorActor("user-s1", "sup-1"), dto.VisitCreateRequest{ClientID: "client-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ClientInconnuRefuse(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-m1", "merch-1", "sup-1")

	_, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{ClientID: "client-inexistant"})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestCreate_TypeDetailInvalideRefuse(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-m1", "merch-1", "sup-1")

	_, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{
		ClientID: "client-1",
		ProductDetails: []dto.ProductDetailRequest{
			{ProductID: "prod-1", DetailType: "retour", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Empty(t, s.visits, "aucune visite ne doit être créée")
}

func TestCreate_DateParDefautJourLocal(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-m1", "merch-1", "sup-1")

	localDay := func(ts time.Time) time.Time {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	}
	before := localDay(time.Now())
	out, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{ClientID: "client-1"})
	require.NoError(t, err)
	after := localDay(time.Now())

	// Minuit LOCAL : tôt le matin dans un fuseau UTC+n, une troncature sur le
	// jour UTC daterait la visite d'hier.
	assert.True(t, out.Date.Equal(before) || out.Date.Equal(after),
		"date par défaut attendue %s, obtenue %s", before, out.Date)
}

func TestCreate_DateExplicite(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-m1", "merch-1", "sup-1")

	out, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{
		ClientID: "client-1", Date: "2026-08-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-12", out.Date.Format("2006-01-02"))

	_, err = uc.Create(context.Background(), actor, dto.VisitCreateRequest{
		ClientID: "client-1", Date: "12/08/2026",
	})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestCreate_EchecJournalAnnuleTout(t *testing.T) {
	s := fixture()
	uc := visit.NewCreateVisitUseCase(&fakeTxRunner{s: s, failJournal: true}, &fakeClientRepo{s: s})
	actor := merchandiserActor("user-m1", "merch-1", "sup-1")

	_, err := uc.Create(context.Background(), actor, dto.VisitCreateRequest{ClientID: "client-1"})
	require.Error(t, err)
	assert.Empty(t, s.visits, "l'échec du journal doit annuler la visite")
	assert.Empty(t, s.logs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Décision
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_SuperviseurDeLEquipeValide(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})

	out, err := uc.Decide(context.Background(), supervisorActor("user-s1", "sup-1"), id, entity.VisitStatusValidated)
	require.NoError(t, err)

	assert.Equal(t, entity.VisitStatusValidated, out.Status)
	require.NotNil(t, out.ValidatorID)
	assert.Equal(t, "sup-1", *out.ValidatorID)
	assert.NotNil(t, out.ValidatedAt)
	assert.Len(t, s.logs, 2, "soumission puis décision journalisées")
}

func TestDecide_AutreSuperviseurRefuse(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})

	_, err := uc.Decide(context.Background(), supervisorActor("user-s2", "sup-2"), id, entity.VisitStatusValidated)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.VisitStatusSubmitted, s.visits[id].Status)
}

func TestDecide_AdminRefuse(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})

	// L'administrateur voit tout mais ne décide pas.
	_, err := uc.Decide(context.Background(), adminActor("user-a1"), id, entity.VisitStatusValidated)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDecide_VerdictInvalideRefuse(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})

	_, err := uc.Decide(context.Background(), supervisorActor("user-s1", "sup-1"), id, "soumis")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestDecide_VisiteInconnue(t *testing.T) {
	s := fixture()
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})

	_, err := uc.Decide(context.Background(), supervisorActor("user-s1", "sup-1"), "absente", entity.VisitStatusValidated)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecide_DejaDecideeRefuse(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})
	sup := supervisorActor("user-s1", "sup-1")

	_, err := uc.Decide(context.Background(), sup, id, entity.VisitStatusValidated)
	require.NoError(t, err)

	_, err = uc.Decide(context.Background(), sup, id, entity.VisitStatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.VisitStatusValidated, s.visits[id].Status, "le premier verdict reste")
}

func TestDecide_ConcurrenceUneSeuleGagne(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})
	sup := supervisorActor("user-s1", "sup-1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	outcomes := []string{entity.VisitStatusValidated, entity.VisitStatusRejected}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Decide(context.Background(), sup, id, outcomes[i])
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrInvalidTransition):
			losses++
		default:
			t.Fatalf("erreur inattendue: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactement une décision doit gagner")
	assert.Equal(t, 1, losses)
	assert.NotEqual(t, entity.VisitStatusSubmitted, s.visits[id].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectures scopées
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDetail_HorsPorteeForbidden(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewQueryVisitsUseCase(&fakeVisitRepo{s: s})

	// Un merchandiser d'une autre équipe : la visite existe mais est hors
	// portée. Forbidden, pas NotFound.
	other := merchandiserActor("user-m2", "merch-2", "sup-2")
	_, err := uc.GetDetail(context.Background(), other, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetDetail(context.Background(), other, "absente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDetail_ProprietaireEtManagerOK(t *testing.T) {
	s := fixture()
	id := submitVisit(t, s, "merch-1")
	uc := visit.NewQueryVisitsUseCase(&fakeVisitRepo{s: s})

	owner := merchandiserActor("user-m1", "merch-1", "sup-1")
	out, err := uc.GetDetail(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)

	_, err = uc.GetDetail(context.Background(), supervisorActor("user-s1", "sup-1"), id)
	assert.NoError(t, err)

	_, err = uc.GetDetail(context.Background(), adminActor("user-a1"), id)
	assert.NoError(t, err)
}

func TestListPending_ContenueDansLEquipe(t *testing.T) {
	s := fixture()
	submitVisit(t, s, "merch-1")
	submitVisit(t, s, "merch-2")
	uc := visit.NewQueryVisitsUseCase(&fakeVisitRepo{s: s})

	list, err := uc.ListPending(context.Background(), supervisorActor("user-s1", "sup-1"))
	require.NoError(t, err)
	require.Len(t, list, 1, "seules les visites de l'équipe sont listées")
	assert.Equal(t, "merch-1", list[0].MerchandiserID)

	all, err := uc.ListPending(context.Background(), adminActor("user-a1"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPending_MerchandiserRefuse(t *testing.T) {
	s := fixture()
	uc := visit.NewQueryVisitsUseCase(&fakeVisitRepo{s: s})

	_, err := uc.ListPending(context.Background(), merchandiserActor("user-m1", "merch-1", "sup-1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListHistory_ValideesEtRejetees(t *testing.T) {
	s := fixture()
	id1 := submitVisit(t, s, "merch-1")
	id2 := submitVisit(t, s, "merch-1")
	submitVisit(t, s, "merch-1") // reste soumise

	decideUC := visit.NewDecideVisitUseCase(&fakeTxRunner{s: s}, &fakeVisitRepo{s: s})
	sup := supervisorActor("user-s1", "sup-1")
	_, err := decideUC.Decide(context.Background(), sup, id1, entity.VisitStatusValidated)
	require.NoError(t, err)
	_, err = decideUC.Decide(context.Background(), sup, id2, entity.VisitStatusRejected)
	require.NoError(t, err)

	uc := visit.NewQueryVisitsUseCase(&fakeVisitRepo{s: s})
	list, err := uc.ListHistory(context.Background(), sup)
	require.NoError(t, err)
	assert.Len(t, list, 2, "l'historique contient validées ET rejetées, pas les soumises")
}
