package repository

import (
	"context"
	"time"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
)

// VisitRepository port de persistance des visites. Create insère la visite et
// ses trois collections de lignes ; appelé via TxRunner pour que tout commit
// ou rien. Les lectures scopées reçoivent la portée policy.Scope et DOIVENT
// l'appliquer comme prédicat obligatoire.
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error

	// GetByID charge la visite complète avec ses lignes et les métadonnées du
	// merchandiser (dont le manager). (nil, nil) si absente.
	GetByID(ctx context.Context, id string) (*entity.Visit, error)

	// GetSummary charge la projection de liste d'une seule visite.
	GetSummary(ctx context.Context, id string) (*entity.VisitSummary, error)

	// ListByStatus liste les visites d'un statut donné dans la portée.
	ListByStatus(ctx context.Context, scope policy.Scope, status string) ([]*entity.VisitSummary, error)

	// ListHistory liste les visites décidées (validées et rejetées) dans la
	// portée, les plus récentes d'abord.
	ListHistory(ctx context.Context, scope policy.Scope) ([]*entity.VisitSummary, error)

	// ListRecent liste les dernières visites d'un merchandiser.
	ListRecent(ctx context.Context, merchandiserID string, limit int) ([]*entity.VisitSummary, error)

	// MarkDecided applique la transition soumis → outcome par une mise à jour
	// conditionnelle : elle ne touche la ligne que si le statut courant est
	// encore "soumis". Retourne false si la garde a échoué (déjà décidée) ;
	// c'est ce qui départage deux décisions concurrentes.
	MarkDecided(ctx context.Context, visitID, outcome, validatorID string, decidedAt time.Time) (bool, error)
}
