package visit

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

// TxRunner exécute fn dans une transaction : les repositories passés au
// callback sont liés à la transaction, et tout est committé ou annulé en bloc.
// C'est la frontière d'unité de travail du workflow : l'écriture du journal
// d'activité en fait partie, donc un échec du journal annule aussi la
// mutation déclenchante.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		visits repository.VisitRepository,
		activity repository.ActivityRepository,
	) error) error
}
