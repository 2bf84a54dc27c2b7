package postgres

import (
	"fmt"

	"github.com/sourcedupays/terrain-api/internal/domain/policy"
)

// scopePredicate traduit une portée en fragment SQL et ses arguments.
// Les requêtes sur les visites utilisent toutes les alias v (visits) et
// m (merchandiser_profiles) ; le fragment s'insère dans leur WHERE.
//
// Listings et agrégations passent par ce même helper : la portée est un
// prédicat obligatoire, l'écrire deux fois finirait par diverger.
func scopePredicate(scope policy.Scope, argIndex int) (string, []any) {
	switch scope.Kind {
	case policy.ScopeTeam:
		return fmt.Sprintf("m.manager_id = $%d", argIndex), []any{scope.SupervisorID}
	case policy.ScopeOwn:
		return fmt.Sprintf("v.merchandiser_id = $%d", argIndex), []any{scope.MerchandiserID}
	}
	return "TRUE", nil
}
