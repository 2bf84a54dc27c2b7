package postgres

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedupays/terrain-api/pkg/textutil"
)

// La table translate() doit replier chaque caractère exactement comme
// textutil.Fold replie la requête : toute divergence rend la recherche
// asymétrique et fait rater les noms accentués.
func TestFoldSQL_SymetriqueAvecTextutil(t *testing.T) {
	accented := []rune(foldAccented)
	plain := []rune(foldPlain)
	require.Equal(t, len(accented), len(plain), "les deux tables doivent être alignées position par position")

	for i, r := range accented {
		folded := textutil.Fold(string(r))
		assert.Equal(t, string(plain[i]), folded,
			"le caractère %q doit se replier en %q des deux côtés", r, plain[i])
	}
}

func TestFoldSQL_CaracteresUsuelsCouverts(t *testing.T) {
	// Les accents des noms français courants du domaine (clients, produits,
	// comptes) doivent tous figurer dans la table.
	for _, r := range "marché crème brûlée télé hôtel où ça maïs noël" {
		if r == ' ' || utf8.RuneLen(r) == 1 {
			continue
		}
		assert.Contains(t, foldAccented, string(r), "accent %q absent de la table translate", r)
	}
}

func TestFoldSQL_ExpressionColonne(t *testing.T) {
	expr := foldedColumn("name")
	assert.True(t, strings.HasPrefix(expr, "translate(lower(name)"), "lower() doit passer avant translate(): %s", expr)
	assert.Contains(t, expr, foldAccented)
	assert.Contains(t, expr, foldPlain)
}
