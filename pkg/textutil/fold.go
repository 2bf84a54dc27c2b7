// Package textutil fournit la normalisation de texte pour la recherche :
// les noms de clients et de produits sont accentués (français), les requêtes
// des utilisateurs rarement.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // supprime les marques combinantes (accents)
	norm.NFC,
)

// Fold retire les diacritiques et passe en minuscules : "Crème Brûlée" →
// "creme brulee". En cas d'échec de transformation, retourne l'entrée en
// minuscules.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
