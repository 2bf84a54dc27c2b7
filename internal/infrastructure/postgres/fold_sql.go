package postgres

// Normalisation des colonnes de recherche côté SQL, symétrique de
// textutil.Fold côté requête : minuscules puis suppression des diacritiques.
// Les deux chaînes sont alignées position par position ; lower() passe avant
// translate(), donc seules les formes minuscules sont listées.
const (
	foldAccented = "àâäéèêëîïôöùûüÿç"
	foldPlain    = "aaaeeeeiioouuuyc"
)

// foldedColumn retourne l'expression SQL qui replie une colonne exactement
// comme l'appelant replie la requête. Les recherches comparent donc deux
// chaînes normalisées, jamais une normalisée contre une accentuée.
func foldedColumn(col string) string {
	return "translate(lower(" + col + "), '" + foldAccented + "', '" + foldPlain + "')"
}
