package domain

import "errors"

// Erreurs de domaine (sans dépendances externes). Chaque erreur correspond à un
// code stable côté API ; la couche HTTP fait la traduction en statut + message.
var (
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
	ErrNotFound           = errors.New("ressource introuvable")
	ErrForbidden          = errors.New("accès refusé")
	ErrInvalidTransition  = errors.New("transition de statut invalide")
	ErrValidationFailed   = errors.New("données invalides")
	ErrConflict           = errors.New("conflit avec l'état actuel")
)
