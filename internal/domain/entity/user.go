package entity

import "time"

// Rôles valides pour User. La hiérarchie est fixe : un Superviseur encadre des
// Merchandisers, un Administrateur gère le système.
const (
	RoleAdministrateur = "Administrateur"
	RoleSuperviseur    = "Superviseur"
	RoleMerchandiser   = "Merchandiser"
)

// ValidRole indique si le nom de rôle fait partie de l'énumération.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrateur, RoleSuperviseur, RoleMerchandiser:
		return true
	}
	return false
}

// User représente un compte du système. Exactement un rôle par utilisateur ;
// le profil métier associé dépend du rôle (voir Actor).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Role         string // Administrateur, Superviseur, Merchandiser
	IsActive     bool
	CreatedAt    time.Time
}

// SupervisorProfile identifie un noeud d'encadrement : zéro ou plusieurs
// merchandisers ont ce profil comme manager.
type SupervisorProfile struct {
	ID     string
	UserID string
}

// MerchandiserProfile appartient à exactement un superviseur (ManagerID) et
// porte la zone géographique d'opération.
type MerchandiserProfile struct {
	ID        string
	UserID    string
	Zone      string
	ManagerID string
}

// Actor est une identité résolue : l'utilisateur avec son rôle et, selon le
// rôle, son profil superviseur ou merchandiser chargé d'avance. Toute décision
// d'autorisation se prend sur un Actor complet, jamais de chargement paresseux
// au milieu d'un contrôle.
type Actor struct {
	User         User
	Supervisor   *SupervisorProfile
	Merchandiser *MerchandiserProfile
}

// IsAdmin indique si l'acteur est administrateur.
func (a *Actor) IsAdmin() bool { return a.User.Role == RoleAdministrateur }
