// Package policy centralise les décisions d'autorisation du workflow.
//
// Toutes les fonctions sont pures : elles ne regardent que l'acteur résolu et
// les métadonnées de la ressource, sans accès au stockage. C'est ce qui rend
// chaque décision testable isolément et empêche les fuites de portée où un
// listing oublierait le filtre manager.
package policy

import (
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

// ScopeKind discrimine la portée de lecture des visites.
type ScopeKind int

const (
	// ScopeAll : toutes les visites du système (administrateur).
	ScopeAll ScopeKind = iota
	// ScopeTeam : visites dont le merchandiser est encadré par SupervisorID.
	ScopeTeam
	// ScopeOwn : uniquement les visites de MerchandiserID.
	ScopeOwn
)

// Scope est la portée de lecture calculée pour un acteur. Elle doit être
// appliquée comme prédicat obligatoire par toute requête de lecture ou
// d'agrégation, jamais comme filtre optionnel.
type Scope struct {
	Kind           ScopeKind
	SupervisorID   string
	MerchandiserID string
}

// Allows indique si une visite donnée (son merchandiser et le manager de
// celui-ci) est dans la portée.
func (s Scope) Allows(merchandiserID, managerID string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeTeam:
		return managerID == s.SupervisorID
	case ScopeOwn:
		return merchandiserID == s.MerchandiserID
	}
	return false
}

// CanManageSystem : mutation des données de référence, gestion des
// utilisateurs et rapports non restreints. Administrateur uniquement.
func CanManageSystem(actor *entity.Actor) bool {
	return actor != nil && actor.User.Role == entity.RoleAdministrateur
}

// ScopeForVisitRead calcule la portée de lecture de l'acteur. Un acteur sans
// rôle exploitable (profil manquant pour son rôle) est refusé plutôt que
// silencieusement restreint.
func ScopeForVisitRead(actor *entity.Actor) (Scope, error) {
	if actor == nil {
		return Scope{}, domain.ErrForbidden
	}
	switch {
	case actor.User.Role == entity.RoleAdministrateur:
		return Scope{Kind: ScopeAll}, nil
	case actor.Supervisor != nil:
		return Scope{Kind: ScopeTeam, SupervisorID: actor.Supervisor.ID}, nil
	case actor.Merchandiser != nil:
		return Scope{Kind: ScopeOwn, MerchandiserID: actor.Merchandiser.ID}, nil
	}
	return Scope{}, domain.ErrForbidden
}

// CanReadTeam indique si l'acteur peut lancer des lectures d'équipe ou
// système (listes en attente, historique, exports). Un merchandiser est
// refusé explicitement : il doit passer par les lectures "own".
func CanReadTeam(actor *entity.Actor) bool {
	if actor == nil {
		return false
	}
	return actor.User.Role == entity.RoleAdministrateur || actor.Supervisor != nil
}

// CanSubmitVisit : seul un porteur de profil merchandiser crée des visites.
func CanSubmitVisit(actor *entity.Actor) bool {
	return actor != nil && actor.Merchandiser != nil
}

// CanDecideVisit : valider ou rejeter exige le profil superviseur ET que le
// merchandiser de la visite soit encadré par ce superviseur. L'administrateur
// voit tout mais ne décide pas : un contournement admin serait une capacité
// accordée explicitement, pas implicite.
func CanDecideVisit(actor *entity.Actor, visitManagerID string) bool {
	if actor == nil || actor.Supervisor == nil {
		return false
	}
	return actor.Supervisor.ID == visitManagerID
}

// CanDeleteUser : administrateur uniquement, et jamais son propre compte.
func CanDeleteUser(actor *entity.Actor, targetUserID string) bool {
	if !CanManageSystem(actor) {
		return false
	}
	return targetUserID != actor.User.ID
}

// CheckAssignableRole applique la garde anti-élévation : aucune opération de
// création ne peut produire un compte Administrateur, quel que soit l'appelant.
func CheckAssignableRole(roleName string) error {
	if !entity.ValidRole(roleName) {
		return domain.ErrValidationFailed
	}
	if roleName == entity.RoleAdministrateur {
		return domain.ErrValidationFailed
	}
	return nil
}
