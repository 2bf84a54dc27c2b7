package dto

import "time"

// FullUserCreateRequest création complète d'un utilisateur par l'admin : le
// compte et, selon le rôle, le profil métier. role_nom est le nom du rôle ;
// zone_geographique et manager_id sont requis pour un merchandiser.
type FullUserCreateRequest struct {
	Name      string `json:"nom"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	RoleName  string `json:"role_nom"`
	Zone      string `json:"zone_geographique,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
}

// UserUpdateRequest mise à jour partielle d'un utilisateur. Chaque champ est
// optionnel et appliqué par affectation conditionnelle explicite, pas
// d'itération dynamique sur les champs fournis.
type UserUpdateRequest struct {
	Name     *string `json:"nom,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UserResponse représentation publique d'un compte.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nom"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse identité du compte connecté, avec son profil métier selon le
// rôle.
type MeResponse struct {
	UserResponse
	ProfileID string `json:"profil_id,omitempty"`
	Zone      string `json:"zone_geographique,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
}

// SupervisorResponse profil superviseur avec l'identité du compte, pour les
// écrans d'affectation.
type SupervisorResponse struct {
	ProfileID string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"nom"`
	Email     string `json:"email"`
}

// RoleResponse rôle de l'énumération fixe.
type RoleResponse struct {
	Name        string `json:"nom"`
	Description string `json:"description"`
}

// ActivityLogResponse entrée du journal d'activité.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
