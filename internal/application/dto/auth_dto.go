package dto

// LoginRequest identifiants de connexion.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token signé + rôle, même forme que l'ancien endpoint /token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    string `json:"user_role"`
}
