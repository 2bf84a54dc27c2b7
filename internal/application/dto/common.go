package dto

// PageRequest pagination des listings.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applique les valeurs par défaut si Limit/Offset sont à zéro.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse corps d'erreur HTTP : code machine stable + message lisible.
// Jamais de détail interne (stack, schéma de stockage).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
