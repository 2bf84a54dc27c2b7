package dto

// ClientCreateRequest création d'un point de vente.
type ClientCreateRequest struct {
	Name     string `json:"nom_client"`
	Contact  string `json:"contact"`
	Typology string `json:"typologie"`
	Location string `json:"localisation"`
}

// ClientUpdateRequest mise à jour partielle d'un point de vente ; champs
// optionnels, appliqués par affectation conditionnelle explicite.
type ClientUpdateRequest struct {
	Name     *string `json:"nom_client,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Typology *string `json:"typologie,omitempty"`
	Location *string `json:"localisation,omitempty"`
}

// ClientResponse point de vente.
type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nom_client"`
	Contact  string `json:"contact"`
	Typology string `json:"typologie"`
	Location string `json:"localisation"`
}

// ProductCreateRequest création d'un produit du catalogue.
type ProductCreateRequest struct {
	Name       string `json:"nom_produit"`
	Brand      string `json:"marque"`
	CategoryID string `json:"categorie_id"`
}

// ProductUpdateRequest mise à jour partielle d'un produit.
type ProductUpdateRequest struct {
	Name       *string `json:"nom_produit,omitempty"`
	Brand      *string `json:"marque,omitempty"`
	CategoryID *string `json:"categorie_id,omitempty"`
}

// ProductResponse produit du catalogue.
type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"nom_produit"`
	Brand      string `json:"marque"`
	CategoryID string `json:"categorie_id"`
}

// CategoryCreateRequest création d'une catégorie produit (nom unique).
type CategoryCreateRequest struct {
	Name string `json:"nom"`
}

// CategoryResponse catégorie produit.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"nom"`
}

// CompetitorCreateRequest création d'un concurrent suivi (nom unique).
type CompetitorCreateRequest struct {
	Name string `json:"nom"`
}

// CompetitorResponse concurrent suivi en veille.
type CompetitorResponse struct {
	ID   string `json:"id"`
	Name string `json:"nom"`
}
