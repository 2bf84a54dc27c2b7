package dto

import "time"

// StockReadingRequest relevé de stock d'une visite en création.
type StockReadingRequest struct {
	ProductID    string `json:"produit_id"`
	Quantity     int    `json:"quantite_en_stock"`
	OutOfStock   bool   `json:"est_en_rupture"`
	ShortageKind string `json:"type_rupture"`
}

// ProductDetailRequest ligne commande ou incident d'une visite en création.
type ProductDetailRequest struct {
	ProductID   string `json:"produit_id"`
	DetailType  string `json:"type_detail"` // commande ou incident
	Quantity    int    `json:"quantite"`
	Observation string `json:"observation"`
}

// CompetitorObsRequest veille concurrentielle d'une visite en création.
type CompetitorObsRequest struct {
	CompetitorID string `json:"concurrent_id"`
	Brand        string `json:"marque"`
	PackCount    int    `json:"nombre_packs"`
	Activity     string `json:"activite_observee"`
	Mechanism    string `json:"mecanisme"`
}

// VisitCreateRequest payload de soumission d'une visite. La date par défaut
// est celle du jour si absente (format 2006-01-02).
type VisitCreateRequest struct {
	ClientID       string                 `json:"client_id"`
	Date           string                 `json:"date_visite,omitempty"`
	Observations   string                 `json:"observations_generales"`
	FIFORespected  bool                   `json:"fifo_respecte"`
	PlanoRespected bool                   `json:"planogramme_respecte"`
	StockReadings  []StockReadingRequest  `json:"releves_stock"`
	ProductDetails []ProductDetailRequest `json:"details_produits"`
	CompetitorObs  []CompetitorObsRequest `json:"veilles_concurrentielles"`
}

// VisitSummaryResponse projection de liste d'une visite.
type VisitSummaryResponse struct {
	ID               string     `json:"id"`
	Date             time.Time  `json:"date_visite"`
	Status           string     `json:"statut_validation"`
	ClientID         string     `json:"client_id"`
	ClientName       string     `json:"nom_client"`
	MerchandiserID   string     `json:"merchandiser_id"`
	MerchandiserName string     `json:"nom_merchandiser"`
	Zone             string     `json:"zone_geographique"`
	ValidatorID      *string    `json:"validateur_id,omitempty"`
	ValidatedAt      *time.Time `json:"date_validation,omitempty"`
}

// StockReadingResponse relevé de stock persisté.
type StockReadingResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"produit_id"`
	Quantity     int    `json:"quantite_en_stock"`
	OutOfStock   bool   `json:"est_en_rupture"`
	ShortageKind string `json:"type_rupture"`
}

// ProductDetailResponse ligne commande/incident persistée.
type ProductDetailResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"produit_id"`
	DetailType  string `json:"type_detail"`
	Quantity    int    `json:"quantite"`
	Observation string `json:"observation"`
}

// CompetitorObsResponse veille concurrentielle persistée.
type CompetitorObsResponse struct {
	ID           string `json:"id"`
	CompetitorID string `json:"concurrent_id"`
	Brand        string `json:"marque"`
	PackCount    int    `json:"nombre_packs"`
	Activity     string `json:"activite_observee"`
	Mechanism    string `json:"mecanisme"`
}

// VisitDetailResponse visite complète avec ses trois collections de lignes.
type VisitDetailResponse struct {
	ID             string                  `json:"id"`
	MerchandiserID string                  `json:"merchandiser_id"`
	ClientID       string                  `json:"client_id"`
	Date           time.Time               `json:"date_visite"`
	Status         string                  `json:"statut_validation"`
	Observations   string                  `json:"observations_generales"`
	FIFORespected  bool                    `json:"fifo_respecte"`
	PlanoRespected bool                    `json:"planogramme_respecte"`
	ValidatorID    *string                 `json:"validateur_id,omitempty"`
	ValidatedAt    *time.Time              `json:"date_validation,omitempty"`
	StockReadings  []StockReadingResponse  `json:"releves_stock"`
	ProductDetails []ProductDetailResponse `json:"details_produits"`
	CompetitorObs  []CompetitorObsResponse `json:"veilles_concurrentielles"`
}

// DecideRequest verdict d'un superviseur sur une visite soumise.
type DecideRequest struct {
	Outcome string `json:"statut"` // valide ou rejete
}
