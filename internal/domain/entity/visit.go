package entity

import "time"

// Statuts de validation d'une visite. soumis est l'état initial ; valide et
// rejete sont terminaux (aucune transition n'en sort).
const (
	VisitStatusSubmitted = "soumis"
	VisitStatusValidated = "valide"
	VisitStatusRejected  = "rejete"
)

// ValidOutcome indique si le statut est un verdict de décision acceptable.
func ValidOutcome(status string) bool {
	return status == VisitStatusValidated || status == VisitStatusRejected
}

// Types de détail produit relevés pendant une visite.
const (
	DetailTypeOrder    = "commande"
	DetailTypeIncident = "incident"
)

// Visit est le sujet du workflow : un passage en magasin avec ses trois
// collections de lignes, créées atomiquement avec elle. Les lignes sont
// immuables après création.
type Visit struct {
	ID             string
	MerchandiserID string
	ClientID       string
	Date           time.Time
	Status         string
	Observations   string
	FIFORespected  bool
	PlanoRespected bool
	ValidatorID    *string    // profil superviseur ayant décidé ; nil tant que soumis
	ValidatedAt    *time.Time // date de la décision ; nil tant que soumis
	CreatedAt      time.Time

	StockReadings  []StockReading
	ProductDetails []ProductDetail
	CompetitorObs  []CompetitorObservation
}

// StockReading relevé de stock d'un produit chez le client.
type StockReading struct {
	ID           string
	VisitID      string
	ProductID    string
	Quantity     int
	OutOfStock   bool
	ShortageKind string
}

// ProductDetail ligne commande ou incident sur un produit.
type ProductDetail struct {
	ID          string
	VisitID     string
	ProductID   string
	DetailType  string // commande ou incident
	Quantity    int
	Observation string
}

// CompetitorObservation veille concurrentielle relevée en rayon.
type CompetitorObservation struct {
	ID           string
	VisitID      string
	CompetitorID string
	Brand        string
	PackCount    int
	Activity     string
	Mechanism    string
}

// VisitSummary projection de liste : la visite avec les informations du
// merchandiser (dont son manager, nécessaire au contrôle de portée) et du
// client, sans les lignes.
type VisitSummary struct {
	ID               string
	Date             time.Time
	Status           string
	ClientID         string
	ClientName       string
	MerchandiserID   string
	MerchandiserName string
	Zone             string
	ManagerID        string
	ValidatorID      *string
	ValidatedAt      *time.Time
}
