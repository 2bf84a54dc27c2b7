package entity

import "time"

// Client point de vente visité par les merchandisers.
type Client struct {
	ID        string
	Name      string
	Contact   string
	Typology  string
	Location  string
	CreatorID *string // utilisateur ayant créé la fiche, si connu
	CreatedAt time.Time
}

// ProductCategory catégorie du catalogue, nom unique.
type ProductCategory struct {
	ID   string
	Name string
}

// Product référence du catalogue maison.
type Product struct {
	ID         string
	Name       string
	Brand      string
	CategoryID string
}

// Competitor marque concurrente suivie en veille, nom unique.
type Competitor struct {
	ID   string
	Name string
}
