package repository

import (
	"context"

	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

// ClientRepository port de persistance des points de vente. Search reçoit une
// requête déjà repliée (minuscules, sans accents) et doit replier les colonnes
// comparées de la même façon : la comparaison se fait entre formes normalisées
// des deux côtés.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	Search(ctx context.Context, query string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository port de persistance du catalogue. Même contrat de
// recherche repliée que ClientRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository port de persistance des catégories produit (nom unique).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.ProductCategory) error
	List(ctx context.Context) ([]*entity.ProductCategory, error)
}

// CompetitorRepository port de persistance des concurrents suivis (nom unique).
type CompetitorRepository interface {
	Create(ctx context.Context, competitor *entity.Competitor) error
	GetByName(ctx context.Context, name string) (*entity.Competitor, error)
	List(ctx context.Context) ([]*entity.Competitor, error)
}
