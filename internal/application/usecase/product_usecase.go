package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/policy"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
	"github.com/sourcedupays/terrain-api/pkg/textutil"
)

// ProductUseCase catalogue maison : produits et catégories. Lecture ouverte,
// mutation admin.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create crée un produit (admin).
func (uc *ProductUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.ProductCreateRequest) (*dto.ProductResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrValidationFailed
	}
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Brand:      in.Brand,
		CategoryID: in.CategoryID,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update mise à jour partielle explicite (admin).
func (uc *ProductUseCase) Update(ctx context.Context, actor *entity.Actor, productID string, in dto.ProductUpdateRequest) (*dto.ProductResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrValidationFailed
		}
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			return nil, domain.ErrValidationFailed
		}
		product.CategoryID = *in.CategoryID
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete supprime un produit (admin).
func (uc *ProductUseCase) Delete(ctx context.Context, actor *entity.Actor, productID string) error {
	if !policy.CanManageSystem(actor) {
		return domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ctx, productID)
}

// List liste le catalogue.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Search recherche par nom ou marque, insensible aux accents.
func (uc *ProductUseCase) Search(ctx context.Context, query string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.Search(ctx, textutil.Fold(query))
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// CreateCategory crée une catégorie au nom unique (admin). Un doublon de nom
// remonte en ErrConflict depuis la contrainte d'unicité.
func (uc *ProductUseCase) CreateCategory(ctx context.Context, actor *entity.Actor, in dto.CategoryCreateRequest) (*dto.CategoryResponse, error) {
	if !policy.CanManageSystem(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrValidationFailed
	}
	category := &entity.ProductCategory{
		ID:   uuid.New().String(),
		Name: in.Name,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}, nil
}

// ListCategories liste les catégories.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		CategoryID: p.CategoryID,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out
}
