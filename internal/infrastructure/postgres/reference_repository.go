package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository     = (*ClientRepo)(nil)
	_ repository.ProductRepository    = (*ProductRepo)(nil)
	_ repository.CategoryRepository   = (*CategoryRepo)(nil)
	_ repository.CompetitorRepository = (*CompetitorRepo)(nil)
)

// ClientRepo implémentation du port ClientRepository sur PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, contact, typology, location, creator_id, created_at`

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, contact, typology, location, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.Name, client.Contact, client.Typology, client.Location,
		client.CreatorID, client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Contact, &c.Typology, &c.Location, &c.CreatorID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	return r.queryClients(ctx, query, limit, offset)
}

// Search compare la requête (déjà repliée par l'appelant) aux colonnes
// repliées de la même façon, pour que "Marché" trouve "Douala Marché Central".
func (r *ClientRepo) Search(ctx context.Context, query string) ([]*entity.Client, error) {
	sql := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE ` + foldedColumn("name") + ` LIKE '%' || $1 || '%'
		   OR ` + foldedColumn("contact") + ` LIKE '%' || $1 || '%'
		ORDER BY name`
	return r.queryClients(ctx, sql, query)
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `UPDATE clients SET name = $2, contact = $3, typology = $4, location = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, client.ID, client.Name, client.Contact, client.Typology, client.Location)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepo) queryClients(ctx context.Context, sql string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Typology, &c.Location, &c.CreatorID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ProductRepo implémentation du port ProductRepository sur PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products (id, name, brand, category_id) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, product.ID, product.Name, product.Brand, product.CategoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx,
		`SELECT id, name, brand, category_id FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Brand, &p.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT id, name, brand, category_id FROM products ORDER BY name LIMIT $1 OFFSET $2`
	return r.queryProducts(ctx, query, limit, offset)
}

// Search compare la requête repliée aux colonnes repliées (voir ClientRepo).
func (r *ProductRepo) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	sql := `
		SELECT id, name, brand, category_id
		FROM products
		WHERE ` + foldedColumn("name") + ` LIKE '%' || $1 || '%'
		   OR ` + foldedColumn("brand") + ` LIKE '%' || $1 || '%'
		ORDER BY name`
	return r.queryProducts(ctx, sql, query)
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET name = $2, brand = $3, category_id = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, product.ID, product.Name, product.Brand, product.CategoryID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CategoryRepo implémentation du port CategoryRepository sur PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.ProductCategory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.ProductCategory, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM product_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductCategory
	for rows.Next() {
		var c entity.ProductCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CompetitorRepo implémentation du port CompetitorRepository sur PostgreSQL.
type CompetitorRepo struct {
	q Querier
}

// NewCompetitorRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCompetitorRepository(q Querier) *CompetitorRepo {
	return &CompetitorRepo{q: q}
}

func (r *CompetitorRepo) Create(ctx context.Context, competitor *entity.Competitor) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO competitors (id, name) VALUES ($1, $2)`,
		competitor.ID, competitor.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert competitor: %w", err)
	}
	return nil
}

func (r *CompetitorRepo) GetByName(ctx context.Context, name string) (*entity.Competitor, error) {
	var c entity.Competitor
	err := r.q.QueryRow(ctx,
		`SELECT id, name FROM competitors WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get competitor by name: %w", err)
	}
	return &c, nil
}

func (r *CompetitorRepo) List(ctx context.Context) ([]*entity.Competitor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM competitors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Competitor
	for rows.Next() {
		var c entity.Competitor
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan competitor: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
