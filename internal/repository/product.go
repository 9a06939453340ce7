package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// ProductRepository handles product data operations
type ProductRepository interface {
	Create(ctx context.Context, params model.CreateProductParams) (*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, limit, offset int) ([]model.Product, int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Product, int, error)
	Update(ctx context.Context, id int64, params model.CreateProductParams) (*model.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CountSeoEntries(ctx context.Context, productID int64) (int, error)
}

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, params model.CreateProductParams) (*model.Product, error) {
	var p model.Product
	err := r.db.GetContext(ctx, &p, `
		INSERT INTO products (
			name, slug, img, video,
			substructure_id, subsuitable_id, groupcode_id,
			unit, currency, gsm, oz, quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *
	`,
		params.Name, params.Slug, params.Img, params.Video,
		params.SubstructureID, params.SubsuitableID, params.GroupcodeID,
		params.Unit, params.Currency, params.GSM, params.Oz, params.Quantity,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	return HandleNotFound(&p, err)
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	err := r.db.GetContext(ctx, &p, `SELECT * FROM products WHERE slug = $1`, slug)
	return HandleNotFound(&p, err)
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}
	var products []model.Product
	err := r.db.SelectContext(ctx, &products, `
		SELECT * FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	return products, total, err
}

func (r *productRepo) Search(ctx context.Context, query string, limit, offset int) ([]model.Product, int, error) {
	pattern := "%" + query + "%"
	var total int
	if err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM products WHERE name ILIKE $1
	`, pattern); err != nil {
		return nil, 0, err
	}
	var products []model.Product
	err := r.db.SelectContext(ctx, &products, `
		SELECT * FROM products WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, id int64, params model.CreateProductParams) (*model.Product, error) {
	var p model.Product
	err := r.db.GetContext(ctx, &p, `
		UPDATE products
		SET name = $2, slug = $3, img = $4, video = $5,
		    substructure_id = $6, subsuitable_id = $7, groupcode_id = $8,
		    unit = $9, currency = $10, gsm = $11, oz = $12, quantity = $13,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`,
		id, params.Name, params.Slug, params.Img, params.Video,
		params.SubstructureID, params.SubsuitableID, params.GroupcodeID,
		params.Unit, params.Currency, params.GSM, params.Oz, params.Quantity,
	)
	return HandleNotFound(&p, err)
}

func (r *productRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *productRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1 AND id != $2)
	`, slug, excludeID)
	return exists, err
}

func (r *productRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE LOWER(name) = LOWER($1) AND id != $2)
	`, name, excludeID)
	return exists, err
}

func (r *productRepo) CountSeoEntries(ctx context.Context, productID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM seo_entries WHERE product_id = $1
	`, productID)
	return count, err
}
