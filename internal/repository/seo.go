package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// SeoRepository handles SEO entry data operations
type SeoRepository interface {
	Create(ctx context.Context, params model.CreateSeoEntryParams) (*model.SeoEntry, error)
	FindByID(ctx context.Context, id int64) (*model.SeoEntry, error)
	FindBySlug(ctx context.Context, slug string) (*model.SeoEntry, error)
	List(ctx context.Context, limit, offset int) ([]model.SeoEntry, int, error)
	Update(ctx context.Context, id int64, params model.CreateSeoEntryParams) (*model.SeoEntry, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type seoRepo struct {
	db *sqlx.DB
}

// NewSeoRepository creates a new SEO repository
func NewSeoRepository(db *sqlx.DB) SeoRepository {
	return &seoRepo{db: db}
}

func (r *seoRepo) Create(ctx context.Context, params model.CreateSeoEntryParams) (*model.SeoEntry, error) {
	var entry model.SeoEntry
	err := r.db.GetContext(ctx, &entry, `
		INSERT INTO seo_entries (
			product_id, slug, title, description, keywords, canonical_url,
			og_title, og_description, twitter_title, twitter_description,
			sku, purchase_price, sales_price, popular, top_rated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING *
	`,
		params.ProductID, params.Slug, params.Title, params.Description,
		params.Keywords, params.CanonicalURL, params.OgTitle, params.OgDescription,
		params.TwitterTitle, params.TwitterDescription, params.SKU,
		params.PurchasePrice, params.SalesPrice, params.Popular, params.TopRated,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *seoRepo) FindByID(ctx context.Context, id int64) (*model.SeoEntry, error) {
	var entry model.SeoEntry
	err := r.db.GetContext(ctx, &entry, `SELECT * FROM seo_entries WHERE id = $1`, id)
	return HandleNotFound(&entry, err)
}

func (r *seoRepo) FindBySlug(ctx context.Context, slug string) (*model.SeoEntry, error) {
	var entry model.SeoEntry
	err := r.db.GetContext(ctx, &entry, `SELECT * FROM seo_entries WHERE slug = $1`, slug)
	return HandleNotFound(&entry, err)
}

func (r *seoRepo) List(ctx context.Context, limit, offset int) ([]model.SeoEntry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM seo_entries`); err != nil {
		return nil, 0, err
	}
	var entries []model.SeoEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM seo_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	return entries, total, err
}

func (r *seoRepo) Update(ctx context.Context, id int64, params model.CreateSeoEntryParams) (*model.SeoEntry, error) {
	var entry model.SeoEntry
	err := r.db.GetContext(ctx, &entry, `
		UPDATE seo_entries
		SET product_id = $2, slug = $3, title = $4, description = $5,
		    keywords = $6, canonical_url = $7, og_title = $8, og_description = $9,
		    twitter_title = $10, twitter_description = $11, sku = $12,
		    purchase_price = $13, sales_price = $14, popular = $15, top_rated = $16,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`,
		id, params.ProductID, params.Slug, params.Title, params.Description,
		params.Keywords, params.CanonicalURL, params.OgTitle, params.OgDescription,
		params.TwitterTitle, params.TwitterDescription, params.SKU,
		params.PurchasePrice, params.SalesPrice, params.Popular, params.TopRated,
	)
	return HandleNotFound(&entry, err)
}

func (r *seoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seo_entries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *seoRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM seo_entries WHERE slug = $1 AND id != $2)
	`, slug, excludeID)
	return exists, err
}
