package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// CountryRepository handles country data operations
type CountryRepository interface {
	Create(ctx context.Context, params model.CreateCountryParams) (*model.Country, error)
	FindByID(ctx context.Context, id int64) (*model.Country, error)
	FindBySlug(ctx context.Context, slug string) (*model.Country, error)
	List(ctx context.Context, limit, offset int) ([]model.Country, int, error)
	Update(ctx context.Context, id int64, name, code, slug string) (*model.Country, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	CountStates(ctx context.Context, countryID int64) (int, error)
}

type countryRepo struct {
	db *sqlx.DB
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *sqlx.DB) CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) Create(ctx context.Context, params model.CreateCountryParams) (*model.Country, error) {
	var country model.Country
	err := r.db.GetContext(ctx, &country, `
		INSERT INTO countries (name, code, slug)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Name, params.Code, params.Slug)
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepo) FindByID(ctx context.Context, id int64) (*model.Country, error) {
	var country model.Country
	err := r.db.GetContext(ctx, &country, `
		SELECT * FROM countries WHERE id = $1
	`, id)
	return HandleNotFound(&country, err)
}

func (r *countryRepo) FindBySlug(ctx context.Context, slug string) (*model.Country, error) {
	var country model.Country
	err := r.db.GetContext(ctx, &country, `
		SELECT * FROM countries WHERE slug = $1
	`, slug)
	return HandleNotFound(&country, err)
}

func (r *countryRepo) List(ctx context.Context, limit, offset int) ([]model.Country, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM countries`); err != nil {
		return nil, 0, err
	}

	var countries []model.Country
	err := r.db.SelectContext(ctx, &countries, `
		SELECT * FROM countries
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return countries, total, err
}

func (r *countryRepo) Update(ctx context.Context, id int64, name, code, slug string) (*model.Country, error) {
	var country model.Country
	err := r.db.GetContext(ctx, &country, `
		UPDATE countries
		SET name = $2, code = $3, slug = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, name, code, slug)
	return HandleNotFound(&country, err)
}

func (r *countryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *countryRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM countries WHERE slug = $1 AND id != $2)
	`, slug, excludeID)
	return exists, err
}

// CountStates reports how many states reference the country, used to block
// deletion of a country that still has children.
func (r *countryRepo) CountStates(ctx context.Context, countryID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM states WHERE country_id = $1
	`, countryID)
	return count, err
}
