package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// CityRepository handles city data operations
type CityRepository interface {
	Create(ctx context.Context, params model.CreateCityParams) (*model.City, error)
	FindByID(ctx context.Context, id int64) (*model.City, error)
	FindBySlug(ctx context.Context, slug string) (*model.City, error)
	List(ctx context.Context, stateID int64, limit, offset int) ([]model.City, int, error)
	Update(ctx context.Context, id int64, params model.CreateCityParams) (*model.City, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type cityRepo struct {
	db *sqlx.DB
}

// NewCityRepository creates a new city repository
func NewCityRepository(db *sqlx.DB) CityRepository {
	return &cityRepo{db: db}
}

func (r *cityRepo) Create(ctx context.Context, params model.CreateCityParams) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		INSERT INTO cities (name, pincode, country_id, state_id, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Name, params.Pincode, params.CountryID, params.StateID, params.Slug)
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepo) FindByID(ctx context.Context, id int64) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		SELECT * FROM cities WHERE id = $1
	`, id)
	return HandleNotFound(&city, err)
}

func (r *cityRepo) FindBySlug(ctx context.Context, slug string) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		SELECT * FROM cities WHERE slug = $1
	`, slug)
	return HandleNotFound(&city, err)
}

// List returns cities, optionally scoped to one state when stateID > 0.
func (r *cityRepo) List(ctx context.Context, stateID int64, limit, offset int) ([]model.City, int, error) {
	var total int
	var cities []model.City
	var err error

	if stateID > 0 {
		if err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cities WHERE state_id = $1`, stateID); err != nil {
			return nil, 0, err
		}
		err = r.db.SelectContext(ctx, &cities, `
			SELECT * FROM cities WHERE state_id = $1 ORDER BY name LIMIT $2 OFFSET $3
		`, stateID, limit, offset)
		return cities, total, err
	}

	if err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cities`); err != nil {
		return nil, 0, err
	}
	err = r.db.SelectContext(ctx, &cities, `
		SELECT * FROM cities ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return cities, total, err
}

func (r *cityRepo) Update(ctx context.Context, id int64, params model.CreateCityParams) (*model.City, error) {
	var city model.City
	err := r.db.GetContext(ctx, &city, `
		UPDATE cities
		SET name = $2, pincode = $3, country_id = $4, state_id = $5, slug = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Pincode, params.CountryID, params.StateID, params.Slug)
	return HandleNotFound(&city, err)
}

func (r *cityRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *cityRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM cities WHERE slug = $1 AND id != $2)
	`, slug, excludeID)
	return exists, err
}
