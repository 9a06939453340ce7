package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// StateRepository handles state data operations
type StateRepository interface {
	Create(ctx context.Context, params model.CreateStateParams) (*model.State, error)
	FindByID(ctx context.Context, id int64) (*model.State, error)
	FindBySlug(ctx context.Context, slug string) (*model.State, error)
	List(ctx context.Context, countryID int64, limit, offset int) ([]model.State, int, error)
	Update(ctx context.Context, id int64, params model.CreateStateParams) (*model.State, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	NameExistsInCountry(ctx context.Context, name string, countryID, excludeID int64) (bool, error)
	CountCities(ctx context.Context, stateID int64) (int, error)
}

type stateRepo struct {
	db *sqlx.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepo{db: db}
}

func (r *stateRepo) Create(ctx context.Context, params model.CreateStateParams) (*model.State, error) {
	var state model.State
	err := r.db.GetContext(ctx, &state, `
		INSERT INTO states (name, code, country_id, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Name, params.Code, params.CountryID, params.Slug)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *stateRepo) FindByID(ctx context.Context, id int64) (*model.State, error) {
	var state model.State
	err := r.db.GetContext(ctx, &state, `
		SELECT * FROM states WHERE id = $1
	`, id)
	return HandleNotFound(&state, err)
}

func (r *stateRepo) FindBySlug(ctx context.Context, slug string) (*model.State, error) {
	var state model.State
	err := r.db.GetContext(ctx, &state, `
		SELECT * FROM states WHERE slug = $1
	`, slug)
	return HandleNotFound(&state, err)
}

// List returns states, optionally scoped to one country when countryID > 0.
func (r *stateRepo) List(ctx context.Context, countryID int64, limit, offset int) ([]model.State, int, error) {
	where := ``
	countArgs := []any{}
	listArgs := []any{limit, offset}
	if countryID > 0 {
		where = `WHERE country_id = $1`
		countArgs = []any{countryID}
		listArgs = []any{countryID, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM states `+where, countArgs...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM states ORDER BY name LIMIT $1 OFFSET $2`
	if countryID > 0 {
		query = `SELECT * FROM states WHERE country_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	}

	var states []model.State
	err := r.db.SelectContext(ctx, &states, query, listArgs...)
	return states, total, err
}

func (r *stateRepo) Update(ctx context.Context, id int64, params model.CreateStateParams) (*model.State, error) {
	var state model.State
	err := r.db.GetContext(ctx, &state, `
		UPDATE states
		SET name = $2, code = $3, country_id = $4, slug = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Code, params.CountryID, params.Slug)
	return HandleNotFound(&state, err)
}

func (r *stateRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM states WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *stateRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM states WHERE slug = $1 AND id != $2)
	`, slug, excludeID)
	return exists, err
}

// NameExistsInCountry checks the per-country name uniqueness rule. Two states
// may share a name across countries but not within one.
func (r *stateRepo) NameExistsInCountry(ctx context.Context, name string, countryID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM states
			WHERE LOWER(name) = LOWER($1) AND country_id = $2 AND id != $3
		)
	`, name, countryID, excludeID)
	return exists, err
}

func (r *stateRepo) CountCities(ctx context.Context, stateID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM cities WHERE state_id = $1
	`, stateID)
	return count, err
}
