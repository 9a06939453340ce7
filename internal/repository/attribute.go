package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// The five fabric-attribute tables share a lookup shape, so their
// repositories live together here.

// StructureRepository handles structure lookup data operations
type StructureRepository interface {
	Create(ctx context.Context, name string) (*model.Structure, error)
	FindByID(ctx context.Context, id int64) (*model.Structure, error)
	List(ctx context.Context, limit, offset int) ([]model.Structure, int, error)
	Update(ctx context.Context, id int64, name string) (*model.Structure, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountSubstructures(ctx context.Context, structureID int64) (int, error)
}

type structureRepo struct {
	db *sqlx.DB
}

// NewStructureRepository creates a new structure repository
func NewStructureRepository(db *sqlx.DB) StructureRepository {
	return &structureRepo{db: db}
}

func (r *structureRepo) Create(ctx context.Context, name string) (*model.Structure, error) {
	var s model.Structure
	err := r.db.GetContext(ctx, &s, `
		INSERT INTO structures (name) VALUES ($1) RETURNING *
	`, name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *structureRepo) FindByID(ctx context.Context, id int64) (*model.Structure, error) {
	var s model.Structure
	err := r.db.GetContext(ctx, &s, `SELECT * FROM structures WHERE id = $1`, id)
	return HandleNotFound(&s, err)
}

func (r *structureRepo) List(ctx context.Context, limit, offset int) ([]model.Structure, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM structures`); err != nil {
		return nil, 0, err
	}
	var items []model.Structure
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM structures ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, total, err
}

func (r *structureRepo) Update(ctx context.Context, id int64, name string) (*model.Structure, error) {
	var s model.Structure
	err := r.db.GetContext(ctx, &s, `
		UPDATE structures SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING *
	`, id, name)
	return HandleNotFound(&s, err)
}

func (r *structureRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM structures WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *structureRepo) CountSubstructures(ctx context.Context, structureID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM substructures WHERE structure_id = $1
	`, structureID)
	return count, err
}

// SubstructureRepository handles substructure lookup data operations
type SubstructureRepository interface {
	Create(ctx context.Context, name string, structureID int64) (*model.Substructure, error)
	FindByID(ctx context.Context, id int64) (*model.Substructure, error)
	List(ctx context.Context, structureID int64, limit, offset int) ([]model.Substructure, int, error)
	Update(ctx context.Context, id int64, name string, structureID int64) (*model.Substructure, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountProducts(ctx context.Context, substructureID int64) (int, error)
}

type substructureRepo struct {
	db *sqlx.DB
}

// NewSubstructureRepository creates a new substructure repository
func NewSubstructureRepository(db *sqlx.DB) SubstructureRepository {
	return &substructureRepo{db: db}
}

func (r *substructureRepo) Create(ctx context.Context, name string, structureID int64) (*model.Substructure, error) {
	var s model.Substructure
	err := r.db.GetContext(ctx, &s, `
		INSERT INTO substructures (name, structure_id) VALUES ($1, $2) RETURNING *
	`, name, structureID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *substructureRepo) FindByID(ctx context.Context, id int64) (*model.Substructure, error) {
	var s model.Substructure
	err := r.db.GetContext(ctx, &s, `SELECT * FROM substructures WHERE id = $1`, id)
	return HandleNotFound(&s, err)
}

func (r *substructureRepo) List(ctx context.Context, structureID int64, limit, offset int) ([]model.Substructure, int, error) {
	var total int
	var items []model.Substructure
	if structureID > 0 {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM substructures WHERE structure_id = $1`, structureID); err != nil {
			return nil, 0, err
		}
		err := r.db.SelectContext(ctx, &items, `
			SELECT * FROM substructures WHERE structure_id = $1 ORDER BY name LIMIT $2 OFFSET $3
		`, structureID, limit, offset)
		return items, total, err
	}
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM substructures`); err != nil {
		return nil, 0, err
	}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM substructures ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, total, err
}

func (r *substructureRepo) Update(ctx context.Context, id int64, name string, structureID int64) (*model.Substructure, error) {
	var s model.Substructure
	err := r.db.GetContext(ctx, &s, `
		UPDATE substructures SET name = $2, structure_id = $3, updated_at = NOW()
		WHERE id = $1 RETURNING *
	`, id, name, structureID)
	return HandleNotFound(&s, err)
}

func (r *substructureRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM substructures WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *substructureRepo) CountProducts(ctx context.Context, substructureID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM products WHERE substructure_id = $1
	`, substructureID)
	return count, err
}

// SuitableforRepository handles suitablefor lookup data operations
type SuitableforRepository interface {
	Create(ctx context.Context, name string) (*model.Suitablefor, error)
	FindByID(ctx context.Context, id int64) (*model.Suitablefor, error)
	List(ctx context.Context, limit, offset int) ([]model.Suitablefor, int, error)
	Update(ctx context.Context, id int64, name string) (*model.Suitablefor, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountSubsuitables(ctx context.Context, suitableforID int64) (int, error)
}

type suitableforRepo struct {
	db *sqlx.DB
}

// NewSuitableforRepository creates a new suitablefor repository
func NewSuitableforRepository(db *sqlx.DB) SuitableforRepository {
	return &suitableforRepo{db: db}
}

func (r *suitableforRepo) Create(ctx context.Context, name string) (*model.Suitablefor, error) {
	var s model.Suitablefor
	err := r.db.GetContext(ctx, &s, `
		INSERT INTO suitablefors (name) VALUES ($1) RETURNING *
	`, name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *suitableforRepo) FindByID(ctx context.Context, id int64) (*model.Suitablefor, error) {
	var s model.Suitablefor
	err := r.db.GetContext(ctx, &s, `SELECT * FROM suitablefors WHERE id = $1`, id)
	return HandleNotFound(&s, err)
}

func (r *suitableforRepo) List(ctx context.Context, limit, offset int) ([]model.Suitablefor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM suitablefors`); err != nil {
		return nil, 0, err
	}
	var items []model.Suitablefor
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM suitablefors ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, total, err
}

func (r *suitableforRepo) Update(ctx context.Context, id int64, name string) (*model.Suitablefor, error) {
	var s model.Suitablefor
	err := r.db.GetContext(ctx, &s, `
		UPDATE suitablefors SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING *
	`, id, name)
	return HandleNotFound(&s, err)
}

func (r *suitableforRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM suitablefors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *suitableforRepo) CountSubsuitables(ctx context.Context, suitableforID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM subsuitables WHERE suitablefor_id = $1
	`, suitableforID)
	return count, err
}

// SubsuitableRepository handles subsuitable lookup data operations
type SubsuitableRepository interface {
	Create(ctx context.Context, name string, suitableforID int64) (*model.Subsuitable, error)
	FindByID(ctx context.Context, id int64) (*model.Subsuitable, error)
	List(ctx context.Context, suitableforID int64, limit, offset int) ([]model.Subsuitable, int, error)
	Update(ctx context.Context, id int64, name string, suitableforID int64) (*model.Subsuitable, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountProducts(ctx context.Context, subsuitableID int64) (int, error)
}

type subsuitableRepo struct {
	db *sqlx.DB
}

// NewSubsuitableRepository creates a new subsuitable repository
func NewSubsuitableRepository(db *sqlx.DB) SubsuitableRepository {
	return &subsuitableRepo{db: db}
}

func (r *subsuitableRepo) Create(ctx context.Context, name string, suitableforID int64) (*model.Subsuitable, error) {
	var s model.Subsuitable
	err := r.db.GetContext(ctx, &s, `
		INSERT INTO subsuitables (name, suitablefor_id) VALUES ($1, $2) RETURNING *
	`, name, suitableforID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subsuitableRepo) FindByID(ctx context.Context, id int64) (*model.Subsuitable, error) {
	var s model.Subsuitable
	err := r.db.GetContext(ctx, &s, `SELECT * FROM subsuitables WHERE id = $1`, id)
	return HandleNotFound(&s, err)
}

func (r *subsuitableRepo) List(ctx context.Context, suitableforID int64, limit, offset int) ([]model.Subsuitable, int, error) {
	var total int
	var items []model.Subsuitable
	if suitableforID > 0 {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM subsuitables WHERE suitablefor_id = $1`, suitableforID); err != nil {
			return nil, 0, err
		}
		err := r.db.SelectContext(ctx, &items, `
			SELECT * FROM subsuitables WHERE suitablefor_id = $1 ORDER BY name LIMIT $2 OFFSET $3
		`, suitableforID, limit, offset)
		return items, total, err
	}
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM subsuitables`); err != nil {
		return nil, 0, err
	}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM subsuitables ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, total, err
}

func (r *subsuitableRepo) Update(ctx context.Context, id int64, name string, suitableforID int64) (*model.Subsuitable, error) {
	var s model.Subsuitable
	err := r.db.GetContext(ctx, &s, `
		UPDATE subsuitables SET name = $2, suitablefor_id = $3, updated_at = NOW()
		WHERE id = $1 RETURNING *
	`, id, name, suitableforID)
	return HandleNotFound(&s, err)
}

func (r *subsuitableRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subsuitables WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *subsuitableRepo) CountProducts(ctx context.Context, subsuitableID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM products WHERE subsuitable_id = $1
	`, subsuitableID)
	return count, err
}

// GroupcodeRepository handles groupcode lookup data operations
type GroupcodeRepository interface {
	Create(ctx context.Context, name, img, video string) (*model.Groupcode, error)
	FindByID(ctx context.Context, id int64) (*model.Groupcode, error)
	List(ctx context.Context, limit, offset int) ([]model.Groupcode, int, error)
	Update(ctx context.Context, id int64, name, img, video string) (*model.Groupcode, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountProducts(ctx context.Context, groupcodeID int64) (int, error)
}

type groupcodeRepo struct {
	db *sqlx.DB
}

// NewGroupcodeRepository creates a new groupcode repository
func NewGroupcodeRepository(db *sqlx.DB) GroupcodeRepository {
	return &groupcodeRepo{db: db}
}

func (r *groupcodeRepo) Create(ctx context.Context, name, img, video string) (*model.Groupcode, error) {
	var g model.Groupcode
	err := r.db.GetContext(ctx, &g, `
		INSERT INTO groupcodes (name, img, video) VALUES ($1, $2, $3) RETURNING *
	`, name, img, video)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupcodeRepo) FindByID(ctx context.Context, id int64) (*model.Groupcode, error) {
	var g model.Groupcode
	err := r.db.GetContext(ctx, &g, `SELECT * FROM groupcodes WHERE id = $1`, id)
	return HandleNotFound(&g, err)
}

func (r *groupcodeRepo) List(ctx context.Context, limit, offset int) ([]model.Groupcode, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM groupcodes`); err != nil {
		return nil, 0, err
	}
	var items []model.Groupcode
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM groupcodes ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, total, err
}

func (r *groupcodeRepo) Update(ctx context.Context, id int64, name, img, video string) (*model.Groupcode, error) {
	var g model.Groupcode
	err := r.db.GetContext(ctx, &g, `
		UPDATE groupcodes SET name = $2, img = $3, video = $4, updated_at = NOW()
		WHERE id = $1 RETURNING *
	`, id, name, img, video)
	return HandleNotFound(&g, err)
}

func (r *groupcodeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groupcodes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *groupcodeRepo) CountProducts(ctx context.Context, groupcodeID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM products WHERE groupcode_id = $1
	`, groupcodeID)
	return count, err
}
