package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// RoleRepository reads the role registry that authorizes admin logins.
type RoleRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
}

type roleRepo struct {
	db *sqlx.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sqlx.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	var role model.Role
	err := r.db.GetContext(ctx, &role, `
		SELECT * FROM roles WHERE email = LOWER($1)
	`, email)
	return HandleNotFound(&role, err)
}

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.SelectContext(ctx, &roles, `
		SELECT * FROM roles ORDER BY email
	`)
	return roles, err
}
