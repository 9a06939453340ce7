package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/texlane/catalog-server-go/internal/model"
)

// AdminRepository handles admin account data operations
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	ListByEmails(ctx context.Context, emails []string) ([]model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	UpsertOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, email string) error
	ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*model.Admin, error)
	SetLoggedOut(ctx context.Context, email string) error
	UpdatePermissions(ctx context.Context, email string, canAccessProduct, canAccessFilter *bool) (*model.Admin, error)
	ClearExpiredOTPs(ctx context.Context) (int64, error)
	ExpireStaleSessions(ctx context.Context, window time.Duration) (int64, error)
}

type adminRepo struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM admins WHERE email = LOWER($1)
	`, email)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) ListByEmails(ctx context.Context, emails []string) ([]model.Admin, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM admins WHERE email IN (?)`, emails)
	if err != nil {
		return nil, err
	}
	var admins []model.Admin
	err = r.db.SelectContext(ctx, &admins, r.db.Rebind(query), args...)
	return admins, err
}

func (r *adminRepo) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.SelectContext(ctx, &admins, `
		SELECT * FROM admins ORDER BY email
	`)
	return admins, err
}

// UpsertOTP lazily creates the admin record on first OTP request and
// overwrites any prior pending code, so at most one code is live per email.
func (r *adminRepo) UpsertOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (email, otp, otp_expires_at)
		VALUES (LOWER($1), $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET otp = EXCLUDED.otp, otp_expires_at = EXCLUDED.otp_expires_at, updated_at = NOW()
	`, email, otp, expiresAt)
	return err
}

func (r *adminRepo) ClearOTP(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET otp = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE email = LOWER($1)
	`, email)
	return err
}

// ConsumeOTP atomically validates and spends a code: the row is updated only
// when the stored code matches and is unexpired, making the code single-use
// even under concurrent verification attempts. Returns nil when no row
// qualified.
func (r *adminRepo) ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		UPDATE admins
		SET otp = NULL, otp_expires_at = NULL,
		    is_logged_in = TRUE, last_login_at = $3, updated_at = NOW()
		WHERE email = LOWER($1) AND otp = $2 AND otp_expires_at > $3
		RETURNING *
	`, email, otp, now)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) SetLoggedOut(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET is_logged_in = FALSE, updated_at = NOW()
		WHERE email = LOWER($1)
	`, email)
	return err
}

func (r *adminRepo) UpdatePermissions(ctx context.Context, email string, canAccessProduct, canAccessFilter *bool) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		UPDATE admins
		SET can_access_product = COALESCE($2, can_access_product),
		    can_access_filter = COALESCE($3, can_access_filter),
		    updated_at = NOW()
		WHERE email = LOWER($1)
		RETURNING *
	`, email, canAccessProduct, canAccessFilter)
	return HandleNotFound(&admin, err)
}

// ClearExpiredOTPs drops codes whose expiry has passed.
func (r *adminRepo) ClearExpiredOTPs(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET otp = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE otp IS NOT NULL AND otp_expires_at < NOW()
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ExpireStaleSessions flips is_logged_in off for sessions past the window,
// complementing the lazy expiry check in the status path.
func (r *adminRepo) ExpireStaleSessions(ctx context.Context, window time.Duration) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET is_logged_in = FALSE, updated_at = NOW()
		WHERE is_logged_in = TRUE
		  AND last_login_at IS NOT NULL
		  AND last_login_at < NOW() - $1::interval
	`, window.String())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
