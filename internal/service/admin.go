package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/texlane/catalog-server-go/internal/config"
	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/mailer"
	"github.com/texlane/catalog-server-go/internal/model"
	"github.com/texlane/catalog-server-go/internal/repository"
)

const (
	otpRequestLimit  = 5
	otpRequestWindow = 15 * time.Minute
)

// CodeLimiter throttles login code issuance per email.
type CodeLimiter interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, resetAt time.Time)
}

// AdminConfig carries the authorization and timing knobs for admin login.
type AdminConfig struct {
	SuperAdminEmail string
	AllowedEmails   []string
	OTPTTL          time.Duration
	SessionWindow   time.Duration
}

// AdminService implements the OTP login flow: request a code, verify it,
// poll session status, log out. Authorization is allow-list based; there is
// no self-service signup.
type AdminService struct {
	admins  repository.AdminRepository
	roles   repository.RoleRepository
	mail    mailer.Service
	limiter CodeLimiter
	cfg     AdminConfig
}

// NewAdminService creates a new admin service. limiter may be nil, which
// disables issuance throttling.
func NewAdminService(
	admins repository.AdminRepository,
	roles repository.RoleRepository,
	mail mailer.Service,
	limiter CodeLimiter,
	cfg AdminConfig,
) *AdminService {
	cfg.SuperAdminEmail = strings.ToLower(strings.TrimSpace(cfg.SuperAdminEmail))
	return &AdminService{
		admins:  admins,
		roles:   roles,
		mail:    mail,
		limiter: limiter,
		cfg:     cfg,
	}
}

// IsSuperAdmin reports whether the email matches the configured super admin.
func (s *AdminService) IsSuperAdmin(email string) bool {
	return s.cfg.SuperAdminEmail != "" && normalizeEmail(email) == s.cfg.SuperAdminEmail
}

// authorize checks that the email may log in at all: the super admin, the
// static allow-list, and the role registry are each sufficient.
func (s *AdminService) authorize(ctx context.Context, email string) error {
	if s.IsSuperAdmin(email) {
		return nil
	}
	for _, allowed := range s.cfg.AllowedEmails {
		if allowed == email {
			return nil
		}
	}
	role, err := s.roles.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.Database(err)
	}
	if role == nil {
		return apperrors.UnauthorizedEmail()
	}
	return nil
}

// RequestOTP authorizes the email, generates a fresh 6-digit code, stores it
// with its expiry, and emails it. A dispatch failure clears the stored code
// so no unverifiable code stays live.
func (s *AdminService) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.MissingRequired("email")
	}

	if err := s.authorize(ctx, email); err != nil {
		return err
	}

	if s.limiter != nil {
		allowed, resetAt := s.limiter.CheckLimit(ctx, "otp:"+email, otpRequestLimit, otpRequestWindow)
		if !allowed {
			log.Warn().
				Str("email", email).
				Time("resetAt", resetAt).
				Msg("OTP request throttled")
			return apperrors.RateLimitExceeded()
		}
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.Internal("could not generate login code").WithCause(err)
	}
	expiresAt := time.Now().Add(s.cfg.OTPTTL)

	if err := s.admins.UpsertOTP(ctx, email, code, expiresAt); err != nil {
		return apperrors.Database(err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, config.MailSendTimeout)
	defer cancel()

	if err := s.mail.Send(sendCtx, otpEmail(email, code, s.cfg.OTPTTL)); err != nil {
		// The stored code is useless if the admin never received it. Clear it
		// so a later successful request starts clean.
		if clearErr := s.admins.ClearOTP(ctx, email); clearErr != nil {
			log.Error().Err(clearErr).Str("email", email).Msg("failed to clear undelivered OTP")
		}
		log.Error().Err(err).Str("email", email).Msg("OTP email dispatch failed")
		return apperrors.Dependency("email", err)
	}

	log.Info().
		Str("email", email).
		Time("expiresAt", expiresAt).
		Msg("OTP issued")

	return nil
}

// VerifyOTP spends the code and opens the session. The code is consumed
// atomically: a matching unexpired code flips the row to logged-in and is
// cleared in the same statement, so a second attempt with the same code fails.
func (s *AdminService) VerifyOTP(ctx context.Context, email, otp string) (*model.LoginResult, error) {
	email = normalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" {
		return nil, apperrors.MissingRequired("email")
	}
	if otp == "" {
		return nil, apperrors.MissingRequired("otp")
	}

	if err := s.authorize(ctx, email); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil {
		return nil, apperrors.NotFound("Admin")
	}

	admin, err = s.admins.ConsumeOTP(ctx, email, otp, time.Now())
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil {
		log.Warn().Str("email", email).Msg("OTP verification failed")
		return nil, apperrors.InvalidOrExpiredOTP()
	}

	perms, err := s.permissionsFor(ctx, email)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("admin logged in")

	return &model.LoginResult{
		Email:        admin.Email,
		IsLoggedIn:   admin.IsLoggedIn,
		LastLoginAt:  admin.LastLoginAt,
		IsSuperAdmin: s.IsSuperAdmin(email),
		Permissions:  perms,
	}, nil
}

// Status reports the session snapshot, lazily expiring sessions older than
// the window.
func (s *AdminService) Status(ctx context.Context, email string) (*model.AdminStatus, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.MissingRequired("email")
	}

	if err := s.authorize(ctx, email); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil {
		return nil, apperrors.NotFound("Admin")
	}

	if admin.SessionExpired(time.Now(), s.cfg.SessionWindow) {
		if err := s.admins.SetLoggedOut(ctx, email); err != nil {
			return nil, apperrors.Database(err)
		}
		log.Info().Str("email", email).Msg("session expired")
		return nil, apperrors.SessionExpired("Session expired, please log in again")
	}

	return &model.AdminStatus{
		Email:       admin.Email,
		IsLoggedIn:  admin.IsLoggedIn,
		LastLoginAt: admin.LastLoginAt,
	}, nil
}

// Logout clears the logged-in flag for an authorized email. Logging out an
// already logged-out admin succeeds.
func (s *AdminService) Logout(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.MissingRequired("email")
	}
	if err := s.authorize(ctx, email); err != nil {
		return err
	}
	if err := s.admins.SetLoggedOut(ctx, email); err != nil {
		return apperrors.Database(err)
	}
	log.Info().Str("email", email).Msg("admin logged out")
	return nil
}

// Permissions reports the permission profile for an authorized email.
func (s *AdminService) Permissions(ctx context.Context, email string) (model.Permissions, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.Permissions{}, apperrors.MissingRequired("email")
	}
	if err := s.authorize(ctx, email); err != nil {
		return model.Permissions{}, err
	}
	return s.permissionsFor(ctx, email)
}

// AllowedAdmins lists the static allow-list with each entry's permission
// flags. Emails that have never logged in report false flags.
func (s *AdminService) AllowedAdmins(ctx context.Context) ([]model.AllowedAdmin, error) {
	admins, err := s.admins.ListByEmails(ctx, s.cfg.AllowedEmails)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	byEmail := make(map[string]model.Admin, len(admins))
	for _, a := range admins {
		byEmail[a.Email] = a
	}

	out := make([]model.AllowedAdmin, 0, len(s.cfg.AllowedEmails))
	for _, email := range s.cfg.AllowedEmails {
		entry := model.AllowedAdmin{Email: email}
		if a, ok := byEmail[email]; ok {
			entry.CanAccessProduct = a.CanAccessProduct
			entry.CanAccessFilter = a.CanAccessFilter
		}
		out = append(out, entry)
	}
	return out, nil
}

// UpdatePermissions toggles an admin's access flags. Nil flags keep the
// current value.
func (s *AdminService) UpdatePermissions(ctx context.Context, email string, canAccessProduct, canAccessFilter *bool) (*model.Admin, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.MissingRequired("email")
	}

	admin, err := s.admins.UpdatePermissions(ctx, email, canAccessProduct, canAccessFilter)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil {
		return nil, apperrors.NotFound("Admin")
	}

	log.Info().
		Str("email", email).
		Bool("canAccessProduct", admin.CanAccessProduct).
		Bool("canAccessFilter", admin.CanAccessFilter).
		Msg("admin permissions updated")

	return admin, nil
}

// permissionsFor resolves the permission profile: the super admin gets the
// all-access sentinel in every field, everyone else gets their role registry
// entry (or empty fields when no role row exists).
func (s *AdminService) permissionsFor(ctx context.Context, email string) (model.Permissions, error) {
	if s.IsSuperAdmin(email) {
		return model.Permissions{
			Filter:  model.AllAccess,
			Product: model.AllAccess,
			Seo:     model.AllAccess,
		}, nil
	}

	role, err := s.roles.FindByEmail(ctx, email)
	if err != nil {
		return model.Permissions{}, apperrors.Database(err)
	}
	if role == nil {
		return model.Permissions{}, nil
	}
	return model.Permissions{
		Filter:  role.Filter,
		Product: role.Product,
		Seo:     role.Seo,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP returns a 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func otpEmail(to, code string, ttl time.Duration) mailer.Email {
	minutes := int(ttl.Minutes())
	return mailer.Email{
		To:      []string{to},
		Subject: "Your admin login code",
		TextBody: fmt.Sprintf(
			"Your one-time login code is %s. It expires in %d minutes.\n\nIf you did not request this code, you can ignore this email.",
			code, minutes,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Your one-time login code is <strong>%s</strong>. It expires in %d minutes.</p><p>If you did not request this code, you can ignore this email.</p>`,
			code, minutes,
		),
	}
}
