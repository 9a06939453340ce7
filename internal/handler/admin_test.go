package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texlane/catalog-server-go/internal/mailer"
	"github.com/texlane/catalog-server-go/internal/model"
	"github.com/texlane/catalog-server-go/internal/service"
)

// Stub repositories with overridable behavior, enough to drive the service
// through the handler.
type stubAdminRepo struct {
	findByEmail func(email string) (*model.Admin, error)
	consumeOTP  func(email, otp string) (*model.Admin, error)
	upsertOTP   func(email, otp string) error
}

func (s *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if s.findByEmail != nil {
		return s.findByEmail(email)
	}
	return nil, nil
}

func (s *stubAdminRepo) ListByEmails(ctx context.Context, emails []string) ([]model.Admin, error) {
	return nil, nil
}

func (s *stubAdminRepo) List(ctx context.Context) ([]model.Admin, error) {
	return nil, nil
}

func (s *stubAdminRepo) UpsertOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	if s.upsertOTP != nil {
		return s.upsertOTP(email, otp)
	}
	return nil
}

func (s *stubAdminRepo) ClearOTP(ctx context.Context, email string) error {
	return nil
}

func (s *stubAdminRepo) ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*model.Admin, error) {
	if s.consumeOTP != nil {
		return s.consumeOTP(email, otp)
	}
	return nil, nil
}

func (s *stubAdminRepo) SetLoggedOut(ctx context.Context, email string) error {
	return nil
}

func (s *stubAdminRepo) UpdatePermissions(ctx context.Context, email string, canAccessProduct, canAccessFilter *bool) (*model.Admin, error) {
	return nil, nil
}

func (s *stubAdminRepo) ClearExpiredOTPs(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *stubAdminRepo) ExpireStaleSessions(ctx context.Context, window time.Duration) (int64, error) {
	return 0, nil
}

type stubRoleRepo struct{}

func (stubRoleRepo) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	return nil, nil
}

func (stubRoleRepo) List(ctx context.Context) ([]model.Role, error) {
	return nil, nil
}

func newTestAdminHandler(repo *stubAdminRepo) *AdminHandler {
	svc := service.NewAdminService(repo, stubRoleRepo{}, mailer.NewMock(), nil, service.AdminConfig{
		SuperAdminEmail: "boss@texlane.com",
		OTPTTL:          10 * time.Minute,
		SessionWindow:   2 * time.Hour,
	})
	return NewAdminHandler(svc, nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, h *AdminHandler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRequestOTPEndpoint(t *testing.T) {
	t.Run("returns 403 for an unauthorized email", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{})

		rec, env := doRequest(t, h, http.MethodPost, "/request-otp", `{"email":"stranger@example.com"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "UNAUTHORIZED", env.Code)
	})

	t.Run("returns 200 for the super admin", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{})

		rec, env := doRequest(t, h, http.MethodPost, "/request-otp", `{"email":"boss@texlane.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "OTP sent to your email", env.Message)
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{})

		rec, env := doRequest(t, h, http.MethodPost, "/request-otp", `not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
	})
}

func TestVerifyOTPEndpoint(t *testing.T) {
	t.Run("returns 400 for a wrong code", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{
			findByEmail: func(email string) (*model.Admin, error) {
				return &model.Admin{Email: email}, nil
			},
			consumeOTP: func(email, otp string) (*model.Admin, error) {
				return nil, nil
			},
		})

		rec, env := doRequest(t, h, http.MethodPost, "/verify-otp", `{"email":"boss@texlane.com","otp":"000000"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_OR_EXPIRED_OTP", env.Code)
	})

	t.Run("returns the login payload on success", func(t *testing.T) {
		now := time.Now()
		h := newTestAdminHandler(&stubAdminRepo{
			findByEmail: func(email string) (*model.Admin, error) {
				return &model.Admin{Email: email}, nil
			},
			consumeOTP: func(email, otp string) (*model.Admin, error) {
				return &model.Admin{Email: email, IsLoggedIn: true, LastLoginAt: &now}, nil
			},
		})

		rec, env := doRequest(t, h, http.MethodPost, "/verify-otp", `{"email":"boss@texlane.com","otp":"482913"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)

		var result model.LoginResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.True(t, result.IsLoggedIn)
		assert.True(t, result.IsSuperAdmin)
		assert.Equal(t, model.AllAccess, result.Permissions.Product)
	})

	t.Run("returns 404 when no admin record exists", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{})

		rec, env := doRequest(t, h, http.MethodPost, "/verify-otp", `{"email":"boss@texlane.com","otp":"482913"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", env.Code)
	})
}

func TestStatusEndpoint(t *testing.T) {
	t.Run("returns 401 for an expired session", func(t *testing.T) {
		stale := time.Now().Add(-3 * time.Hour)
		h := newTestAdminHandler(&stubAdminRepo{
			findByEmail: func(email string) (*model.Admin, error) {
				return &model.Admin{Email: email, IsLoggedIn: true, LastLoginAt: &stale}, nil
			},
		})

		rec, env := doRequest(t, h, http.MethodPost, "/status", `{"email":"boss@texlane.com"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "SESSION_EXPIRED", env.Code)
	})

	t.Run("returns the session snapshot while active", func(t *testing.T) {
		recent := time.Now().Add(-5 * time.Minute)
		h := newTestAdminHandler(&stubAdminRepo{
			findByEmail: func(email string) (*model.Admin, error) {
				return &model.Admin{Email: email, IsLoggedIn: true, LastLoginAt: &recent}, nil
			},
		})

		rec, env := doRequest(t, h, http.MethodPost, "/status", `{"email":"boss@texlane.com"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var status model.AdminStatus
		require.NoError(t, json.Unmarshal(env.Data, &status))
		assert.True(t, status.IsLoggedIn)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("succeeds regardless of session state", func(t *testing.T) {
		h := newTestAdminHandler(&stubAdminRepo{})

		rec, env := doRequest(t, h, http.MethodPost, "/logout", `{"email":"boss@texlane.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
	})
}
