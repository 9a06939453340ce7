package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/mailer"
	"github.com/texlane/catalog-server-go/internal/model"
)

// Mock repositories
type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) ListByEmails(ctx context.Context, emails []string) ([]model.Admin, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *mockAdminRepo) List(ctx context.Context) ([]model.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *mockAdminRepo) UpsertOTP(ctx context.Context, email, otp string, expiresAt time.Time) error {
	args := m.Called(ctx, email, otp, expiresAt)
	return args.Error(0)
}

func (m *mockAdminRepo) ClearOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAdminRepo) ConsumeOTP(ctx context.Context, email, otp string, now time.Time) (*model.Admin, error) {
	args := m.Called(ctx, email, otp, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) SetLoggedOut(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAdminRepo) UpdatePermissions(ctx context.Context, email string, canAccessProduct, canAccessFilter *bool) (*model.Admin, error) {
	args := m.Called(ctx, email, canAccessProduct, canAccessFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) ClearExpiredOTPs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAdminRepo) ExpireStaleSessions(ctx context.Context, window time.Duration) (int64, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) FindByEmail(ctx context.Context, email string) (*model.Role, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

type denyAllLimiter struct{}

func (denyAllLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Time) {
	return false, time.Now().Add(window)
}

func testConfig() AdminConfig {
	return AdminConfig{
		SuperAdminEmail: "boss@texlane.com",
		AllowedEmails:   []string{"ops@texlane.com"},
		OTPTTL:          10 * time.Minute,
		SessionWindow:   2 * time.Hour,
	}
}

func TestGenerateOTP(t *testing.T) {
	t.Run("produces six digits", func(t *testing.T) {
		pattern := regexp.MustCompile(`^\d{6}$`)
		for i := 0; i < 100; i++ {
			code, err := generateOTP()
			require.NoError(t, err)
			assert.True(t, pattern.MatchString(code), "expected six digits, got: %s", code)
		}
	})

	t.Run("stays in range", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := generateOTP()
			require.NoError(t, err)
			n, err := strconv.Atoi(code)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 100000)
			assert.LessOrEqual(t, n, 999999)
		}
	})
}

func TestRequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unauthorized email", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		roles.On("FindByEmail", ctx, "stranger@example.com").Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		err := svc.RequestOTP(ctx, "stranger@example.com")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
		admins.AssertNotCalled(t, "UpsertOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores and emails a code for the super admin", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		mail := mailer.NewMock()
		admins.On("UpsertOTP", ctx, "boss@texlane.com", mock.MatchedBy(func(code string) bool {
			return regexp.MustCompile(`^\d{6}$`).MatchString(code)
		}), mock.AnythingOfType("time.Time")).Return(nil)

		svc := NewAdminService(admins, roles, mail, nil, testConfig())

		err := svc.RequestOTP(ctx, "  Boss@Texlane.COM ")
		require.NoError(t, err)
		admins.AssertExpectations(t)
		require.Equal(t, 1, mail.SentCount())
		assert.Equal(t, []string{"boss@texlane.com"}, mail.LastSent().To)
		assert.Contains(t, mail.LastSent().TextBody, "expires in 10 minutes")
	})

	t.Run("accepts emails from the role registry", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		roles.On("FindByEmail", ctx, "editor@texlane.com").Return(&model.Role{
			Email: "editor@texlane.com", Filter: "read", Product: "write", Seo: "read",
		}, nil)
		admins.On("UpsertOTP", ctx, "editor@texlane.com", mock.Anything, mock.Anything).Return(nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		require.NoError(t, svc.RequestOTP(ctx, "editor@texlane.com"))
	})

	t.Run("clears the code when email dispatch fails", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		mail := mailer.NewMock()
		mail.Err = errors.New("smtp: connection refused")
		admins.On("UpsertOTP", ctx, "ops@texlane.com", mock.Anything, mock.Anything).Return(nil)
		admins.On("ClearOTP", ctx, "ops@texlane.com").Return(nil)

		svc := NewAdminService(admins, roles, mail, nil, testConfig())

		err := svc.RequestOTP(ctx, "ops@texlane.com")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDependency, apperrors.GetCode(err))
		admins.AssertCalled(t, "ClearOTP", ctx, "ops@texlane.com")
	})

	t.Run("throttles repeated requests", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)

		svc := NewAdminService(admins, roles, mailer.NewMock(), denyAllLimiter{}, testConfig())

		err := svc.RequestOTP(ctx, "ops@texlane.com")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRateLimitExceeded, apperrors.GetCode(err))
		admins.AssertNotCalled(t, "UpsertOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires an email", func(t *testing.T) {
		svc := NewAdminService(new(mockAdminRepo), new(mockRoleRepo), mailer.NewMock(), nil, testConfig())

		err := svc.RequestOTP(ctx, "   ")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("logs in and grants the super admin full access", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		now := time.Now()
		stored := &model.Admin{Email: "boss@texlane.com"}
		loggedIn := &model.Admin{Email: "boss@texlane.com", IsLoggedIn: true, LastLoginAt: &now}
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(stored, nil)
		admins.On("ConsumeOTP", ctx, "boss@texlane.com", "482913", mock.AnythingOfType("time.Time")).Return(loggedIn, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		result, err := svc.VerifyOTP(ctx, "boss@texlane.com", "482913")
		require.NoError(t, err)
		assert.True(t, result.IsLoggedIn)
		assert.True(t, result.IsSuperAdmin)
		assert.Equal(t, model.Permissions{
			Filter:  model.AllAccess,
			Product: model.AllAccess,
			Seo:     model.AllAccess,
		}, result.Permissions)
	})

	t.Run("returns role permissions for regular admins", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		now := time.Now()
		roles.On("FindByEmail", ctx, "editor@texlane.com").Return(&model.Role{
			Email: "editor@texlane.com", Filter: "read", Product: "write", Seo: "none",
		}, nil)
		admins.On("FindByEmail", ctx, "editor@texlane.com").Return(&model.Admin{Email: "editor@texlane.com"}, nil)
		admins.On("ConsumeOTP", ctx, "editor@texlane.com", "123456", mock.Anything).Return(&model.Admin{
			Email: "editor@texlane.com", IsLoggedIn: true, LastLoginAt: &now,
		}, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		result, err := svc.VerifyOTP(ctx, "editor@texlane.com", "123456")
		require.NoError(t, err)
		assert.False(t, result.IsSuperAdmin)
		assert.Equal(t, model.Permissions{Filter: "read", Product: "write", Seo: "none"}, result.Permissions)
	})

	t.Run("rejects a wrong or expired code", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(&model.Admin{Email: "boss@texlane.com"}, nil)
		admins.On("ConsumeOTP", ctx, "boss@texlane.com", "000000", mock.Anything).Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.VerifyOTP(ctx, "boss@texlane.com", "000000")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidOrExpiredOTP, apperrors.GetCode(err))
	})

	t.Run("consumes the code so a second attempt fails", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		now := time.Now()
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(&model.Admin{Email: "boss@texlane.com"}, nil)
		admins.On("ConsumeOTP", ctx, "boss@texlane.com", "482913", mock.Anything).Return(&model.Admin{
			Email: "boss@texlane.com", IsLoggedIn: true, LastLoginAt: &now,
		}, nil).Once()
		admins.On("ConsumeOTP", ctx, "boss@texlane.com", "482913", mock.Anything).Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.VerifyOTP(ctx, "boss@texlane.com", "482913")
		require.NoError(t, err)

		_, err = svc.VerifyOTP(ctx, "boss@texlane.com", "482913")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidOrExpiredOTP, apperrors.GetCode(err))
	})

	t.Run("reports a missing admin record", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.VerifyOTP(ctx, "boss@texlane.com", "482913")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("rejects unauthorized emails before touching the code", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		roles.On("FindByEmail", ctx, "stranger@example.com").Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.VerifyOTP(ctx, "stranger@example.com", "482913")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
		admins.AssertNotCalled(t, "ConsumeOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("reports an active session", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		recent := time.Now().Add(-30 * time.Minute)
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(&model.Admin{
			Email: "boss@texlane.com", IsLoggedIn: true, LastLoginAt: &recent,
		}, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		status, err := svc.Status(ctx, "boss@texlane.com")
		require.NoError(t, err)
		assert.True(t, status.IsLoggedIn)
	})

	t.Run("expires a session past the window", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		stale := time.Now().Add(-3 * time.Hour)
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(&model.Admin{
			Email: "boss@texlane.com", IsLoggedIn: true, LastLoginAt: &stale,
		}, nil)
		admins.On("SetLoggedOut", ctx, "boss@texlane.com").Return(nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.Status(ctx, "boss@texlane.com")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeSessionExpired, apperrors.GetCode(err))
		admins.AssertCalled(t, "SetLoggedOut", ctx, "boss@texlane.com")
	})

	t.Run("leaves a logged-out record untouched", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		stale := time.Now().Add(-3 * time.Hour)
		admins.On("FindByEmail", ctx, "boss@texlane.com").Return(&model.Admin{
			Email: "boss@texlane.com", IsLoggedIn: false, LastLoginAt: &stale,
		}, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		status, err := svc.Status(ctx, "boss@texlane.com")
		require.NoError(t, err)
		assert.False(t, status.IsLoggedIn)
		admins.AssertNotCalled(t, "SetLoggedOut", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("is idempotent", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		admins.On("SetLoggedOut", ctx, "boss@texlane.com").Return(nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		require.NoError(t, svc.Logout(ctx, "boss@texlane.com"))
		require.NoError(t, svc.Logout(ctx, "boss@texlane.com"))
	})

	t.Run("rejects unauthorized emails without touching the session", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		roles.On("FindByEmail", ctx, "stranger@example.com").Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		err := svc.Logout(ctx, "stranger@example.com")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
		admins.AssertNotCalled(t, "SetLoggedOut", mock.Anything, mock.Anything)
	})
}

func TestAllowedAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("reports false flags for emails without a record", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		cfg := testConfig()
		cfg.AllowedEmails = []string{"ops@texlane.com", "new@texlane.com"}
		admins.On("ListByEmails", ctx, cfg.AllowedEmails).Return([]model.Admin{
			{Email: "ops@texlane.com", CanAccessProduct: true, CanAccessFilter: false},
		}, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, cfg)

		out, err := svc.AllowedAdmins(ctx)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, model.AllowedAdmin{Email: "ops@texlane.com", CanAccessProduct: true}, out[0])
		assert.Equal(t, model.AllowedAdmin{Email: "new@texlane.com"}, out[1])
	})
}

func TestUpdatePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("updates flags", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		yes := true
		admins.On("UpdatePermissions", ctx, "ops@texlane.com", &yes, (*bool)(nil)).Return(&model.Admin{
			Email: "ops@texlane.com", CanAccessProduct: true,
		}, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		admin, err := svc.UpdatePermissions(ctx, "ops@texlane.com", &yes, nil)
		require.NoError(t, err)
		assert.True(t, admin.CanAccessProduct)
	})

	t.Run("reports a missing admin", func(t *testing.T) {
		admins := new(mockAdminRepo)
		roles := new(mockRoleRepo)
		admins.On("UpdatePermissions", ctx, "ghost@texlane.com", (*bool)(nil), (*bool)(nil)).Return(nil, nil)

		svc := NewAdminService(admins, roles, mailer.NewMock(), nil, testConfig())

		_, err := svc.UpdatePermissions(ctx, "ghost@texlane.com", nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}
