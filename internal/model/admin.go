package model

import (
	"time"
)

// Admin represents an admin account identified by email. The OTP fields hold
// at most one live code; is_logged_in/last_login_at track the session state.
type Admin struct {
	ID               int64      `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	OTP              *string    `db:"otp" json:"-"`
	OTPExpiresAt     *time.Time `db:"otp_expires_at" json:"-"`
	IsLoggedIn       bool       `db:"is_logged_in" json:"isLoggedIn"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CanAccessProduct bool       `db:"can_access_product" json:"canAccessProduct"`
	CanAccessFilter  bool       `db:"can_access_filter" json:"canAccessFilter"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// HasLiveOTP checks whether a code is stored and unexpired.
func (a *Admin) HasLiveOTP(now time.Time) bool {
	return a.OTP != nil && a.OTPExpiresAt != nil && now.Before(*a.OTPExpiresAt)
}

// SessionExpired checks whether the login session is stale past the window.
func (a *Admin) SessionExpired(now time.Time, window time.Duration) bool {
	return a.IsLoggedIn && a.LastLoginAt != nil && now.After(a.LastLoginAt.Add(window))
}

// Permissions is the authorization profile returned on a successful login.
// Super admins carry the "all access" sentinel in every field.
type Permissions struct {
	Filter  string `json:"filter"`
	Product string `json:"product"`
	Seo     string `json:"seo"`
}

// AllAccess is the permission sentinel granted to the super admin.
const AllAccess = "all access"

// LoginResult is the payload returned after OTP verification.
type LoginResult struct {
	Email        string      `json:"email"`
	IsLoggedIn   bool        `json:"isLoggedIn"`
	LastLoginAt  *time.Time  `json:"lastLoginAt"`
	IsSuperAdmin bool        `json:"isSuperAdmin"`
	Permissions  Permissions `json:"permissions"`
}

// AdminStatus is the session snapshot returned by the status endpoint.
type AdminStatus struct {
	Email       string     `json:"email"`
	IsLoggedIn  bool       `json:"isLoggedIn"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// AllowedAdmin pairs an allow-listed email with its permission flags,
// reporting false for emails that have no admin record yet.
type AllowedAdmin struct {
	Email            string `json:"email"`
	CanAccessProduct bool   `json:"canAccessProduct"`
	CanAccessFilter  bool   `json:"canAccessFilter"`
}
