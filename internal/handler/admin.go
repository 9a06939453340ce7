package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/texlane/catalog-server-go/internal/service"
)

// AdminHandler exposes the OTP login flow and admin management endpoints.
type AdminHandler struct {
	admins     *service.AdminService
	otpLimiter func(http.Handler) http.Handler
}

// NewAdminHandler creates a new admin handler. otpLimiter fronts the OTP
// issuance endpoint and may be nil.
func NewAdminHandler(admins *service.AdminService, otpLimiter func(http.Handler) http.Handler) *AdminHandler {
	return &AdminHandler{admins: admins, otpLimiter: otpLimiter}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	if h.otpLimiter != nil {
		r.With(h.otpLimiter).Post("/request-otp", h.RequestOTP)
	} else {
		r.Post("/request-otp", h.RequestOTP)
	}
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/status", h.Status)
	r.Post("/logout", h.Logout)

	r.Get("/allowed", h.AllowedAdmins)
	r.Get("/permissions", h.Permissions)
	r.Patch("/permissions", h.UpdatePermissions)

	return r
}

func (h *AdminHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.admins.RequestOTP(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "OTP sent to your email", nil)
}

func (h *AdminHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.admins.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", result)
}

func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status, err := h.admins.Status(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", status)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.admins.Logout(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Logged out", nil)
}

func (h *AdminHandler) AllowedAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.AllowedAdmins(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"admins": admins})
}

func (h *AdminHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	perms, err := h.admins.Permissions(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", perms)
}

func (h *AdminHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email            string `json:"email"`
		CanAccessProduct *bool  `json:"canAccessProduct"`
		CanAccessFilter  *bool  `json:"canAccessFilter"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	admin, err := h.admins.UpdatePermissions(r.Context(), req.Email, req.CanAccessProduct, req.CanAccessFilter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Permissions updated", admin)
}
