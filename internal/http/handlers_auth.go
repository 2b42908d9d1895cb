package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/ports"
	"github.com/accredly/console-api/internal/service"
)

// AuthHandlers provides HTTP handlers for session operations.
type AuthHandlers struct {
	Sessions *service.SessionManager
	Logger   *slog.Logger
}

// loginRequest is the gateway login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the gateway register body.
type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// authResultBody is the wire form of a service.AuthResult.
type authResultBody struct {
	Success    bool                `json:"success"`
	User       *domainauth.User    `json:"user,omitempty"`
	Error      string              `json:"error,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	IsActive   bool                `json:"is_active"`
	UserStatus domainauth.Status   `json:"user_status,omitempty"`
}

func toResultBody(res service.AuthResult) authResultBody {
	body := authResultBody{
		Success:    res.Success,
		Error:      res.Err,
		Errors:     res.Fields,
		IsActive:   res.IsActive,
		UserStatus: res.UserStatus,
	}
	if res.Data != nil {
		body.User = &res.Data.User
	}
	return body
}

// Login handles POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Sessions.Login(r.Context(), req.Email, req.Password)
	code := http.StatusOK
	if !res.Success {
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, toResultBody(res))
}

// Register handles POST /register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Sessions.Register(r.Context(), ports.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 domainauth.Role(req.Role),
	})
	code := http.StatusOK
	if !res.Success {
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, toResultBody(res))
}

// Logout handles POST /logout. Local cleanup always succeeds, so this
// never reports failure to the caller.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session handles GET /session: the current snapshot for navigation.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	h.Sessions.EnsureChecked(r.Context())
	snap := h.Sessions.Snapshot()
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":          snap.User,
		"loading":       snap.Loading,
		"authenticated": snap.Authenticated,
	})
}

// forgotPasswordRequest is the gateway forgot-password body.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Sessions.ForgotPassword(r.Context(), req.Email)
	code := http.StatusOK
	if !res.Success {
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, toResultBody(res))
}

// resetPasswordRequest is the gateway reset-password body.
type resetPasswordRequest struct {
	Token                string `json:"token"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPassword handles POST /reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Sessions.ResetPassword(r.Context(), ports.PasswordReset{
		Token:                req.Token,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	code := http.StatusOK
	if !res.Success {
		code = http.StatusUnprocessableEntity
	}
	WriteJSON(w, code, toResultBody(res))
}

// PendingAccount handles GET /pending-account, the interstitial for
// approved-for-login but not-yet-authorized accounts.
func (h *AuthHandlers) PendingAccount(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"page":    "pending-account",
		"message": "Your account is awaiting approval.",
	})
}

// Unauthorized handles GET /unauthorized.
func (h *AuthHandlers) Unauthorized(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"page":    "unauthorized",
		"message": "You do not have access to this area.",
	})
}
