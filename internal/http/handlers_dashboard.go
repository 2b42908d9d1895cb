package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/accredly/console-api/internal/service"
)

// DashboardHandlers serves the role-dispatched dashboard and profile
// routes. Guard middleware has already established an authenticated,
// role-permitted user by the time these run.
type DashboardHandlers struct {
	Sessions   *service.SessionManager
	Dashboards *service.DashboardService
	Logger     *slog.Logger
}

var errNoUser = errors.New("no authenticated user")

// Dashboard handles GET /dashboard: fetches the current user's role
// dashboard and its extracted widgets.
func (h *DashboardHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.Sessions.Snapshot()
	if snap.User == nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errNoUser})
		return
	}

	data, err := h.Dashboards.Dashboard(r.Context(), snap.User.Role)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "dashboard_unavailable", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, data)
}

// Profile handles GET /profile: dispatches to the role-specific profile
// resource.
func (h *DashboardHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	snap := h.Sessions.Snapshot()
	if snap.User == nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errNoUser})
		return
	}

	raw, err := h.Dashboards.ProfileResource(r.Context(), snap.User.Role)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "profile_unavailable", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"role":    snap.User.Role,
		"profile": raw,
	})
}

// RoleArea returns a handler serving a role-gated subtree root, e.g.
// GET /admin/. The body is the same dashboard payload; deeper resource
// paths are proxied by Resource.
func (h *DashboardHandlers) RoleArea(w http.ResponseWriter, r *http.Request) {
	h.Dashboard(w, r)
}

// Resource proxies a guarded subtree path to the remote API untouched,
// e.g. GET /acc/documents → /api/acc/documents.
func (h *DashboardHandlers) Resource(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Dashboards.Resource(r.Context(), "/api"+r.URL.Path)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "resource_unavailable", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, raw)
}
