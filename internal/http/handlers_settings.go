package httpx

import (
	"log/slog"
	"net/http"

	"github.com/accredly/console-api/internal/settings"
)

// SettingsHandlers serves the UI preference endpoints.
type SettingsHandlers struct {
	Prefs  settings.Repository
	Logger *slog.Logger
}

// sidebarBody is the wire form of the sidebar preferences.
type sidebarBody struct {
	Open      bool `json:"open"`
	Collapsed bool `json:"collapsed"`
}

// GetSidebar handles GET /settings/sidebar.
func (h *SettingsHandlers) GetSidebar(w http.ResponseWriter, r *http.Request) {
	open, err := h.Prefs.SidebarOpen(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_read_failed", Err: err})
		return
	}
	collapsed, err := h.Prefs.SidebarCollapsed(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_read_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, sidebarBody{Open: open, Collapsed: collapsed})
}

// PutSidebar handles PUT /settings/sidebar.
func (h *SettingsHandlers) PutSidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarBody
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Prefs.SetSidebarOpen(r.Context(), req.Open); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_write_failed", Err: err})
		return
	}
	if err := h.Prefs.SetSidebarCollapsed(r.Context(), req.Collapsed); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_write_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, req)
}

// GetMenuGroups handles GET /settings/menu-groups.
func (h *SettingsHandlers) GetMenuGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Prefs.ExpandedMenuGroups(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_read_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, groups)
}

// PutMenuGroups handles PUT /settings/menu-groups.
func (h *SettingsHandlers) PutMenuGroups(w http.ResponseWriter, r *http.Request) {
	var groups map[string]bool
	if !DecodeJSON(w, r, &groups) {
		return
	}
	if err := h.Prefs.SetExpandedMenuGroups(r.Context(), groups); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "settings_write_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, groups)
}
