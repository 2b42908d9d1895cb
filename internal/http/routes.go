package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/routing"
	"github.com/accredly/console-api/internal/service"
	"github.com/accredly/console-api/internal/settings"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions      *service.SessionManager
	Notifications *service.NotificationManager
	Dashboards    *service.DashboardService
	Prefs         settings.Repository
	Logger        *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the console gateway router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Sessions: services.Sessions, Logger: logger}
	feedHandlers := &NotificationHandlers{Feed: services.Notifications, Logger: logger}
	dashHandlers := &DashboardHandlers{
		Sessions:   services.Sessions,
		Dashboards: services.Dashboards,
		Logger:     logger,
	}
	settingsHandlers := &SettingsHandlers{Prefs: services.Prefs, Logger: logger}

	registerAuthRoutes(mux, authHandlers)
	registerGuardedRoutes(mux, services, guardedHandlers{
		auth:     authHandlers,
		dash:     dashHandlers,
		feed:     feedHandlers,
		settings: settingsHandlers,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Default redirect: the root resolves to the dashboard.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
	})

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// registerAuthRoutes wires the unguarded utility routes.
func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST "+PathLogin, h.Login)
	mux.HandleFunc("POST "+PathRegister, h.Register)
	mux.HandleFunc("POST "+PathResetPassword, h.ResetPassword)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /session", h.Session)
	mux.HandleFunc("GET "+PathUnauthorized, h.Unauthorized)

	// Login/register/reset pages answer GET with a neutral page marker so
	// redirects have somewhere to land; rendering is not this service's job.
	for _, path := range []string{PathLogin, PathRegister, PathResetPassword} {
		page := path[1:]
		mux.HandleFunc("GET "+path, func(w http.ResponseWriter, _ *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]string{"page": page})
		})
	}
}

// guardedHandlers groups the handler sets living behind route guards.
type guardedHandlers struct {
	auth     *AuthHandlers
	dash     *DashboardHandlers
	feed     *NotificationHandlers
	settings *SettingsHandlers
}

// registerGuardedRoutes wires every route behind a route guard.
func registerGuardedRoutes(mux *http.ServeMux, services RouterServices, h guardedHandlers) {
	dash, feed, prefs := h.dash, h.feed, h.settings

	guard := func(params routing.GuardParams, hf http.HandlerFunc) http.Handler {
		return Guard(services.Sessions, params)(hf)
	}

	anyRole := routing.GuardParams{}

	// Shared screens: any authenticated, approved role.
	mux.Handle("GET "+PathDashboard, guard(anyRole, dash.Dashboard))
	mux.Handle("GET "+PathProfile, guard(anyRole, dash.Profile))

	// Pending interstitial: authenticated, approval state irrelevant.
	mux.Handle("GET "+PathPendingAccount,
		guard(routing.GuardParams{AllowPending: true}, h.auth.PendingAccount))

	// Role-gated subtrees.
	areas := []struct {
		prefix string
		role   domainauth.Role
	}{
		{"/admin", domainauth.RoleGroupAdmin},
		{"/acc", domainauth.RoleACCAdmin},
		{"/training-center", domainauth.RoleTrainingCenterAdmin},
		{"/instructor", domainauth.RoleInstructor},
	}
	for _, area := range areas {
		params := routing.GuardParams{AllowedRoles: []domainauth.Role{area.role}}
		mux.Handle("GET "+area.prefix+"/{$}", guard(params, dash.RoleArea))
		mux.Handle("GET "+area.prefix+"/", guard(params, dash.Resource))
	}

	// Notification feed.
	mux.Handle("GET /notifications", guard(anyRole, feed.List))
	mux.Handle("GET /notifications/unread-count", guard(anyRole, feed.UnreadCount))
	mux.Handle("POST /notifications/read-all", guard(anyRole, feed.MarkAllRead))
	mux.Handle("POST /notifications/{id}/read", guard(anyRole, feed.MarkRead))
	mux.Handle("POST /notifications/{id}/unread", guard(anyRole, feed.MarkUnread))
	mux.Handle("DELETE /notifications/read", guard(anyRole, feed.DeleteRead))
	mux.Handle("DELETE /notifications/{id}", guard(anyRole, feed.Delete))

	// UI preferences.
	mux.Handle("GET /settings/sidebar", guard(anyRole, prefs.GetSidebar))
	mux.Handle("PUT /settings/sidebar", guard(anyRole, prefs.PutSidebar))
	mux.Handle("GET /settings/menu-groups", guard(anyRole, prefs.GetMenuGroups))
	mux.Handle("PUT /settings/menu-groups", guard(anyRole, prefs.PutMenuGroups))
}
