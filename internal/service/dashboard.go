package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/ports"
)

// WidgetSpec names one dashboard widget value and the JMESPath expression
// that extracts it from the role's opaque dashboard payload.
type WidgetSpec struct {
	Name string
	Expr string
}

// DashboardData is a role dashboard: the raw provider payload plus the
// extracted widget values. Widgets that fail to extract are null, never
// errors; presentation decides what to do with holes.
type DashboardData struct {
	Role    domainauth.Role `json:"role"`
	Raw     json.RawMessage `json:"raw"`
	Widgets map[string]any  `json:"widgets"`
}

// rolePaths maps each role to its dashboard endpoint.
var rolePaths = map[domainauth.Role]string{
	domainauth.RoleGroupAdmin:          "/api/admin/dashboard",
	domainauth.RoleACCAdmin:            "/api/acc/dashboard",
	domainauth.RoleTrainingCenterAdmin: "/api/training-center/dashboard",
	domainauth.RoleInstructor:          "/api/instructor/dashboard",
}

// profilePaths maps each role to its profile resource endpoint.
var profilePaths = map[domainauth.Role]string{
	domainauth.RoleGroupAdmin:          "/api/admin/profile",
	domainauth.RoleACCAdmin:            "/api/acc/profile",
	domainauth.RoleTrainingCenterAdmin: "/api/training-center/profile",
	domainauth.RoleInstructor:          "/api/instructor/profile",
}

// defaultWidgets are the extraction expressions per role. The payloads are
// opaque provider JSON; expressions pull the handful of values the
// dashboard cards surface.
var defaultWidgets = map[domainauth.Role][]WidgetSpec{
	domainauth.RoleGroupAdmin: {
		{Name: "total_accs", Expr: "stats.total_accs"},
		{Name: "total_training_centers", Expr: "stats.total_training_centers"},
		{Name: "pending_approvals", Expr: "stats.pending_approvals"},
		{Name: "recent_registrations", Expr: "recent_registrations[:5].name"},
	},
	domainauth.RoleACCAdmin: {
		{Name: "training_centers", Expr: "stats.training_centers"},
		{Name: "active_certificates", Expr: "stats.active_certificates"},
		{Name: "expiring_documents", Expr: "documents[?expiring].name"},
	},
	domainauth.RoleTrainingCenterAdmin: {
		{Name: "instructors", Expr: "stats.instructors"},
		{Name: "courses", Expr: "stats.courses"},
		{Name: "upcoming_sessions", Expr: "sessions[:5].title"},
	},
	domainauth.RoleInstructor: {
		{Name: "assigned_courses", Expr: "stats.assigned_courses"},
		{Name: "certifications", Expr: "stats.certifications"},
	},
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	API    ports.ResourceAPI
	Logger *slog.Logger
	// Widgets overrides the default extraction specs when non-nil.
	Widgets map[domainauth.Role][]WidgetSpec
}

// DashboardService fetches per-role dashboard and profile resources and
// extracts widget values from them.
type DashboardService struct {
	api     ports.ResourceAPI
	logger  *slog.Logger
	widgets map[domainauth.Role][]WidgetSpec
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	widgets := opts.Widgets
	if widgets == nil {
		widgets = defaultWidgets
	}
	return &DashboardService{
		api:     opts.API,
		logger:  logger,
		widgets: widgets,
	}
}

// Dashboard fetches the role's dashboard payload and extracts its widgets.
func (s *DashboardService) Dashboard(ctx context.Context, role domainauth.Role) (DashboardData, error) {
	path, ok := rolePaths[role]
	if !ok {
		return DashboardData{}, fmt.Errorf("no dashboard endpoint for role %q", role)
	}

	raw, err := s.api.FetchResource(ctx, path)
	if err != nil {
		return DashboardData{}, fmt.Errorf("fetch dashboard: %w", err)
	}

	return DashboardData{
		Role:    role,
		Raw:     raw,
		Widgets: s.extract(role, raw),
	}, nil
}

// ProfileResource fetches the role-specific profile payload untouched.
func (s *DashboardService) ProfileResource(ctx context.Context, role domainauth.Role) (json.RawMessage, error) {
	path, ok := profilePaths[role]
	if !ok {
		return nil, fmt.Errorf("no profile endpoint for role %q", role)
	}
	return s.api.FetchResource(ctx, path)
}

// Resource fetches an arbitrary API path untouched. Guarded subtree
// requests are proxied through here.
func (s *DashboardService) Resource(ctx context.Context, path string) (json.RawMessage, error) {
	return s.api.FetchResource(ctx, path)
}

// extract evaluates the role's widget expressions against the payload.
// Any failure leaves that widget nil.
func (s *DashboardService) extract(role domainauth.Role, raw json.RawMessage) map[string]any {
	specs := s.widgets[role]
	out := make(map[string]any, len(specs))

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Debug("dashboard payload is not valid JSON", "role", role, "error", err)
		for _, spec := range specs {
			out[spec.Name] = nil
		}
		return out
	}

	for _, spec := range specs {
		value, err := jmespath.Search(spec.Expr, data)
		if err != nil {
			s.logger.Debug("widget extraction failed", "widget", spec.Name, "error", err)
			out[spec.Name] = nil
			continue
		}
		out[spec.Name] = value
	}
	return out
}
