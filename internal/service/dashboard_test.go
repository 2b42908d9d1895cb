package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/mocks"
)

func TestDashboardService_Dashboard_ExtractsWidgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payload := `{
		"stats": {"total_accs": 12, "total_training_centers": 4, "pending_approvals": 2},
		"recent_registrations": [
			{"name": "Alpha"}, {"name": "Beta"}, {"name": "Gamma"},
			{"name": "Delta"}, {"name": "Epsilon"}, {"name": "Zeta"}
		]
	}`
	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/admin/dashboard").
		Return(json.RawMessage(payload), nil)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	data, err := svc.Dashboard(context.Background(), domainauth.RoleGroupAdmin)
	require.NoError(t, err)

	assert.Equal(t, domainauth.RoleGroupAdmin, data.Role)
	assert.JSONEq(t, payload, string(data.Raw))
	assert.Equal(t, float64(12), data.Widgets["total_accs"])
	assert.Equal(t, float64(2), data.Widgets["pending_approvals"])
	assert.Equal(t, []any{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"},
		data.Widgets["recent_registrations"], "slice expression caps at five entries")
}

func TestDashboardService_Dashboard_FilterExpression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payload := `{
		"stats": {"training_centers": 3, "active_certificates": 40},
		"documents": [
			{"name": "cert-a.pdf", "expiring": true},
			{"name": "cert-b.pdf", "expiring": false},
			{"name": "cert-c.pdf", "expiring": true}
		]
	}`
	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/acc/dashboard").
		Return(json.RawMessage(payload), nil)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	data, err := svc.Dashboard(context.Background(), domainauth.RoleACCAdmin)
	require.NoError(t, err)

	assert.Equal(t, []any{"cert-a.pdf", "cert-c.pdf"}, data.Widgets["expiring_documents"])
}

func TestDashboardService_Dashboard_MissingValuesAreNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/instructor/dashboard").
		Return(json.RawMessage(`{"unrelated": true}`), nil)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	data, err := svc.Dashboard(context.Background(), domainauth.RoleInstructor)
	require.NoError(t, err)

	// Extraction failures become nil widget values, never errors.
	require.Contains(t, data.Widgets, "assigned_courses")
	assert.Nil(t, data.Widgets["assigned_courses"])
	assert.Nil(t, data.Widgets["certifications"])
}

func TestDashboardService_Dashboard_InvalidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/instructor/dashboard").
		Return(json.RawMessage(`<html>oops</html>`), nil)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	data, err := svc.Dashboard(context.Background(), domainauth.RoleInstructor)
	require.NoError(t, err)

	for name, value := range data.Widgets {
		assert.Nil(t, value, "widget %q must be nil for a non-JSON payload", name)
	}
}

func TestDashboardService_Dashboard_UnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewDashboardService(DashboardServiceOptions{API: mocks.NewMockResourceAPI(ctrl)})
	_, err := svc.Dashboard(context.Background(), domainauth.Role("superuser"))
	require.Error(t, err)
}

func TestDashboardService_Dashboard_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wantErr := errors.New("upstream down")
	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/acc/dashboard").Return(nil, wantErr)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	_, err := svc.Dashboard(context.Background(), domainauth.RoleACCAdmin)
	require.ErrorIs(t, err, wantErr)
}

func TestDashboardService_ProfileResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/training-center/profile").
		Return(json.RawMessage(`{"center": "North"}`), nil)

	svc := NewDashboardService(DashboardServiceOptions{API: api})
	raw, err := svc.ProfileResource(context.Background(), domainauth.RoleTrainingCenterAdmin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"center": "North"}`, string(raw))

	_, err = svc.ProfileResource(context.Background(), domainauth.Role("superuser"))
	require.Error(t, err)
}

func TestDashboardService_CustomWidgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockResourceAPI(ctrl)
	api.EXPECT().FetchResource(gomock.Any(), "/api/instructor/dashboard").
		Return(json.RawMessage(`{"deep": {"value": "found"}}`), nil)

	svc := NewDashboardService(DashboardServiceOptions{
		API: api,
		Widgets: map[domainauth.Role][]WidgetSpec{
			domainauth.RoleInstructor: {{Name: "custom", Expr: "deep.value"}},
		},
	})
	data, err := svc.Dashboard(context.Background(), domainauth.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"custom": "found"}, data.Widgets)
}
