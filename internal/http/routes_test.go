package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accredly/console-api/internal/adapters/memkv"
	domainauth "github.com/accredly/console-api/internal/domain/auth"
	mockapi "github.com/accredly/console-api/internal/mocks/api"
	"github.com/accredly/console-api/internal/ports"
	"github.com/accredly/console-api/internal/service"
	"github.com/accredly/console-api/internal/settings"
	"github.com/accredly/console-api/internal/tokenstore"
)

type routerFixture struct {
	handler  http.Handler
	auth     *mockapi.MockAuthAPI
	feed     *mockapi.MockNotificationAPI
	resource *mockapi.MockResourceAPI
	tokens   *tokenstore.Store
}

func newRouterFixture() *routerFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authAPI := mockapi.NewMockAuthAPI()
	feedAPI := mockapi.NewMockNotificationAPI()
	resourceAPI := mockapi.NewMockResourceAPI()

	durable := memkv.New()
	tokens := tokenstore.New(durable, memkv.New())
	prefs := settings.NewKVRepository(durable)

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		API:    authAPI,
		Tokens: tokens,
		Prefs:  prefs,
		Logger: logger,
	})
	notifications := service.NewNotificationManager(service.NotificationManagerOptions{
		API:    feedAPI,
		Logger: logger,
	})
	dashboards := service.NewDashboardService(service.DashboardServiceOptions{
		API:    resourceAPI,
		Logger: logger,
	})

	handler := NewRouter(RouterServices{
		Sessions:      sessions,
		Notifications: notifications,
		Dashboards:    dashboards,
		Prefs:         prefs,
		Logger:        logger,
	})
	return &routerFixture{
		handler:  handler,
		auth:     authAPI,
		feed:     feedAPI,
		resource: resourceAPI,
		tokens:   tokens,
	}
}

func (f *routerFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// login authenticates the fixture session through the gateway.
func (f *routerFixture) login(t *testing.T) {
	t.Helper()
	rec := f.do(http.MethodPost, PathLogin, loginRequest{Email: "a@b.c", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code, "login must succeed: %s", rec.Body.String())
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = f.do(http.MethodHead, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_RootRedirectsToDashboard(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))
}

func TestRouter_GuardRedirectsAnonymousToLogin(t *testing.T) {
	f := newRouterFixture()

	for _, path := range []string{PathDashboard, PathProfile, "/notifications", "/settings/sidebar"} {
		rec := f.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		assert.Equal(t, PathLogin, rec.Header().Get("Location"), "path %s", path)
	}
}

func TestRouter_LoginThenDashboard(t *testing.T) {
	f := newRouterFixture()
	f.resource.Responses["/api/instructor/dashboard"] =
		json.RawMessage(`{"stats":{"assigned_courses":3,"certifications":1}}`)

	f.login(t)

	rec := f.do(http.MethodGet, PathDashboard, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Role    domainauth.Role `json:"role"`
		Widgets map[string]any  `json:"widgets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, domainauth.RoleInstructor, data.Role)
	assert.Equal(t, float64(3), data.Widgets["assigned_courses"])
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	f := newRouterFixture()
	f.auth.LoginFunc = func(context.Context, ports.Credentials) (ports.AuthPayload, error) {
		return ports.AuthPayload{}, &routeTestAPIError{
			status: http.StatusUnprocessableEntity,
			msg:    "Invalid credentials",
		}
	}

	rec := f.do(http.MethodPost, PathLogin, loginRequest{Email: "a@b.c", Password: "wrong"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body authResultBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid credentials", body.Error)
}

func TestRouter_Login_MalformedBody(t *testing.T) {
	f := newRouterFixture()

	req := httptest.NewRequest(http.MethodPost, PathLogin, bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_PendingACCAdminFlow(t *testing.T) {
	f := newRouterFixture()
	f.auth.DefaultUser.Role = domainauth.RoleACCAdmin
	f.auth.DefaultUser.Status = domainauth.StatusPending
	f.login(t)

	// Guarded screens bounce to the interstitial.
	rec := f.do(http.MethodGet, PathDashboard, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathPendingAccount, rec.Header().Get("Location"))

	// The interstitial itself lets pending accounts through.
	rec = f.do(http.MethodGet, PathPendingAccount, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending-account")
}

func TestRouter_RoleAreaMismatchRedirectsUnauthorized(t *testing.T) {
	f := newRouterFixture()
	f.login(t) // default user is an active instructor

	rec := f.do(http.MethodGet, "/admin/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathUnauthorized, rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, PathUnauthorized, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RoleAreaAndResourceProxy(t *testing.T) {
	f := newRouterFixture()
	f.login(t)
	f.resource.Responses["/api/instructor/dashboard"] = json.RawMessage(`{"stats":{}}`)
	f.resource.Responses["/api/instructor/courses"] = json.RawMessage(`[{"id":1}]`)

	rec := f.do(http.MethodGet, "/instructor/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/instructor/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())
}

func TestRouter_SessionEndpoint(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Authenticated bool `json:"authenticated"`
		Loading       bool `json:"loading"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Authenticated)
	assert.False(t, body.Loading, "the check has completed by response time")
}

func TestRouter_LogoutAlwaysSucceeds(t *testing.T) {
	f := newRouterFixture()
	f.login(t)
	f.auth.LogoutFunc = func(context.Context) error {
		return &routeTestAPIError{status: http.StatusBadGateway, msg: "remote down"}
	}

	rec := f.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	// Session is gone: the dashboard redirects to login again.
	rec = f.do(http.MethodGet, PathDashboard, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathLogin, rec.Header().Get("Location"))
}

func TestRouter_NotificationsListAndMutations(t *testing.T) {
	f := newRouterFixture()
	f.login(t)

	rec := f.do(http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body feedBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, 2, body.UnreadCount)

	rec = f.do(http.MethodPost, "/notifications/1/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.UnreadCount)

	rec = f.do(http.MethodPost, "/notifications/abc/read", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.feed.DeleteFunc = func(context.Context, int64) error {
		return &routeTestAPIError{status: http.StatusBadGateway, msg: "remote down"}
	}
	rec = f.do(http.MethodDelete, "/notifications/2", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouter_SettingsRoundTrip(t *testing.T) {
	f := newRouterFixture()
	f.login(t)

	rec := f.do(http.MethodGet, "/settings/sidebar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"open":true,"collapsed":false}`, rec.Body.String())

	rec = f.do(http.MethodPut, "/settings/sidebar", sidebarBody{Open: false, Collapsed: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/settings/sidebar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"open":false,"collapsed":true}`, rec.Body.String())

	rec = f.do(http.MethodPut, "/settings/menu-groups", map[string]bool{"accs": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/settings/menu-groups", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accs":true}`, rec.Body.String())
}

func TestRouter_LoginPageMarkers(t *testing.T) {
	f := newRouterFixture()

	for _, path := range []string{PathLogin, PathRegister, PathResetPassword} {
		rec := f.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.Contains(t, rec.Body.String(), path[1:])
	}
}

// routeTestAPIError mimics the structured error shape of the REST adapter.
type routeTestAPIError struct {
	status int
	msg    string
	fields map[string][]string
}

func (e *routeTestAPIError) Error() string                    { return e.msg }
func (e *routeTestAPIError) StatusCode() int                  { return e.status }
func (e *routeTestAPIError) Message() string                  { return e.msg }
func (e *routeTestAPIError) FieldErrors() map[string][]string { return e.fields }
