package api

// Package api contains simple hand-written test doubles for the remote API
// ports. These are lightweight and suitable for unit tests without codegen.
// Call counters use atomics so tests can assert how many network round trips
// happened under concurrent access.

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/domain/notification"
	"github.com/accredly/console-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI         = (*MockAuthAPI)(nil)
	_ ports.NotificationAPI = (*MockNotificationAPI)(nil)
	_ ports.ResourceAPI     = (*MockResourceAPI)(nil)
)

// MockAuthAPI simulates the remote authentication surface with
// deterministic defaults. Set a Func field to override a single method.
type MockAuthAPI struct {
	ProfileFunc        func(ctx context.Context) (domainauth.User, error)
	LoginFunc          func(ctx context.Context, creds ports.Credentials) (ports.AuthPayload, error)
	RegisterFunc       func(ctx context.Context, reg ports.Registration) (ports.AuthPayload, error)
	LogoutFunc         func(ctx context.Context) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, input ports.PasswordReset) error

	// Deterministic values for predictable testing
	DefaultToken string
	DefaultUser  domainauth.User

	// Call counters for asserting network traffic
	ProfileCalls        atomic.Int32
	LoginCalls          atomic.Int32
	RegisterCalls       atomic.Int32
	LogoutCalls         atomic.Int32
	ForgotPasswordCalls atomic.Int32
	ResetPasswordCalls  atomic.Int32
}

// NewMockAuthAPI creates a MockAuthAPI with sensible defaults.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{
		DefaultToken: "mock-token-1",
		DefaultUser: domainauth.User{
			ID:     1,
			Name:   "Mock User",
			Email:  "mock.user@example.com",
			Role:   domainauth.RoleInstructor,
			Status: domainauth.StatusActive,
		},
	}
}

func (m *MockAuthAPI) Profile(ctx context.Context) (domainauth.User, error) {
	m.ProfileCalls.Add(1)
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return m.DefaultUser, nil
}

func (m *MockAuthAPI) Login(ctx context.Context, creds ports.Credentials) (ports.AuthPayload, error) {
	m.LoginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return ports.AuthPayload{Token: m.DefaultToken, User: m.DefaultUser}, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, reg ports.Registration) (ports.AuthPayload, error) {
	m.RegisterCalls.Add(1)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	user := m.DefaultUser
	user.Name = reg.Name
	user.Email = reg.Email
	user.Role = reg.Role
	return ports.AuthPayload{Token: m.DefaultToken, User: user}, nil
}

func (m *MockAuthAPI) Logout(ctx context.Context) error {
	m.LogoutCalls.Add(1)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthAPI) ForgotPassword(ctx context.Context, email string) error {
	m.ForgotPasswordCalls.Add(1)
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthAPI) ResetPassword(ctx context.Context, input ports.PasswordReset) error {
	m.ResetPasswordCalls.Add(1)
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, input)
	}
	return nil
}

// MockNotificationAPI simulates the remote notification surface.
type MockNotificationAPI struct {
	ListFunc        func(ctx context.Context, filters notification.ListFilters, page, perPage int) (notification.ListResult, error)
	UnreadCountFunc func(ctx context.Context) (int, error)
	MarkReadFunc    func(ctx context.Context, id int64) error
	MarkUnreadFunc  func(ctx context.Context, id int64) error
	MarkAllReadFunc func(ctx context.Context) error
	DeleteFunc      func(ctx context.Context, id int64) error
	DeleteReadFunc  func(ctx context.Context) error

	// DefaultResult is returned by ListNotifications when ListFunc is nil.
	DefaultResult notification.ListResult

	ListCalls        atomic.Int32
	UnreadCountCalls atomic.Int32
	MarkReadCalls    atomic.Int32
	MarkUnreadCalls  atomic.Int32
	MarkAllReadCalls atomic.Int32
	DeleteCalls      atomic.Int32
	DeleteReadCalls  atomic.Int32
}

// NewMockNotificationAPI creates a MockNotificationAPI preloaded with a
// small deterministic feed: two unread items and one read item.
func NewMockNotificationAPI() *MockNotificationAPI {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	readAt := now.Add(-time.Hour)
	items := []notification.Notification{
		{ID: 1, Title: "Document expiring", Message: "Certificate A expires soon", CreatedAt: now},
		{ID: 2, Title: "New registration", Message: "Jordan Smith registered", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 3, Title: "Welcome", Message: "Account created", IsRead: true, ReadAt: &readAt, CreatedAt: now.Add(-48 * time.Hour)},
	}
	return &MockNotificationAPI{
		DefaultResult: notification.ListResult{
			Items:       items,
			UnreadCount: 2,
			Page: notification.Page{
				CurrentPage: 1,
				LastPage:    1,
				PerPage:     15,
				Total:       len(items),
			},
		},
	}
}

func (m *MockNotificationAPI) ListNotifications(ctx context.Context, filters notification.ListFilters, page, perPage int) (notification.ListResult, error) {
	m.ListCalls.Add(1)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters, page, perPage)
	}
	return m.DefaultResult, nil
}

func (m *MockNotificationAPI) UnreadCount(ctx context.Context) (int, error) {
	m.UnreadCountCalls.Add(1)
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx)
	}
	return m.DefaultResult.UnreadCount, nil
}

func (m *MockNotificationAPI) MarkNotificationRead(ctx context.Context, id int64) error {
	m.MarkReadCalls.Add(1)
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id)
	}
	return nil
}

func (m *MockNotificationAPI) MarkNotificationUnread(ctx context.Context, id int64) error {
	m.MarkUnreadCalls.Add(1)
	if m.MarkUnreadFunc != nil {
		return m.MarkUnreadFunc(ctx, id)
	}
	return nil
}

func (m *MockNotificationAPI) MarkAllNotificationsRead(ctx context.Context) error {
	m.MarkAllReadCalls.Add(1)
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx)
	}
	return nil
}

func (m *MockNotificationAPI) DeleteNotification(ctx context.Context, id int64) error {
	m.DeleteCalls.Add(1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockNotificationAPI) DeleteReadNotifications(ctx context.Context) error {
	m.DeleteReadCalls.Add(1)
	if m.DeleteReadFunc != nil {
		return m.DeleteReadFunc(ctx)
	}
	return nil
}

// MockResourceAPI simulates the opaque JSON resource surface.
type MockResourceAPI struct {
	FetchResourceFunc func(ctx context.Context, path string) (json.RawMessage, error)

	// Responses maps request paths to raw bodies when FetchResourceFunc is nil.
	Responses map[string]json.RawMessage

	FetchResourceCalls atomic.Int32
}

// NewMockResourceAPI creates an empty MockResourceAPI; unknown paths
// return an empty JSON object.
func NewMockResourceAPI() *MockResourceAPI {
	return &MockResourceAPI{Responses: map[string]json.RawMessage{}}
}

func (m *MockResourceAPI) FetchResource(ctx context.Context, path string) (json.RawMessage, error) {
	m.FetchResourceCalls.Add(1)
	if m.FetchResourceFunc != nil {
		return m.FetchResourceFunc(ctx, path)
	}
	if body, ok := m.Responses[path]; ok {
		return body, nil
	}
	return json.RawMessage(`{}`), nil
}
