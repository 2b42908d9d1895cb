package ports

// Package ports defines interfaces (hexagonal ports) for storage and
// remote-API behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"encoding/json"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/domain/notification"
)

// KeyValue is a plain string key/value store. Two scopes exist in the
// application: a durable scope surviving restarts and a session scope
// living only as long as the process.
type KeyValue interface {
	// Get returns the value for key, or "" and false when absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key in the scope.
	Clear(ctx context.Context) error
}

// Credentials carries a login request.
type Credentials struct {
	Email    string
	Password string
}

// Registration carries a register request.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 domainauth.Role
}

// AuthPayload is the success body of login/register: an opaque bearer
// token plus the authenticated user.
type AuthPayload struct {
	Token string
	User  domainauth.User
}

// AuthAPI is the remote authentication surface of the accreditation API.
type AuthAPI interface {
	// Profile fetches the current user for the bearer token in flight.
	Profile(ctx context.Context) (domainauth.User, error)

	Login(ctx context.Context, creds Credentials) (AuthPayload, error)
	Register(ctx context.Context, reg Registration) (AuthPayload, error)

	// Logout invalidates the bearer token server-side.
	Logout(ctx context.Context) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input PasswordReset) error
}

// PasswordReset groups parameters for completing a password reset.
type PasswordReset struct {
	Token                string
	Email                string
	Password             string
	PasswordConfirmation string
}

// NotificationAPI is the remote notification surface.
type NotificationAPI interface {
	ListNotifications(ctx context.Context, filters notification.ListFilters, page, perPage int) (notification.ListResult, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkNotificationUnread(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int64) error
	DeleteReadNotifications(ctx context.Context) error
}

// ResourceAPI exposes the per-role dashboard/profile/resource endpoints,
// treated as opaque JSON providers.
type ResourceAPI interface {
	// FetchResource GETs path relative to the API base and returns the raw body.
	FetchResource(ctx context.Context, path string) (json.RawMessage, error)
}
