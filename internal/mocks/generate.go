// Package mocks provides mock implementations for testing the console gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockKV := mocks.NewMockKeyValue(ctrl)
//	mockKV.EXPECT().Get(gomock.Any(), "auth_token").Return("tok", true, nil)
package mocks

// Generate mock for KeyValue interface from internal/ports.
// This creates MockKeyValue with methods for all KeyValue interface methods:
// Get, Set, Delete, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_mock.go github.com/accredly/console-api/internal/ports KeyValue

// Generate mock for AuthAPI interface from internal/ports.
// This creates MockAuthAPI with methods for all AuthAPI interface methods:
// Profile, Login, Register, Logout, ForgotPassword, ResetPassword
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/accredly/console-api/internal/ports AuthAPI

// Generate mock for NotificationAPI interface from internal/ports.
// This creates MockNotificationAPI with methods for all NotificationAPI interface methods:
// ListNotifications, UnreadCount, MarkNotificationRead, MarkNotificationUnread,
// MarkAllNotificationsRead, DeleteNotification, DeleteReadNotifications
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notification_api_mock.go github.com/accredly/console-api/internal/ports NotificationAPI

// Generate mock for ResourceAPI interface from internal/ports.
// This creates MockResourceAPI with methods for all ResourceAPI interface methods:
// FetchResource
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=resource_api_mock.go github.com/accredly/console-api/internal/ports ResourceAPI
