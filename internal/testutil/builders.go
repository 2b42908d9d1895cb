package testutil

import (
	"time"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/domain/notification"
)

// UserBuilder provides a fluent interface for building User objects for testing.
type UserBuilder struct {
	user domainauth.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: domainauth.User{
			ID:     1,
			Name:   "Test User",
			Email:  "test.user@example.com",
			Role:   domainauth.RoleInstructor,
			Status: domainauth.StatusActive,
		},
	}
}

// WithID sets the user ID.
func (b *UserBuilder) WithID(id int64) *UserBuilder {
	b.user.ID = id
	return b
}

// WithName sets the user name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithEmail sets the user email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithRole sets the user role.
func (b *UserBuilder) WithRole(role domainauth.Role) *UserBuilder {
	b.user.Role = role
	return b
}

// WithStatus sets the account status.
func (b *UserBuilder) WithStatus(status domainauth.Status) *UserBuilder {
	b.user.Status = status
	return b
}

// Build returns the constructed User.
func (b *UserBuilder) Build() domainauth.User {
	return b.user
}

// NotificationBuilder provides a fluent interface for building Notification
// objects for testing.
type NotificationBuilder struct {
	n notification.Notification
}

// NewNotification creates a new NotificationBuilder with sensible defaults:
// an unread notification created at the fixed test time.
func NewNotification(id int64) *NotificationBuilder {
	return &NotificationBuilder{
		n: notification.Notification{
			ID:        id,
			Title:     "Test notification",
			Message:   "Something happened",
			CreatedAt: TestTime(),
		},
	}
}

// WithTitle sets the title.
func (b *NotificationBuilder) WithTitle(title string) *NotificationBuilder {
	b.n.Title = title
	return b
}

// WithMessage sets the message body.
func (b *NotificationBuilder) WithMessage(message string) *NotificationBuilder {
	b.n.Message = message
	return b
}

// Read marks the notification as read at the given time.
func (b *NotificationBuilder) Read(at time.Time) *NotificationBuilder {
	b.n.IsRead = true
	b.n.ReadAt = &at
	return b
}

// CreatedAt sets the creation timestamp.
func (b *NotificationBuilder) CreatedAt(at time.Time) *NotificationBuilder {
	b.n.CreatedAt = at
	return b
}

// Build returns the constructed Notification.
func (b *NotificationBuilder) Build() notification.Notification {
	return b.n
}

// Feed builds a notification list with the given number of unread items
// followed by the given number of read items, IDs ascending from 1.
func Feed(unread, read int) []notification.Notification {
	items := make([]notification.Notification, 0, unread+read)
	id := int64(1)
	for i := 0; i < unread; i++ {
		items = append(items, NewNotification(id).Build())
		id++
	}
	for i := 0; i < read; i++ {
		items = append(items, NewNotification(id).Read(TestTime().Add(-time.Hour)).Build())
		id++
	}
	return items
}
