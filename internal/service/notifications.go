package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/accredly/console-api/internal/domain/notification"
	"github.com/accredly/console-api/internal/ports"
)

// DefaultPerPage is the feed page size used when callers pass zero.
const DefaultPerPage = 15

// FeedState is a point-in-time copy of the notification feed. The local
// list is a best-effort cache: server responses are authoritative and a
// full fetch always overwrites local patches.
type FeedState struct {
	Items       []notification.Notification
	UnreadCount int
	Loading     bool
	Err         string
	Page        notification.Page
}

// NotificationManagerOptions groups dependencies for NotificationManager.
type NotificationManagerOptions struct {
	API    ports.NotificationAPI
	Logger *slog.Logger
}

// NotificationManager owns the notification list, unread counter, and
// pagination. Fetch failures are absorbed into state; mutation failures
// are returned to the caller, who decides on UI feedback.
type NotificationManager struct {
	api    ports.NotificationAPI
	logger *slog.Logger

	// fetching is the in-flight guard: concurrent fetches are skipped, not
	// queued.
	fetching atomic.Bool
	// initialized latches the one-shot initial fetch.
	initialized atomic.Bool

	mu          sync.Mutex
	items       []notification.Notification
	unreadCount int
	loading     bool
	errMsg      string
	page        notification.Page
}

// NewNotificationManager constructs a NotificationManager.
func NewNotificationManager(opts NotificationManagerOptions) *NotificationManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationManager{
		api:    opts.API,
		logger: logger,
		page:   notification.Page{CurrentPage: 1, PerPage: DefaultPerPage},
	}
}

// State returns a copy of the current feed state.
func (m *NotificationManager) State() FeedState {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]notification.Notification, len(m.items))
	copy(items, m.items)
	return FeedState{
		Items:       items,
		UnreadCount: m.unreadCount,
		Loading:     m.loading,
		Err:         m.errMsg,
		Page:        m.page,
	}
}

// EnsureInitial fetches page 1 exactly once, independent of any caller's
// own fetch triggers.
func (m *NotificationManager) EnsureInitial(ctx context.Context) {
	if !m.initialized.CompareAndSwap(false, true) {
		return
	}
	m.Fetch(ctx, notification.ListFilters{}, 1, DefaultPerPage)
}

// Fetch replaces the list, unread counter, and pagination from the server.
// A call while another fetch is outstanding is skipped entirely. On
// failure the error is recorded and the stale list is kept: present-but-
// stale data beats a blanked feed.
func (m *NotificationManager) Fetch(ctx context.Context, filters notification.ListFilters, page, perPage int) {
	if !m.fetching.CompareAndSwap(false, true) {
		m.logger.Debug("notification fetch already in flight, skipping")
		return
	}
	defer m.fetching.Store(false)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	m.mu.Lock()
	m.loading = true
	m.errMsg = ""
	m.mu.Unlock()

	result, err := m.api.ListNotifications(ctx, filters, page, perPage)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.errMsg = messageFromError(err)
		m.logger.Warn("fetch notifications failed", "error", err)
		return
	}

	m.items = result.Items
	m.unreadCount = result.UnreadCount
	m.page = pageWithDefaults(result.Page, page, perPage, m.page)
}

// Refresh re-issues Fetch for the current page and page size.
func (m *NotificationManager) Refresh(ctx context.Context) {
	m.mu.Lock()
	page, perPage := m.page.CurrentPage, m.page.PerPage
	m.mu.Unlock()
	m.Fetch(ctx, notification.ListFilters{}, page, perPage)
}

// FetchUnreadCount updates only the unread counter. Failures are
/// swallowed: the counter is a non-critical signal.
func (m *NotificationManager) FetchUnreadCount(ctx context.Context) {
	count, err := m.api.UnreadCount(ctx)
	if err != nil {
		m.logger.Debug("fetch unread count failed", "error", err)
		return
	}
	m.mu.Lock()
	m.unreadCount = count
	m.mu.Unlock()
}

// MarkRead marks one notification read, patching local state only after
// the server confirms. The unread counter is decremented unconditionally
// on success and clamped at zero; prior IsRead is not consulted.
func (m *NotificationManager) MarkRead(ctx context.Context, id int64) error {
	if err := m.api.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsRead = true
			m.items[i].ReadAt = &now
			break
		}
	}
	m.unreadCount = clampZero(m.unreadCount - 1)
	return nil
}

// MarkUnread marks one notification unread, patching local state only
// after the server confirms.
func (m *NotificationManager) MarkUnread(ctx context.Context, id int64) error {
	if err := m.api.MarkNotificationUnread(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsRead = false
			m.items[i].ReadAt = nil
			break
		}
	}
	m.unreadCount++
	return nil
}

// MarkAllRead marks the entire feed read. ReadAt is not set per item,
// unlike the single-item path.
func (m *NotificationManager) MarkAllRead(ctx context.Context) error {
	if err := m.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		m.items[i].IsRead = true
	}
	m.unreadCount = 0
	return nil
}

// Delete removes one notification. The was-it-unread check and the list
// filtering run against the same snapshot under one lock, so the counter
// cannot race the removal.
func (m *NotificationManager) Delete(ctx context.Context, id int64) error {
	if err := m.api.DeleteNotification(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	wasUnread := false
	for _, item := range m.items {
		if item.ID == id {
			wasUnread = !item.IsRead
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	if wasUnread {
		m.unreadCount = clampZero(m.unreadCount - 1)
	}
	return nil
}

// DeleteAllRead removes every read notification. The unread counter is
// untouched: read items contribute zero to it by definition.
func (m *NotificationManager) DeleteAllRead(ctx context.Context) error {
	if err := m.api.DeleteReadNotifications(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, item := range m.items {
		if !item.IsRead {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

// pageWithDefaults fills missing response metadata from the requested
// page/perPage or the prior pagination state.
func pageWithDefaults(got notification.Page, requestedPage, requestedPerPage int, prior notification.Page) notification.Page {
	out := got
	if out.CurrentPage == 0 {
		out.CurrentPage = requestedPage
	}
	if out.PerPage == 0 {
		out.PerPage = requestedPerPage
	}
	if out.LastPage == 0 {
		out.LastPage = prior.LastPage
	}
	if out.Total == 0 && got.LastPage == 0 {
		out.Total = prior.Total
	}
	return out
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// messageFromError resolves a human message from a remote error, using
// the structured chain for API errors and a generic fallback otherwise.
func messageFromError(err error) string {
	var apiErr apiFailure
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return fallbackErrorMessage
}
