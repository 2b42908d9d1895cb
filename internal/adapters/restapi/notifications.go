package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/accredly/console-api/internal/domain/notification"
)

// listResponse is the wire shape of the notifications list endpoint.
// Meta is optional; the notification manager fills in defaults for
// whatever the server omits.
type listResponse struct {
	Data        []notification.Notification `json:"data"`
	Meta        *notification.Page          `json:"meta"`
	UnreadCount int                         `json:"unread_count"`
}

// unreadCountResponse is the wire shape of the unread-count endpoint.
type unreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// ListNotifications fetches a page of the feed.
func (c *Client) ListNotifications(ctx context.Context, filters notification.ListFilters, page, perPage int) (notification.ListResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if filters.UnreadOnly {
		q.Set("unread", "1")
	}
	if filters.Type != "" {
		q.Set("type", filters.Type)
	}

	var resp listResponse
	if err := c.get(ctx, "/api/notifications?"+q.Encode(), &resp); err != nil {
		return notification.ListResult{}, err
	}

	result := notification.ListResult{
		Items:       resp.Data,
		UnreadCount: resp.UnreadCount,
	}
	if resp.Meta != nil {
		result.Page = *resp.Meta
	}
	return result, nil
}

// UnreadCount fetches only the unread counter.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp unreadCountResponse
	if err := c.get(ctx, "/api/notifications/unread-count", &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil)
}

// MarkNotificationUnread marks one notification unread.
func (c *Client) MarkNotificationUnread(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/notifications/%d/unread", id), nil, nil)
}

// MarkAllNotificationsRead marks the entire feed read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/api/notifications/read-all", nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", id), nil, nil)
}

// DeleteReadNotifications removes every read notification.
func (c *Client) DeleteReadNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/read", nil, nil)
}
