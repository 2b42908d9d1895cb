package restapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accredly/console-api/internal/domain/notification"
)

func TestClient_ListNotifications_QueryAndParsing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("per_page"))
		assert.Equal(t, "1", q.Get("unread"))
		assert.Equal(t, "system", q.Get("type"))

		_, _ = w.Write([]byte(`{
			"data": [
				{"id": 5, "title": "Expiring", "message": "Cert expiring", "is_read": false, "created_at": "2026-03-01T12:00:00Z"},
				{"id": 4, "title": "Welcome", "message": "Hi", "is_read": true, "read_at": "2026-02-28T09:00:00Z", "created_at": "2026-02-27T12:00:00Z"}
			],
			"meta": {"current_page": 2, "last_page": 3, "per_page": 10, "total": 27},
			"unread_count": 12
		}`))
	}, staticTokens{token: "tok-1", ok: true})

	result, err := client.ListNotifications(context.Background(),
		notification.ListFilters{UnreadOnly: true, Type: "system"}, 2, 10)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(5), result.Items[0].ID)
	assert.False(t, result.Items[0].IsRead)
	assert.Nil(t, result.Items[0].ReadAt)
	require.NotNil(t, result.Items[1].ReadAt)

	assert.Equal(t, 12, result.UnreadCount)
	assert.Equal(t, notification.Page{CurrentPage: 2, LastPage: 3, PerPage: 10, Total: 27}, result.Page)
}

func TestClient_ListNotifications_MissingMeta(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Empty(t, q.Get("unread"), "no filters means no filter params")
		assert.Empty(t, q.Get("type"))
		_, _ = w.Write([]byte(`{"data": [], "unread_count": 0}`))
	}, staticTokens{token: "tok-1", ok: true})

	result, err := client.ListNotifications(context.Background(), notification.ListFilters{}, 1, 15)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Page, "absent meta leaves pagination zero for the manager to default")
}

func TestClient_NotificationMutationPaths(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var got []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	}, staticTokens{token: "tok-1", ok: true})

	ctx := context.Background()
	require.NoError(t, client.MarkNotificationRead(ctx, 7))
	require.NoError(t, client.MarkNotificationUnread(ctx, 7))
	require.NoError(t, client.MarkAllNotificationsRead(ctx))
	require.NoError(t, client.DeleteNotification(ctx, 7))
	require.NoError(t, client.DeleteReadNotifications(ctx))

	want := []call{
		{http.MethodPost, "/api/notifications/7/read"},
		{http.MethodPost, "/api/notifications/7/unread"},
		{http.MethodPost, "/api/notifications/read-all"},
		{http.MethodDelete, "/api/notifications/7"},
		{http.MethodDelete, "/api/notifications/read"},
	}
	assert.Equal(t, want, got)
}

func TestClient_UnreadCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/unread-count", r.URL.Path)
		_, _ = w.Write([]byte(`{"unread_count": 4}`))
	}, staticTokens{token: "tok-1", ok: true})

	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
