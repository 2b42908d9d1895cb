package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/accredly/console-api/internal/domain/notification"
	"github.com/accredly/console-api/internal/service"
)

var errInvalidID = errors.New("id must be a positive integer")

// NotificationHandlers provides HTTP handlers for the notification feed.
type NotificationHandlers struct {
	Feed   *service.NotificationManager
	Logger *slog.Logger
}

// feedBody is the wire form of a service.FeedState.
type feedBody struct {
	Data        []notification.Notification `json:"data"`
	UnreadCount int                         `json:"unread_count"`
	Loading     bool                        `json:"loading"`
	Error       string                      `json:"error,omitempty"`
	Meta        notification.Page           `json:"meta"`
}

func toFeedBody(state service.FeedState) feedBody {
	return feedBody{
		Data:        state.Items,
		UnreadCount: state.UnreadCount,
		Loading:     state.Loading,
		Error:       state.Err,
		Meta:        state.Page,
	}
}

// List handles GET /notifications. Query parameters page, per_page, and
// unread trigger a fetch; the (possibly stale-on-error) state is returned.
func (h *NotificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.Feed.EnsureInitial(r.Context())

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if page > 0 || perPage > 0 {
		filters := notification.ListFilters{
			UnreadOnly: q.Get("unread") == "1",
			Type:       q.Get("type"),
		}
		h.Feed.Fetch(r.Context(), filters, page, perPage)
	}

	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	h.Feed.FetchUnreadCount(r.Context())
	WriteJSON(w, http.StatusOK, map[string]int{"unread_count": h.Feed.State().UnreadCount})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Feed.MarkRead(r.Context(), id); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "mark_read_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// MarkUnread handles POST /notifications/{id}/unread.
func (h *NotificationHandlers) MarkUnread(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Feed.MarkUnread(r.Context(), id); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "mark_unread_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Feed.MarkAllRead(r.Context()); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "mark_all_read_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Feed.Delete(r.Context(), id); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "delete_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// DeleteRead handles DELETE /notifications/read.
func (h *NotificationHandlers) DeleteRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Feed.DeleteAllRead(r.Context()); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "delete_read_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, toFeedBody(h.Feed.State()))
}

// pathID extracts the {id} path value. Returns false after writing a 400
// when the value is not a positive integer.
func (h *NotificationHandlers) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errInvalidID})
		return 0, false
	}
	return id, true
}
