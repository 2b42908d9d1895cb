package notification

// Package notification contains domain-level types for the in-app
// notification feed.

import "time"

// Notification is a single feed entry as served by the accreditation API.
// Server order is preserved in lists; unread-first grouping is a view
// concern, never a storage concern.
type Notification struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Page holds list pagination metadata.
type Page struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// ListFilters narrows a feed fetch. Zero value means no filtering.
type ListFilters struct {
	// UnreadOnly limits the list to unread entries.
	UnreadOnly bool
	// Type filters by notification type when the server supports it.
	Type string
}

// ListResult is a fetched page of the feed plus the server's unread counter.
type ListResult struct {
	Items       []Notification
	UnreadCount int
	Page        Page
}

// CountUnread returns the number of unread items in the slice.
func CountUnread(items []Notification) int {
	n := 0
	for _, item := range items {
		if !item.IsRead {
			n++
		}
	}
	return n
}
