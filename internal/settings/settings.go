// Package settings stores UI preferences (sidebar state, expanded menu
// groups) behind an explicit repository so consumers never reach for
// ambient storage. Production uses the durable Redis scope; tests use the
// in-memory store.
package settings

import (
	"context"
	"encoding/json"

	apperrors "github.com/accredly/console-api/internal/errors"
	"github.com/accredly/console-api/internal/ports"
)

// Preference keys. Plain key/value with no versioning or migration.
const (
	keySidebarOpen      = "sidebar_open"
	keySidebarCollapsed = "sidebar_collapsed"
	keyExpandedGroups   = "expanded_menu_groups"
)

// Repository reads and writes UI preferences.
type Repository interface {
	SidebarOpen(ctx context.Context) (bool, error)
	SetSidebarOpen(ctx context.Context, open bool) error

	SidebarCollapsed(ctx context.Context) (bool, error)
	SetSidebarCollapsed(ctx context.Context, collapsed bool) error

	ExpandedMenuGroups(ctx context.Context) (map[string]bool, error)
	SetExpandedMenuGroups(ctx context.Context, groups map[string]bool) error

	// ResetSidebar removes both sidebar keys. Called on logout.
	ResetSidebar(ctx context.Context) error
}

// KVRepository implements Repository over any key/value scope.
type KVRepository struct {
	kv ports.KeyValue
}

var _ Repository = (*KVRepository)(nil)

// NewKVRepository creates a Repository backed by kv.
func NewKVRepository(kv ports.KeyValue) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) SidebarOpen(ctx context.Context) (bool, error) {
	// Sidebar defaults to open when no preference is stored.
	return r.getBool(ctx, keySidebarOpen, true)
}

func (r *KVRepository) SetSidebarOpen(ctx context.Context, open bool) error {
	return r.setBool(ctx, keySidebarOpen, open)
}

func (r *KVRepository) SidebarCollapsed(ctx context.Context) (bool, error) {
	return r.getBool(ctx, keySidebarCollapsed, false)
}

func (r *KVRepository) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	return r.setBool(ctx, keySidebarCollapsed, collapsed)
}

func (r *KVRepository) ExpandedMenuGroups(ctx context.Context) (map[string]bool, error) {
	raw, ok, err := r.kv.Get(ctx, keyExpandedGroups)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return map[string]bool{}, nil
	}

	var groups map[string]bool
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode expanded menu groups")
	}
	return groups, nil
}

func (r *KVRepository) SetExpandedMenuGroups(ctx context.Context, groups map[string]bool) error {
	raw, err := json.Marshal(groups)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode expanded menu groups")
	}
	return r.kv.Set(ctx, keyExpandedGroups, string(raw))
}

func (r *KVRepository) ResetSidebar(ctx context.Context) error {
	if err := r.kv.Delete(ctx, keySidebarOpen); err != nil {
		return err
	}
	return r.kv.Delete(ctx, keySidebarCollapsed)
}

func (r *KVRepository) getBool(ctx context.Context, key string, fallback bool) (bool, error) {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return raw == "true" || raw == "1", nil
}

func (r *KVRepository) setBool(ctx context.Context, key string, v bool) error {
	raw := "false"
	if v {
		raw = "true"
	}
	return r.kv.Set(ctx, key, raw)
}
