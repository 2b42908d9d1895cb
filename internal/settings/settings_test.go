package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accredly/console-api/internal/adapters/memkv"
)

func TestKVRepository_SidebarDefaults(t *testing.T) {
	repo := NewKVRepository(memkv.New())
	ctx := context.Background()

	open, err := repo.SidebarOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open, "sidebar defaults to open")

	collapsed, err := repo.SidebarCollapsed(ctx)
	require.NoError(t, err)
	assert.False(t, collapsed)
}

func TestKVRepository_SidebarRoundTrip(t *testing.T) {
	repo := NewKVRepository(memkv.New())
	ctx := context.Background()

	require.NoError(t, repo.SetSidebarOpen(ctx, false))
	require.NoError(t, repo.SetSidebarCollapsed(ctx, true))

	open, err := repo.SidebarOpen(ctx)
	require.NoError(t, err)
	assert.False(t, open)

	collapsed, err := repo.SidebarCollapsed(ctx)
	require.NoError(t, err)
	assert.True(t, collapsed)
}

func TestKVRepository_ResetSidebar(t *testing.T) {
	kv := memkv.New()
	repo := NewKVRepository(kv)
	ctx := context.Background()

	require.NoError(t, repo.SetSidebarOpen(ctx, false))
	require.NoError(t, repo.SetSidebarCollapsed(ctx, true))
	require.NoError(t, repo.SetExpandedMenuGroups(ctx, map[string]bool{"accs": true}))

	require.NoError(t, repo.ResetSidebar(ctx))

	open, err := repo.SidebarOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open, "back to the default after reset")

	// Reset targets the sidebar keys only.
	groups, err := repo.ExpandedMenuGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"accs": true}, groups)
}

func TestKVRepository_ExpandedMenuGroups(t *testing.T) {
	repo := NewKVRepository(memkv.New())
	ctx := context.Background()

	groups, err := repo.ExpandedMenuGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups, "empty map when nothing is stored")

	want := map[string]bool{"accs": true, "reports": false}
	require.NoError(t, repo.SetExpandedMenuGroups(ctx, want))

	got, err := repo.ExpandedMenuGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestKVRepository_ExpandedMenuGroups_CorruptValue(t *testing.T) {
	kv := memkv.New()
	repo := NewKVRepository(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "expanded_menu_groups", "not-json"))

	_, err := repo.ExpandedMenuGroups(ctx)
	require.Error(t, err)
}
