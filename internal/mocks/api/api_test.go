package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accredly/console-api/internal/domain/notification"
	"github.com/accredly/console-api/internal/ports"
)

func TestMockAuthAPI_Defaults(t *testing.T) {
	mock := NewMockAuthAPI()
	ctx := context.Background()

	payload, err := mock.Login(ctx, ports.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", payload.Token)
	assert.Equal(t, "mock.user@example.com", payload.User.Email)

	user, err := mock.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload.User, user)

	assert.Equal(t, int32(1), mock.LoginCalls.Load())
	assert.Equal(t, int32(1), mock.ProfileCalls.Load())
}

func TestMockAuthAPI_FuncOverride(t *testing.T) {
	mock := NewMockAuthAPI()
	wantErr := errors.New("boom")
	mock.LoginFunc = func(ctx context.Context, creds ports.Credentials) (ports.AuthPayload, error) {
		return ports.AuthPayload{}, wantErr
	}

	_, err := mock.Login(context.Background(), ports.Credentials{})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, int32(1), mock.LoginCalls.Load())
}

func TestMockNotificationAPI_DefaultFeed(t *testing.T) {
	mock := NewMockNotificationAPI()

	result, err := mock.ListNotifications(context.Background(), notification.ListFilters{}, 1, 15)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, 2, result.UnreadCount)
	assert.False(t, result.Items[0].IsRead)
	assert.True(t, result.Items[2].IsRead)
}
