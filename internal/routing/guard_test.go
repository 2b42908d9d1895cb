package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/service"
	"github.com/accredly/console-api/internal/testutil"
)

func snapFor(user *domainauth.User, loading, authenticated bool) *service.Snapshot {
	return &service.Snapshot{User: user, Loading: loading, Authenticated: authenticated}
}

func userWith(role domainauth.Role, status domainauth.Status) *domainauth.User {
	u := testutil.NewUser().WithRole(role).WithStatus(status).Build()
	return &u
}

func TestDecide(t *testing.T) {
	anyRole := GuardParams{}
	adminOnly := GuardParams{AllowedRoles: []domainauth.Role{domainauth.RoleGroupAdmin}}

	tests := []struct {
		name   string
		snap   *service.Snapshot
		params GuardParams
		want   Decision
	}{
		{
			name:   "nil snapshot shows loading",
			snap:   nil,
			params: adminOnly,
			want:   ShowLoading,
		},
		{
			name:   "loading wins over everything",
			snap:   snapFor(userWith(domainauth.RoleInstructor, domainauth.StatusActive), true, true),
			params: adminOnly,
			want:   ShowLoading,
		},
		{
			name:   "unauthenticated redirects to login",
			snap:   snapFor(nil, false, false),
			params: anyRole,
			want:   RedirectLogin,
		},
		{
			name:   "authenticated flag without user still redirects to login",
			snap:   snapFor(nil, false, true),
			params: anyRole,
			want:   RedirectLogin,
		},
		{
			name: "unauthenticated user with wrong role sees login, not unauthorized",
			snap: snapFor(userWith(domainauth.RoleInstructor, domainauth.StatusActive), false, false),
			params: GuardParams{
				AllowedRoles: []domainauth.Role{domainauth.RoleGroupAdmin},
			},
			want: RedirectLogin,
		},
		{
			name:   "pending acc admin redirects to pending",
			snap:   snapFor(userWith(domainauth.RoleACCAdmin, domainauth.StatusPending), false, true),
			params: anyRole,
			want:   RedirectPending,
		},
		{
			name:   "inactive training center admin redirects to pending",
			snap:   snapFor(userWith(domainauth.RoleTrainingCenterAdmin, domainauth.StatusInactive), false, true),
			params: anyRole,
			want:   RedirectPending,
		},
		{
			name: "pending check runs before the role check",
			snap: snapFor(userWith(domainauth.RoleACCAdmin, domainauth.StatusPending), false, true),
			params: GuardParams{
				AllowedRoles: []domainauth.Role{domainauth.RoleGroupAdmin},
			},
			want: RedirectPending,
		},
		{
			name:   "allow-pending lets an unapproved account through",
			snap:   snapFor(userWith(domainauth.RoleACCAdmin, domainauth.StatusPending), false, true),
			params: GuardParams{AllowPending: true},
			want:   Allow,
		},
		{
			name:   "pending instructor is not approval-gated",
			snap:   snapFor(userWith(domainauth.RoleInstructor, domainauth.StatusPending), false, true),
			params: anyRole,
			want:   Allow,
		},
		{
			name:   "active acc admin passes the pending check",
			snap:   snapFor(userWith(domainauth.RoleACCAdmin, domainauth.StatusActive), false, true),
			params: anyRole,
			want:   Allow,
		},
		{
			name:   "role mismatch redirects to unauthorized",
			snap:   snapFor(userWith(domainauth.RoleInstructor, domainauth.StatusActive), false, true),
			params: adminOnly,
			want:   RedirectUnauthorized,
		},
		{
			name: "role in allowlist is allowed",
			snap: snapFor(userWith(domainauth.RoleInstructor, domainauth.StatusActive), false, true),
			params: GuardParams{
				AllowedRoles: []domainauth.Role{domainauth.RoleGroupAdmin, domainauth.RoleInstructor},
			},
			want: Allow,
		},
		{
			name:   "empty allowlist allows every role",
			snap:   snapFor(userWith(domainauth.RoleGroupAdmin, domainauth.StatusActive), false, true),
			params: anyRole,
			want:   Allow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.snap, tc.params))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "loading", ShowLoading.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-pending", RedirectPending.String())
	assert.Equal(t, "redirect-unauthorized", RedirectUnauthorized.String())
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "unknown", Decision(99).String())
}
