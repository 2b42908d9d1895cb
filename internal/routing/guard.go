// Package routing holds the pure navigation-decision logic for guarded
// routes. It consumes session snapshots and produces decisions; turning a
// decision into an HTTP redirect is the gateway's job.
package routing

import (
	"slices"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/service"
)

// Decision is the outcome of guarding one navigation.
type Decision int

const (
	// ShowLoading means no navigation decision can be made yet.
	ShowLoading Decision = iota
	// RedirectLogin sends the visitor to the login screen.
	RedirectLogin
	// RedirectPending sends an unapproved account to the interstitial.
	RedirectPending
	// RedirectUnauthorized sends a role mismatch to the unauthorized page.
	RedirectUnauthorized
	// Allow renders the guarded content.
	Allow
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectPending:
		return "redirect-pending"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// GuardParams configures one guarded route.
type GuardParams struct {
	// AllowedRoles is the role allowlist; empty allows every role.
	AllowedRoles []domainauth.Role
	// AllowPending lets pending/inactive approval-gated accounts through.
	AllowPending bool
}

// Decide evaluates the guard for a session snapshot. The check order is
// load-bearing: loading before auth, auth before pending, pending before
// roles. An unauthenticated pending user must see login, not unauthorized.
func Decide(snap *service.Snapshot, p GuardParams) Decision {
	if snap == nil || snap.Loading {
		return ShowLoading
	}
	if !snap.Authenticated || snap.User == nil {
		return RedirectLogin
	}
	if !p.AllowPending && snap.User.RequiresApproval() && !snap.User.IsActive() {
		return RedirectPending
	}
	if len(p.AllowedRoles) > 0 && !slices.Contains(p.AllowedRoles, snap.User.Role) {
		return RedirectUnauthorized
	}
	return Allow
}
