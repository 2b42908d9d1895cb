// Package tokenstore persists the opaque API bearer token across the two
// storage scopes: durable (survives restarts, cleared only by explicit
// logout) and session (lives only as long as the process).
package tokenstore

import (
	"context"

	"github.com/accredly/console-api/internal/ports"
)

// Two key names are written for every token. KeyLegacy predates KeyPrimary
// and is kept so older deployments reading either name keep working.
const (
	KeyPrimary = "auth_token"
	KeyLegacy  = "token"
)

// Store reads and writes the bearer token across both scopes.
// The session manager is the only writer; the API client reads through it
// on every request.
type Store struct {
	durable ports.KeyValue
	session ports.KeyValue
}

// New creates a Store over the given durable and session scopes.
func New(durable, session ports.KeyValue) *Store {
	return &Store{durable: durable, session: session}
}

// SetToken persists token to the durable scope under both key names.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.durable.Set(ctx, KeyPrimary, token); err != nil {
		return err
	}
	return s.durable.Set(ctx, KeyLegacy, token)
}

// SetSessionToken stores token in the session scope only, so it does not
// survive a process restart. Used for unapproved ACC admins, who must
// re-authenticate each session.
func (s *Store) SetSessionToken(ctx context.Context, token string) error {
	if err := s.session.Set(ctx, KeyPrimary, token); err != nil {
		return err
	}
	return s.session.Set(ctx, KeyLegacy, token)
}

// ClearToken removes both key names from the durable scope. The session
// scope is deliberately untouched.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.durable.Delete(ctx, KeyPrimary); err != nil {
		return err
	}
	return s.durable.Delete(ctx, KeyLegacy)
}

// PurgeToken removes both key names from both scopes. Used when the
// server definitively rejects the credential.
func (s *Store) PurgeToken(ctx context.Context) error {
	if err := s.session.Delete(ctx, KeyPrimary); err != nil {
		return err
	}
	if err := s.session.Delete(ctx, KeyLegacy); err != nil {
		return err
	}
	return s.ClearToken(ctx)
}

// ClearAll wipes the entire session scope and both durable key names.
// Used on logout for accounts whose token may live in either scope.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	return s.ClearToken(ctx)
}

// Token returns the first non-empty value found, checking the session
// scope before the durable scope and the primary key before the legacy
// key within each. The bool reports whether a token was found.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	lookups := []struct {
		scope ports.KeyValue
		key   string
	}{
		{s.session, KeyPrimary},
		{s.session, KeyLegacy},
		{s.durable, KeyPrimary},
		{s.durable, KeyLegacy},
	}
	for _, l := range lookups {
		v, ok, err := l.scope.Get(ctx, l.key)
		if err != nil {
			return "", false, err
		}
		if ok && v != "" {
			return v, true, nil
		}
	}
	return "", false, nil
}
