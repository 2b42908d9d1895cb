package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/ports"
	"github.com/accredly/console-api/internal/settings"
	"github.com/accredly/console-api/internal/tokenstore"
)

// AuthState is the session manager's lifecycle state.
type AuthState int

const (
	// StateUninitialized means no auth check has started yet.
	StateUninitialized AuthState = iota
	// StateChecking means a credential verification is in flight.
	StateChecking
	// StateAuthenticated means a verified user is loaded.
	StateAuthenticated
	// StateUnauthenticated means there is no verified user.
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Snapshot is the consumer-facing view of session state. The same pointer
// is returned until user, loading, or authenticated actually change, so
// consumers can compare snapshots cheaply to decide whether to react.
type Snapshot struct {
	User          *domainauth.User
	Loading       bool
	Authenticated bool
}

// AuthResult is the outcome of login/register/password operations. These
// methods never return a Go error: remote failures are mapped into Err
// (and Fields for per-field validation messages).
type AuthResult struct {
	Success    bool
	Data       *ports.AuthPayload
	Err        string
	Fields     map[string][]string
	IsActive   bool
	UserStatus domainauth.Status
}

// fallbackErrorMessage is used when the server response carries no
// structured message at all (network failures included).
const fallbackErrorMessage = "Something went wrong. Please try again."

// apiFailure is satisfied by the REST adapter's error type. Matching on
// the interface keeps this package free of adapter imports.
type apiFailure interface {
	error
	StatusCode() int
	Message() string
	FieldErrors() map[string][]string
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API    ports.AuthAPI
	Tokens *tokenstore.Store
	Prefs  settings.Repository
	Logger *slog.Logger
}

// SessionManager owns the current-user state and the token lifecycle. It
// is constructed once at application start and passed to consumers.
type SessionManager struct {
	api    ports.AuthAPI
	tokens *tokenstore.Store
	prefs  settings.Repository
	logger *slog.Logger

	// checked latches the first EnsureChecked so re-mounting consumers
	// never re-trigger the initial verification.
	checked atomic.Bool
	// checking is the in-flight guard: a concurrent CheckAuth is skipped
	// entirely, not queued.
	checking atomic.Bool

	mu    sync.Mutex
	state AuthState
	user  *domainauth.User
	snap  *Snapshot
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &SessionManager{
		api:    opts.API,
		tokens: opts.Tokens,
		prefs:  opts.Prefs,
		logger: logger,
		state:  StateUninitialized,
	}
	m.snap = &Snapshot{Loading: true}
	return m
}

// Snapshot returns the current session view. The pointer is stable across
// calls until user, loading, or authenticated change.
func (m *SessionManager) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// State returns the current lifecycle state.
func (m *SessionManager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// EnsureChecked triggers the initial auth check exactly once. Subsequent
// calls are no-ops regardless of the check's outcome.
func (m *SessionManager) EnsureChecked(ctx context.Context) {
	if !m.checked.CompareAndSwap(false, true) {
		return
	}
	m.CheckAuth(ctx)
}

// CheckAuth verifies the stored credential against the profile endpoint.
// A call while another check is in flight is skipped: the caller relies on
// the original call's eventual state update.
func (m *SessionManager) CheckAuth(ctx context.Context) {
	if !m.checking.CompareAndSwap(false, true) {
		m.logger.Debug("auth check already in flight, skipping")
		return
	}
	defer m.checking.Store(false)

	m.setState(StateChecking, m.currentUser())

	token, ok, err := m.tokens.Token(ctx)
	if err != nil {
		m.logger.Error("read token", "error", err)
		m.setState(StateUnauthenticated, nil)
		return
	}
	if !ok || token == "" {
		m.setState(StateUnauthenticated, nil)
		return
	}

	user, err := m.api.Profile(ctx)
	if err != nil {
		var apiErr apiFailure
		if errors.As(err, &apiErr) && apiErr.StatusCode() == http.StatusUnauthorized {
			// Credential is definitely invalid: purge it from both scopes.
			if clearErr := m.tokens.PurgeToken(ctx); clearErr != nil {
				m.logger.Error("clear rejected token", "error", clearErr)
			}
		} else {
			// Transient failure: keep the token so a later check can retry.
			m.logger.Warn("auth check failed, keeping stored token", "error", err)
		}
		m.setState(StateUnauthenticated, nil)
		return
	}

	m.setState(StateAuthenticated, &user)
}

// Login authenticates with email/password. The returned result never
// carries a raw transport error.
func (m *SessionManager) Login(ctx context.Context, email, password string) AuthResult {
	payload, err := m.api.Login(ctx, ports.Credentials{Email: email, Password: password})
	if err != nil {
		return resultFromError(err)
	}

	if payload.Token == "" {
		// A success response without a token is a failed login; state is
		// left untouched.
		return AuthResult{Success: false, Err: fallbackErrorMessage}
	}

	// Unapproved ACC admins get a session-scoped token so they must
	// re-authenticate each session. Everyone else persists durably.
	if payload.User.Role == domainauth.RoleACCAdmin && !payload.User.IsActive() {
		err = m.tokens.SetSessionToken(ctx, payload.Token)
	} else {
		err = m.tokens.SetToken(ctx, payload.Token)
	}
	if err != nil {
		m.logger.Error("store token", "error", err)
		return AuthResult{Success: false, Err: fallbackErrorMessage}
	}

	user := payload.User
	m.setState(StateAuthenticated, &user)

	return AuthResult{
		Success:    true,
		Data:       &payload,
		IsActive:   user.IsActive(),
		UserStatus: user.Status,
	}
}

// Register creates an account. Unlike Login there is no pending-session
// special case: the token is always stored durably.
func (m *SessionManager) Register(ctx context.Context, reg ports.Registration) AuthResult {
	payload, err := m.api.Register(ctx, reg)
	if err != nil {
		return resultFromError(err)
	}

	if payload.Token == "" {
		return AuthResult{Success: false, Err: fallbackErrorMessage}
	}

	if err := m.tokens.SetToken(ctx, payload.Token); err != nil {
		m.logger.Error("store token", "error", err)
		return AuthResult{Success: false, Err: fallbackErrorMessage}
	}

	user := payload.User
	m.setState(StateAuthenticated, &user)

	return AuthResult{
		Success:    true,
		Data:       &payload,
		IsActive:   user.IsActive(),
		UserStatus: user.Status,
	}
}

// Logout ends the session. For unapproved ACC admins the token may live in
// the session scope, so all session storage and the durable token keys are
// cleared locally without calling the remote endpoint. For everyone else
// the remote call is best-effort and local cleanup always runs.
func (m *SessionManager) Logout(ctx context.Context) {
	user := m.currentUser()

	if user != nil && user.Role == domainauth.RoleACCAdmin && !user.IsActive() {
		if err := m.tokens.ClearAll(ctx); err != nil {
			m.logger.Error("clear session storage", "error", err)
		}
		m.setState(StateUnauthenticated, nil)
		return
	}

	defer func() {
		if err := m.tokens.ClearToken(ctx); err != nil {
			m.logger.Error("clear token", "error", err)
		}
		if m.prefs != nil {
			if err := m.prefs.ResetSidebar(ctx); err != nil {
				m.logger.Error("reset sidebar preferences", "error", err)
			}
		}
		m.setState(StateUnauthenticated, nil)
	}()

	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn("remote logout failed", "error", err)
	}
}

// ForgotPassword requests a reset email; errors are mapped, never raised.
func (m *SessionManager) ForgotPassword(ctx context.Context, email string) AuthResult {
	if err := m.api.ForgotPassword(ctx, email); err != nil {
		return resultFromError(err)
	}
	return AuthResult{Success: true}
}

// ResetPassword completes a password reset; errors are mapped, never raised.
func (m *SessionManager) ResetPassword(ctx context.Context, input ports.PasswordReset) AuthResult {
	if err := m.api.ResetPassword(ctx, input); err != nil {
		return resultFromError(err)
	}
	return AuthResult{Success: true}
}

// RefreshUser re-fetches the profile and overwrites the user on success.
// Failures are logged only; authenticated state never changes here.
func (m *SessionManager) RefreshUser(ctx context.Context) {
	user, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Warn("refresh user failed", "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &user
	m.rebuildSnapshotLocked()
}

func (m *SessionManager) currentUser() *domainauth.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *SessionManager) setState(state AuthState, user *domainauth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
	m.rebuildSnapshotLocked()
}

// rebuildSnapshotLocked refreshes the memoized snapshot, keeping the old
// pointer when user, loading, and authenticated are all unchanged.
func (m *SessionManager) rebuildSnapshotLocked() {
	loading := m.state == StateUninitialized || m.state == StateChecking
	authenticated := m.state == StateAuthenticated
	if m.snap != nil && m.snap.User == m.user && m.snap.Loading == loading && m.snap.Authenticated == authenticated {
		return
	}
	m.snap = &Snapshot{User: m.user, Loading: loading, Authenticated: authenticated}
}

// resultFromError maps a remote error to an AuthResult. Structured API
// errors resolve through the message priority chain; anything else (e.g.
// a network failure) falls back to the generic message.
func resultFromError(err error) AuthResult {
	var apiErr apiFailure
	if errors.As(err, &apiErr) {
		return AuthResult{
			Success: false,
			Err:     apiErr.Message(),
			Fields:  apiErr.FieldErrors(),
		}
	}
	return AuthResult{Success: false, Err: fallbackErrorMessage}
}
