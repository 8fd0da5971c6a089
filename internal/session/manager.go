package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
)

// Fallback messages for failures where the backend gave no usable message.
const (
	loginFailedMsg    = "Login failed"
	registerFailedMsg = "Registration failed"
)

// Manager is the single source of truth for the current session. It is
// constructed once at process start and handed by reference to every
// consumer; all session mutation funnels through Bootstrap, Login and
// Logout. The API client's bearer token and the store are written only
// here.
type Manager struct {
	store  *Store
	client *api.Client
	log    zerolog.Logger

	mu       sync.RWMutex
	state    authz.SessionState
	identity *Identity
}

// NewManager creates a manager in the Initializing state. Call Bootstrap
// before consulting any guard.
func NewManager(store *Store, client *api.Client, log zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		client: client,
		log:    log,
		state:  authz.StateInitializing,
	}
}

// Bootstrap hydrates the session from the store. A valid stored pair
// installs the bearer token and lands in Authenticated; corrupt entries
// are cleared and treated as no session. Bootstrap always leaves the
// Initializing state.
func (m *Manager) Bootstrap() {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, id, err := m.store.Load()
	switch {
	case err == nil:
		m.client.SetAuthToken(token)
		m.identity = &id
		m.state = authz.StateAuthenticated
	case errors.Is(err, ErrNoSession):
		m.state = authz.StateAnonymous
	default:
		// Corrupt or partial session data: recover locally, never
		// surface to the user.
		m.log.Warn().Err(err).Msg("discarding unreadable session")
		if cerr := m.store.Clear(); cerr != nil {
			m.log.Warn().Err(cerr).Msg("failed to clear session store")
		}
		m.state = authz.StateAnonymous
	}
}

// LoginResult reports the outcome of a login attempt. TargetRoute is the
// navigation intent for the caller; the manager itself never navigates.
type LoginResult struct {
	Success     bool
	User        *Identity
	TargetRoute string
	Error       string
}

// Login exchanges credentials with the backend. On success the token and a
// minimal identity record (id, email, role; everything else the response
// carries is dropped) are persisted, the bearer token is installed, and
// the state becomes Authenticated. Expected failures never surface as Go
// errors; the result carries the backend message or a generic fallback.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	resp, err := m.client.Auth.Login(ctx, email, password)
	if err != nil {
		m.log.Debug().Err(err).Str("email", email).Msg("login failed")
		return LoginResult{Success: false, Error: api.ErrorMessage(err, loginFailedMsg)}
	}

	id := Identity{ID: resp.ID, Email: resp.Email, Role: resp.Role}
	if !id.Valid() {
		// Malformed backend response; treat like any other failure.
		m.log.Warn().Interface("response", resp).Msg("login response missing id or role")
		return LoginResult{Success: false, Error: loginFailedMsg}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(resp.Token, id); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist session")
	}
	m.client.SetAuthToken(resp.Token)
	m.identity = &id
	m.state = authz.StateAuthenticated

	return LoginResult{
		Success:     true,
		User:        &id,
		TargetRoute: authz.DefaultRouteFor(id.Role),
	}
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	Success bool
	Error   string
}

// Register creates an account. It never touches session state: a freshly
// registered user still logs in explicitly.
func (m *Manager) Register(ctx context.Context, name, email, password string, role authz.Role) RegisterResult {
	err := m.client.Auth.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		m.log.Debug().Err(err).Str("email", email).Msg("registration failed")
		return RegisterResult{Success: false, Error: api.ErrorMessage(err, registerFailedMsg)}
	}
	return RegisterResult{Success: true}
}

// Logout clears the store and the bearer token and lands in Anonymous.
// Unconditional and idempotent: no backend round-trip, never fails.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session store")
	}
	m.client.ClearAuthToken()
	m.identity = nil
	m.state = authz.StateAnonymous
}

// Client returns the shared API client whose bearer token this manager
// maintains.
func (m *Manager) Client() *api.Client {
	return m.client
}

// State returns the current session state.
func (m *Manager) State() authz.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Identity returns the current identity, nil when anonymous.
func (m *Manager) Identity() *Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return nil
	}
	id := *m.identity
	return &id
}

// Role returns the current role, empty when anonymous.
func (m *Manager) Role() authz.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return ""
	}
	return m.identity.Role
}

// HasRole reports whether the session is authenticated with the given
// role. False when anonymous.
func (m *Manager) HasRole(role authz.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity != nil && m.identity.Role == role
}

// IsAdmin reports whether the current user is an admin.
func (m *Manager) IsAdmin() bool { return m.HasRole(authz.RoleAdmin) }

// IsReviewer reports whether the current user is a reviewer.
func (m *Manager) IsReviewer() bool { return m.HasRole(authz.RoleReviewer) }

// IsApplicant reports whether the current user is an applicant.
func (m *Manager) IsApplicant() bool { return m.HasRole(authz.RoleApplicant) }

// UserID resolves the current user's id with a two-tier lookup: the
// in-memory identity first, then a re-read of the store (defensive against
// a manager/store desync). Never panics; parse failures mean "no id".
func (m *Manager) UserID() (int, bool) {
	m.mu.RLock()
	if m.identity != nil && m.identity.ID > 0 {
		id := m.identity.ID
		m.mu.RUnlock()
		return id, true
	}
	m.mu.RUnlock()

	stored, err := m.store.LoadIdentity()
	if err != nil {
		m.log.Debug().Err(err).Msg("id fallback: no stored identity")
		return 0, false
	}
	if stored.ID <= 0 {
		return 0, false
	}
	return stored.ID, true
}

// TokenExpired reports whether the installed bearer token has passed its
// exp claim. The token is decoded without signature verification (the
// backend stays authoritative) so screens can prompt for a fresh login
// instead of collecting 401s. Absent or undecodable tokens count as
// expired.
func (m *Manager) TokenExpired() bool {
	token := m.client.AuthToken()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}
