package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// newTestManager wires a manager against a throwaway store and a stub
// backend. handler may be nil for tests that never hit the network.
func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *Store) {
	t.Helper()

	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		baseURL = server.URL
	}

	store := NewStore(t.TempDir())
	client := api.NewClient(api.WithBaseURL(baseURL))
	return NewManager(store, client, testLogger()), store
}

func TestManager_StartsInitializing(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	assert.Equal(t, authz.StateInitializing, mgr.State())
}

func TestManager_BootstrapValidSession(t *testing.T) {
	mgr, store := newTestManager(t, nil)
	require.NoError(t, store.Save("abc", Identity{ID: 5, Email: "a@x.com", Role: authz.RoleAdmin}))

	mgr.Bootstrap()

	assert.Equal(t, authz.StateAuthenticated, mgr.State())
	assert.Equal(t, "abc", mgr.Client().AuthToken())
	assert.True(t, mgr.IsAdmin())
	assert.False(t, mgr.IsReviewer())

	id, ok := mgr.UserID()
	require.True(t, ok)
	assert.Equal(t, 5, id)
}

func TestManager_BootstrapEmptyStore(t *testing.T) {
	mgr, _ := newTestManager(t, nil)

	mgr.Bootstrap()

	assert.Equal(t, authz.StateAnonymous, mgr.State())
	assert.Nil(t, mgr.Identity())
	assert.Empty(t, mgr.Client().AuthToken())
}

func TestManager_BootstrapCorruptIdentityClearsStore(t *testing.T) {
	mgr, store := newTestManager(t, nil)

	dir := store.dir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("abc"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{broken"), 0o600))

	mgr.Bootstrap()

	assert.Equal(t, authz.StateAnonymous, mgr.State())
	_, err := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err), "token entry must be cleared")
	_, err = os.Stat(filepath.Join(dir, "user.json"))
	assert.True(t, os.IsNotExist(err), "identity entry must be cleared")
}

func TestManager_LoginSuccess(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@x.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    7,
			"token": "tok",
			"email": "a@x.com",
			"role":  "REVIEWER",
			"name":  "Alice Example", // must be dropped from the persisted identity
		})
	})
	mgr.Bootstrap()

	result := mgr.Login(context.Background(), "a@x.com", "good")

	require.True(t, result.Success, "login failed: %s", result.Error)
	assert.Equal(t, authz.StateAuthenticated, mgr.State())
	assert.Equal(t, "/reviewer/dashboard", result.TargetRoute)
	assert.Equal(t, &Identity{ID: 7, Email: "a@x.com", Role: authz.RoleReviewer}, result.User)
	assert.Equal(t, "tok", mgr.Client().AuthToken())

	// Persisted layout: raw token entry plus the minimal identity record.
	tokenBytes, err := os.ReadFile(filepath.Join(store.dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, "tok", string(tokenBytes))

	userBytes, err := os.ReadFile(filepath.Join(store.dir, "user.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"email":"a@x.com","role":"REVIEWER"}`, string(userBytes))

	id, ok := mgr.UserID()
	require.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestManager_LoginBadCredentials(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})
	mgr.Bootstrap()

	result := mgr.Login(context.Background(), "a@x.com", "bad")

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials", result.Error)
	assert.Equal(t, authz.StateAnonymous, mgr.State())
	assert.Empty(t, mgr.Client().AuthToken())

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession, "failed login must not touch storage")
}

func TestManager_LoginBackendDown(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	mgr.Bootstrap()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	result := mgr.Login(ctx, "a@x.com", "pw")

	assert.False(t, result.Success)
	assert.Equal(t, "Login failed", result.Error, "transport failure falls back to the generic message")
}

func TestManager_LoginMalformedResponse(t *testing.T) {
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"token": "tok"})
	})
	mgr.Bootstrap()

	result := mgr.Login(context.Background(), "a@x.com", "pw")

	assert.False(t, result.Success)
	assert.Equal(t, authz.StateAnonymous, mgr.State())
}

func TestManager_RegisterDoesNotLogin(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})
	mgr.Bootstrap()

	result := mgr.Register(context.Background(), "Bob B.", "b@x.com", "secret1", authz.RoleApplicant)

	assert.True(t, result.Success)
	assert.Equal(t, authz.StateAnonymous, mgr.State(), "registration must not create a session")

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RegisterFailure(t *testing.T) {
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already in use"})
	})
	mgr.Bootstrap()

	result := mgr.Register(context.Background(), "Bob B.", "b@x.com", "secret1", authz.RoleApplicant)

	assert.False(t, result.Success)
	assert.Equal(t, "Email already in use", result.Error)
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	mgr, store := newTestManager(t, nil)
	require.NoError(t, store.Save("abc", Identity{ID: 5, Email: "a@x.com", Role: authz.RoleAdmin}))
	mgr.Bootstrap()
	require.Equal(t, authz.StateAuthenticated, mgr.State())

	mgr.Logout()

	assert.Equal(t, authz.StateAnonymous, mgr.State())
	assert.Empty(t, mgr.Client().AuthToken())
	assert.Nil(t, mgr.Identity())

	_, ok := mgr.UserID()
	assert.False(t, ok, "no id after logout")

	_, _, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_LogoutIdempotent(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	mgr.Bootstrap()

	mgr.Logout()
	mgr.Logout()

	assert.Equal(t, authz.StateAnonymous, mgr.State())
}

func TestManager_UserIDStorageFallback(t *testing.T) {
	mgr, store := newTestManager(t, nil)
	mgr.Bootstrap()
	require.Nil(t, mgr.Identity())

	// Identity lands in the store behind the manager's back; the two-tier
	// lookup still resolves the id.
	require.NoError(t, store.Save("tok", Identity{ID: 9, Email: "c@x.com", Role: authz.RoleApplicant}))

	id, ok := mgr.UserID()
	require.True(t, ok)
	assert.Equal(t, 9, id)
}

func TestManager_UserIDUnresolvable(t *testing.T) {
	mgr, store := newTestManager(t, nil)
	mgr.Bootstrap()

	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "user.json"), []byte("{broken"), 0o600))

	_, ok := mgr.UserID()
	assert.False(t, ok, "parse errors mean no id, never a panic")
}

func TestManager_HasRoleAnonymous(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	mgr.Bootstrap()

	assert.False(t, mgr.HasRole(authz.RoleAdmin))
	assert.False(t, mgr.IsAdmin())
	assert.False(t, mgr.IsReviewer())
	assert.False(t, mgr.IsApplicant())
}

func TestManager_TokenExpired(t *testing.T) {
	mgr, store := newTestManager(t, nil)
	mgr.Bootstrap()
	assert.True(t, mgr.TokenExpired(), "no token counts as expired")

	fresh := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(fresh, Identity{ID: 1, Email: "a@x.com", Role: authz.RoleAdmin}))
	mgr2, _ := newTestManager(t, nil)
	mgr2.Bootstrap()
	mgr2.Client().SetAuthToken(fresh)
	assert.False(t, mgr2.TokenExpired())

	mgr2.Client().SetAuthToken(signedToken(t, time.Now().Add(-time.Hour)))
	assert.True(t, mgr2.TokenExpired())

	mgr2.Client().SetAuthToken("not-a-jwt")
	assert.True(t, mgr2.TokenExpired())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
