package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth/provider/google"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeSessionStore is an in-memory session.Store that counts writes.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Profile
	creates  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]auth.Profile)}
}

func (f *fakeSessionStore) Create(_ context.Context, sessionID string, profile auth.Profile, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.sessions[sessionID] = profile
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (*auth.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

// identityProvider is an httptest stand-in for the token and userinfo
// endpoints. Set tokenJSON to control the exchange response.
type identityProvider struct {
	server    *httptest.Server
	tokenJSON string
}

func newIdentityProvider(t *testing.T) *identityProvider {
	t.Helper()

	idp := &identityProvider{
		tokenJSON: `{"access_token":"test-access-token","token_type":"Bearer","expires_in":3600}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "test-client", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))
		assert.NotEmpty(t, r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, idp.tokenJSON)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"user-1","name":"Ada Lovelace","email":"ada@example.com","picture":"https://example.com/ada.png"}`)
	})

	idp.server = httptest.NewServer(mux)
	t.Cleanup(idp.server.Close)

	return idp
}

const testRedirectURL = "http://localhost:8080/callback"

func setupTestRouter(t *testing.T, idp *identityProvider, store session.Store) *gin.Engine {
	t.Helper()

	p, err := google.New(context.Background(), google.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  testRedirectURL,
		AuthURL:      idp.server.URL + "/auth",
		TokenURL:     idp.server.URL + "/token",
		UserInfoURL:  idp.server.URL + "/userinfo",
	})
	require.NoError(t, err)

	router := gin.New()
	NewHandler(p, store).RegisterRoutes(router)
	return router
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginRedirectsToProvider(t *testing.T) {
	router := setupTestRouter(t, newIdentityProvider(t), newFakeSessionStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusFound, w.Code)

	location := w.Header().Get("Location")
	assert.Contains(t, location, "response_type=code")
	assert.Contains(t, location, "client_id=test-client")
	assert.Contains(t, location, url.QueryEscape(testRedirectURL))
	assert.Contains(t, location, "scope=openid+email+profile")
}

func TestCallbackMissingCode(t *testing.T) {
	store := newFakeSessionStore()
	router := setupTestRouter(t, newIdentityProvider(t), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.creates, "no session must be written")
}

func TestCallbackNoAccessToken(t *testing.T) {
	idp := newIdentityProvider(t)
	idp.tokenJSON = `{"error":"invalid_grant"}`

	store := newFakeSessionStore()
	router := setupTestRouter(t, idp, store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?code=bad-code", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, store.creates, "no session must be written")
}

func TestCallbackCreatesSession(t *testing.T) {
	store := newFakeSessionStore()
	router := setupTestRouter(t, newIdentityProvider(t), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?code=good-code", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login successful!")

	c := sessionCookie(t, w)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)

	// the cookie value resolves in the store to the fetched profile
	profile, err := store.Get(context.Background(), c.Value)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "https://example.com/ada.png", profile.Picture)
}

func TestProfileAfterCallback(t *testing.T) {
	store := newFakeSessionStore()
	router := setupTestRouter(t, newIdentityProvider(t), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?code=good-code", nil))
	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "https://example.com/ada.png")
}

func TestProfileWithoutCookie(t *testing.T) {
	router := setupTestRouter(t, newIdentityProvider(t), newFakeSessionStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	// informational page, not an error status
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not logged in")
}

func TestProfileWithUnknownSession(t *testing.T) {
	router := setupTestRouter(t, newIdentityProvider(t), newFakeSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired-or-bogus"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestLogoutDeletesSession(t *testing.T) {
	store := newFakeSessionStore()
	router := setupTestRouter(t, newIdentityProvider(t), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?code=good-code", nil))
	c := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have been logged out.")

	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// the old id no longer resolves server-side
	profile, err := store.Get(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Nil(t, profile)

	// re-presenting the stale cookie is treated as unauthenticated
	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestLogoutWithoutSession(t *testing.T) {
	router := setupTestRouter(t, newIdentityProvider(t), newFakeSessionStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	// logout is idempotent
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have been logged out.")
}
