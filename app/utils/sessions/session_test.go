package sessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rakhulsr/asili-market/app/db/testdb"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, repositories.SessionRepository) {
	t.Helper()
	repo := repositories.NewSessionRepository(testdb.Open(t))
	store := NewDBStore(repo, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
	return NewManager(store), repo
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookieName)
	return nil
}

func userID(t *testing.T, manager *Manager, r *http.Request) uint {
	t.Helper()
	id, err := manager.GetUserID(r)
	require.NoError(t, err)
	return id
}

type failingSessionRepository struct {
	repositories.SessionRepository
}

func (failingSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	return nil, errors.New("database is locked")
}

func TestUserIDRoundTrip(t *testing.T) {
	manager, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	require.NoError(t, manager.SetUserID(rec, req, 42))

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	next.AddCookie(cookie)
	assert.Equal(t, uint(42), userID(t, manager, next))
}

func TestNoCookieMeansNoUser(t *testing.T) {
	manager, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, uint(0), userID(t, manager, req))
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	manager, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged"})
	assert.Equal(t, uint(0), userID(t, manager, req))
}

func TestClearSessionDeletesRow(t *testing.T) {
	manager, repo := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	require.NoError(t, manager.SetUserID(rec, req, 7))
	cookie := sessionCookie(t, rec)

	logoutRec := httptest.NewRecorder()
	logout := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	logout.AddCookie(cookie)
	require.NoError(t, manager.ClearSession(logoutRec, logout))

	cleared := sessionCookie(t, logoutRec)
	assert.True(t, cleared.MaxAge < 0)

	after := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	after.AddCookie(cookie)
	assert.Equal(t, uint(0), userID(t, manager, after))

	pruned, err := repo.DeleteExpired(context.Background(), timeFarFuture())
	require.NoError(t, err)
	assert.Equal(t, int64(0), pruned)
}

func timeFarFuture() time.Time {
	return time.Now().AddDate(10, 0, 0)
}

func TestStorageFailureIsReported(t *testing.T) {
	authKey := securecookie.GenerateRandomKey(32)
	encKey := securecookie.GenerateRandomKey(32)

	repo := repositories.NewSessionRepository(testdb.Open(t))
	manager := NewManager(NewDBStore(repo, authKey, encKey))

	rec := httptest.NewRecorder()
	require.NoError(t, manager.SetUserID(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), 42))
	cookie := sessionCookie(t, rec)

	broken := NewManager(NewDBStore(failingSessionRepository{repo}, authKey, encKey))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	id, err := broken.GetUserID(req)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, uint(0), id)

	forged := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	forged.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged"})
	id, err = broken.GetUserID(forged)
	require.NoError(t, err)
	assert.Equal(t, uint(0), id)

	logout := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	logout.AddCookie(cookie)
	assert.ErrorIs(t, broken.ClearSession(httptest.NewRecorder(), logout), ErrStorage)
}
