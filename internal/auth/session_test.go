package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "todolist/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestSessions(t *testing.T) (*Sessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessions(NewStore(rdb, time.Hour), NewSigner("0123456789abcdef"), false), mr
}

// newContext builds a gin context for a request that carries cookies.
func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookieName)
	return nil
}

func TestStoreCreateAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	store := NewStore(rdb, 0)
	ctx := context.Background()

	id, err := store.Create(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, sessionTTL, mr.TTL(sessionKeyPrefix+id))

	userID, ok, err := store.UserID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	require.NoError(t, store.Delete(ctx, id))
	_, ok, err = store.UserID(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionsStartAndEnd(t *testing.T) {
	sessions, _ := newTestSessions(t)

	c, w := newContext()
	require.NoError(t, sessions.Start(c, 7))
	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, 3600, ck.MaxAge)

	c2, _ := newContext(ck)
	id, ok, err := sessions.UserID(c2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	c3, w3 := newContext(ck)
	require.NoError(t, sessions.End(c3))
	assert.Equal(t, "", sessionCookie(t, w3).Value)

	c4, _ := newContext(ck)
	_, ok, err = sessions.UserID(c4)
	require.NoError(t, err)
	assert.False(t, ok, "old cookie must not resolve after logout")
}

func TestSessionsAbsoluteExpiry(t *testing.T) {
	sessions, mr := newTestSessions(t)

	c, w := newContext()
	require.NoError(t, sessions.Start(c, 7))
	ck := sessionCookie(t, w)

	// Activity does not extend the lifetime.
	mr.FastForward(30 * time.Minute)
	c2, _ := newContext(ck)
	_, ok, err := sessions.UserID(c2)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Minute)
	c3, _ := newContext(ck)
	_, ok, err = sessions.UserID(c3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionsRejectForgedCookie(t *testing.T) {
	sessions, _ := newTestSessions(t)
	forged, err := NewSigner("some-other-secret-key").SignSession("anything", time.Now().Add(time.Hour))
	require.NoError(t, err)

	c, _ := newContext(&http.Cookie{Name: sessionCookieName, Value: forged})
	_, ok, err := sessions.UserID(c)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartReplacesPreviousSession(t *testing.T) {
	sessions, mr := newTestSessions(t)

	c, w := newContext()
	require.NoError(t, sessions.Start(c, 1))
	first := sessionCookie(t, w)

	c2, _ := newContext(first)
	require.NoError(t, sessions.Start(c2, 2))

	assert.Len(t, mr.Keys(), 1, "previous session record is dropped")
	c3, _ := newContext(first)
	_, ok, err := sessions.UserID(c3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentify(t *testing.T) {
	sessions, _ := newTestSessions(t)
	users := map[int64]dom.User{5: {ID: 5, Name: "alice"}}
	loads := 0
	loader := func(_ context.Context, id int64) (dom.User, bool, error) {
		loads++
		u, ok := users[id]
		return u, ok, nil
	}

	r := gin.New()
	r.Use(Identify(sessions, loader, nil))
	r.GET("/whoami", func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			c.String(http.StatusOK, u.Name)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/api", RequireUser(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	c, w := newContext()
	require.NoError(t, sessions.Start(c, 5))
	ck := sessionCookie(t, w)

	do := func(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, "anonymous", do("/whoami").Body.String())
	assert.Equal(t, "alice", do("/whoami", ck).Body.String())
	assert.Equal(t, "alice", do("/whoami", ck).Body.String())
	assert.Equal(t, 2, loads, "identity is re-fetched on every request")

	assert.Equal(t, http.StatusUnauthorized, do("/api").Code)
	assert.Equal(t, http.StatusNoContent, do("/api", ck).Code)

	delete(users, 5)
	assert.Equal(t, "anonymous", do("/whoami", ck).Body.String())
}

func TestIdentifyLookupFailure(t *testing.T) {
	sessions, _ := newTestSessions(t)
	c, w := newContext()
	require.NoError(t, sessions.Start(c, 5))
	ck := sessionCookie(t, w)

	failing := func(context.Context, int64) (dom.User, bool, error) {
		return dom.User{}, false, errors.New("db down")
	}
	var hooked error
	page := func(c *gin.Context, err error) {
		hooked = err
		c.String(http.StatusServiceUnavailable, "error page")
		c.Abort()
	}
	reached := false
	handler := func(c *gin.Context) { reached = true }

	r := gin.New()
	r.GET("/page", Identify(sessions, failing, page), handler)
	r.GET("/api", Identify(sessions, failing, nil), handler)

	do := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(ck)
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do("/page")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error page", rec.Body.String())
	assert.EqualError(t, hooked, "db down")

	rec = do("/api")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"identity lookup failed"}`, rec.Body.String())
	assert.False(t, reached, "chain stops on lookup failure")
}
