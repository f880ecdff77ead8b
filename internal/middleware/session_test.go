package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molticket/webgate/internal/session"
)

// expiredToken builds a JWT-shaped token whose exp claim has already passed.
func expiredToken(t *testing.T) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims := enc(map[string]any{"sub": "7", "exp": time.Now().Add(-time.Minute).Unix()})
	return header + "." + claims + "."
}

func TestResolveSessionDropsExpiredToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db, 12*time.Hour, 15*time.Minute)

	mock.ExpectHGetAll("session:s1").SetVal(map[string]string{
		"accessToken": expiredToken(t),
		"user":        `{"userId":7,"role":"ROLE_USER"}`,
		"userId":      "7",
	})
	mock.ExpectDel("session:s1").SetVal(1)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "mt_session", Value: "s1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *session.Session
	mw := ResolveSession(store, "mt_session")
	next := mw(func(c echo.Context) error {
		seen = CurrentSession(c)
		return nil
	})
	require.NoError(t, next(c))

	assert.False(t, seen.Authenticated(), "expired credentials must not reach handlers")
	assert.Equal(t, "s1", seen.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSessionTouchesLiveSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db, 12*time.Hour, 15*time.Minute)

	mock.ExpectHGetAll("session:s1").SetVal(map[string]string{
		"accessToken": "opaque-token",
		"user":        `{"userId":7,"role":"ROLE_USER"}`,
		"userId":      "7",
	})
	mock.ExpectExpire("session:s1", 12*time.Hour).SetVal(true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "mt_session", Value: "s1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := ResolveSession(store, "mt_session")
	next := mw(func(c echo.Context) error { return nil })
	require.NoError(t, next(c))
	assert.NoError(t, mock.ExpectationsWereMet())
}
