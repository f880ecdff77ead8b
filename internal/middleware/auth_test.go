package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/session"
)

func doGuarded(t *testing.T, mw echo.MiddlewareFunc, sess *session.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(sessionKey, sess)
	}
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "page") })
	require.NoError(t, h(c))
	return rec
}

func userSession(role model.Role) *session.Session {
	return &session.Session{
		ID:          "s1",
		AccessToken: "tok",
		User:        &model.User{UserID: 7, Role: role},
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	rec := doGuarded(t, RequireAuth(), &session.Session{ID: "s1"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthMissingSession(t *testing.T) {
	rec := doGuarded(t, RequireAuth(), nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	rec := doGuarded(t, RequireAuth(), userSession(model.RoleUser))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWrongRoleGoesHome(t *testing.T) {
	rec := doGuarded(t, RequireRole(model.RoleAdmin), userSession(model.RoleUser))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireRoleAnonymousGoesToLogin(t *testing.T) {
	rec := doGuarded(t, RequireRole(model.RoleHost), &session.Session{ID: "s1"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireRoleMatch(t *testing.T) {
	rec := doGuarded(t, RequireRole(model.RoleHost), userSession(model.RoleHost))
	assert.Equal(t, http.StatusOK, rec.Code)
}
