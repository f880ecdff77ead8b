package middleware // middleware provides shared request processing for page handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/monitoring"
	"github.com/molticket/webgate/internal/session"
)

// sessionKey is the echo context key the resolved session lives under.
const sessionKey = "session"

// ResolveSession loads the browser's session from the cookie, minting a new
// cookie for first-time visitors. Every downstream handler can rely on a
// non-nil *session.Session in the context. Authenticated sessions get their
// idle TTL refreshed.
func ResolveSession(store *session.Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				id = cookie.Value
			} else {
				id = session.NewID()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				monitoring.SessionStarted()
			}

			sess, err := store.Load(c.Request().Context(), id)
			if err != nil {
				// Redis being briefly unavailable should not 500 every
				// page; fall back to an anonymous session.
				sess = &session.Session{ID: id}
			} else if sess.Authenticated() {
				if sess.Expired() {
					// The token's exp has passed; the stored
					// credentials are dead weight.
					_ = store.Clear(c.Request().Context(), id)
					sess = &session.Session{ID: id}
				} else {
					_ = store.Touch(c.Request().Context(), sess)
				}
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the session placed in context by ResolveSession.
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(sessionKey).(*session.Session); ok {
		return s
	}
	return &session.Session{}
}
