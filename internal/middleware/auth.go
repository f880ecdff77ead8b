package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/model"
)

// RequireAuth gates a route group behind a logged-in session. Browsers are
// redirected, not rejected: an anonymous visit to a protected page lands on
// the login form.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireRole allows only sessions whose user holds one of the given roles.
// Authenticated users with the wrong role are sent home rather than to the
// login page, since logging in again would not help.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if !sess.Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !allowed[sess.Role()] {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
