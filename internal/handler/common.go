// Package handler implements the gateway's page handlers. Each file covers
// one page area; all of them render HTML through the shared view renderer
// and talk to the ticketing API through the upstream client.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/session"
	"github.com/molticket/webgate/internal/upstream"
	"github.com/molticket/webgate/internal/view"
)

// Pages bundles what every page handler needs: the session store for flash
// messages and credential changes.
type Pages struct {
	Store *session.Store
}

// creds extracts the upstream request decoration from a session.
func creds(s *session.Session) upstream.Credentials {
	return upstream.Credentials{
		AccessToken: s.AccessToken,
		QueueToken:  s.QueueToken,
		EventID:     s.EventID,
	}
}

// render draws a page inside the shared chrome, consuming any pending flash.
func (p *Pages) render(c echo.Context, title, name string, data any) error {
	return p.renderRefresh(c, title, name, "", data)
}

// renderRefresh is render for self-reloading pages: the refresh directive is
// emitted as a meta tag in the document head.
func (p *Pages) renderRefresh(c echo.Context, title, name, refresh string, data any) error {
	sess := middleware.CurrentSession(c)
	flash, err := p.Store.PopFlash(c.Request().Context(), sess.ID)
	if err != nil {
		log.Printf("pop flash: %v", err)
	}
	return c.Render(http.StatusOK, name, view.Page{
		Title:   title,
		Flash:   flash,
		Refresh: refresh,
		User:    sess.User,
		Data:    data,
	})
}

// flashTo stores a one-shot message and redirects.
func (p *Pages) flashTo(c echo.Context, message, target string) error {
	sess := middleware.CurrentSession(c)
	if err := p.Store.Flash(c.Request().Context(), sess.ID, message); err != nil {
		log.Printf("store flash: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// failUpstream converts an upstream error into the user-visible reaction. A
// 401 means the stored token is no longer honored: the whole session is
// cleared and the browser is sent to the login page. Anything else becomes a
// flash on the given page, preferring the server's own message.
func (p *Pages) failUpstream(c echo.Context, err error, fallback, backTo string) error {
	sess := middleware.CurrentSession(c)
	if errors.Is(err, upstream.ErrUnauthorized) {
		if clearErr := p.Store.Clear(c.Request().Context(), sess.ID); clearErr != nil {
			log.Printf("clear session %s: %v", sess.ID, clearErr)
		}
		return p.flashTo(c, "Your session has expired. Please log in again.", "/login")
	}
	log.Printf("upstream: %v", err)
	msg := fallback
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return p.flashTo(c, msg, backTo)
}

// upstreamIsUnauthorized reports whether an error is the upstream 401
// sentinel, possibly wrapped.
func upstreamIsUnauthorized(err error) bool {
	return errors.Is(err, upstream.ErrUnauthorized)
}

// formToken mints a one-shot submit token, falling back to empty (and a
// logged error) when Redis is unavailable; the POST side treats an empty
// token as already consumed.
func (p *Pages) formToken(c echo.Context) string {
	sess := middleware.CurrentSession(c)
	token, err := p.Store.IssueFormToken(c.Request().Context(), sess.ID)
	if err != nil {
		log.Printf("issue form token: %v", err)
		return ""
	}
	return token
}

// consumeFormToken claims the submitted token, returning false for missing,
// unknown or reused tokens.
func (p *Pages) consumeFormToken(c echo.Context) bool {
	sess := middleware.CurrentSession(c)
	ok, err := p.Store.ConsumeFormToken(c.Request().Context(), sess.ID, c.FormValue("form_token"))
	if err != nil {
		log.Printf("consume form token: %v", err)
		return false
	}
	return ok
}
