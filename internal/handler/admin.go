package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// AdminHandler serves the host moderation dashboard.
type AdminHandler struct {
	Pages
	API *upstream.Client
}

func NewAdminHandler(p Pages, api *upstream.Client) *AdminHandler {
	return &AdminHandler{Pages: p, API: api}
}

// hostActions maps the moderation verbs the upstream accepts to their
// confirmation flash.
var hostActions = map[string]string{
	"approve":  "Host approved.",
	"reject":   "Host rejected.",
	"suspend":  "Host suspended.",
	"activate": "Host activated.",
}

// Dashboard renders the pending or all-hosts tab.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab != "all" {
		tab = "pending"
	}
	sess := middleware.CurrentSession(c)

	var (
		hosts []model.Host
		err   error
	)
	if tab == "pending" {
		hosts, err = h.API.PendingHosts(c.Request().Context(), creds(sess))
	} else {
		hosts, err = h.API.AllHosts(c.Request().Context(), creds(sess))
	}
	if err != nil {
		return h.failUpstream(c, err, "Could not load hosts.", "/")
	}
	return h.render(c, "Admin", "admin", map[string]any{"Tab": tab, "Hosts": hosts})
}

// HostAction performs one moderation verb, then redirects back to the tab so
// the list refetches.
func (h *AdminHandler) HostAction(c echo.Context) error {
	action := c.Param("action")
	backTo := "/admin?tab=" + c.QueryParam("tab")
	done, ok := hostActions[action]
	if !ok {
		return h.flashTo(c, "Unknown action.", backTo)
	}
	hostID, err := strconv.ParseInt(c.Param("hostId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown host.", backTo)
	}
	sess := middleware.CurrentSession(c)

	if err := h.API.HostAction(c.Request().Context(), creds(sess), hostID, action); err != nil {
		return h.failUpstream(c, err, "Action failed.", backTo)
	}
	return h.flashTo(c, done, backTo)
}
