package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// EventHandler serves the public browse pages and the join-queue action.
type EventHandler struct {
	Pages
	API *upstream.Client
}

func NewEventHandler(p Pages, api *upstream.Client) *EventHandler {
	return &EventHandler{Pages: p, API: api}
}

// Home renders the landing page with whatever is currently on sale. The
// event fetch is best effort; the page still renders when the upstream is
// down.
func (h *EventHandler) Home(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	open, err := h.API.Events(c.Request().Context(), creds(sess), model.EventOpen)
	if err != nil {
		log.Printf("home events: %v", err)
		open = nil
	}
	if len(open) > 6 {
		open = open[:6]
	}
	return h.render(c, "", "home", map[string]any{"OpenEvents": open})
}

// List renders the event list with status filter chips.
func (h *EventHandler) List(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	filter := model.EventStatus(c.QueryParam("status"))

	events, err := h.API.Events(c.Request().Context(), creds(sess), filter)
	if err != nil {
		return h.failUpstream(c, err, "Could not load events.", "/")
	}
	return h.render(c, "Events", "events", map[string]any{
		"Events":   events,
		"Filter":   filter,
		"Statuses": model.EventStatuses,
	})
}

// Detail renders one event with the booking call to action.
func (h *EventHandler) Detail(c echo.Context) error {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown event.", "/events")
	}
	sess := middleware.CurrentSession(c)

	detail, err := h.API.EventDetail(c.Request().Context(), creds(sess), eventID)
	if err != nil {
		return h.failUpstream(c, err, "Could not load this event.", "/events")
	}
	return h.render(c, detail.EventName, "event_detail", map[string]any{"Event": detail})
}

// JoinQueue enters the waiting line and moves the browser to the queue page.
// Anonymous visitors are sent to log in first, mirroring the event page's
// behavior rather than the guard's, since the event itself is public.
func (h *EventHandler) JoinQueue(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if !sess.Authenticated() {
		return h.flashTo(c, "Please log in to book tickets.", "/login")
	}
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown event.", "/events")
	}

	if err := h.API.JoinQueue(c.Request().Context(), creds(sess), eventID); err != nil {
		return h.failUpstream(c, err, "Could not join the queue.",
			fmt.Sprintf("/events/%d", eventID))
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/queue/%d", eventID))
}
