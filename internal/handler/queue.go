package handler

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/monitoring"
	"github.com/molticket/webgate/internal/upstream"
)

// QueueHandler serves the waiting-line page. Each page load is one rank
// check; the page refreshes itself until the upstream reports the user's
// turn, at which point the admission pass is stored and the browser is
// forwarded to seat selection.
type QueueHandler struct {
	Pages
	API      *upstream.Client
	PollBase time.Duration
	PollCap  time.Duration
}

func NewQueueHandler(p Pages, api *upstream.Client, base, cap time.Duration) *QueueHandler {
	return &QueueHandler{Pages: p, API: api, PollBase: base, PollCap: cap}
}

// pollInterval doubles the refresh interval per attempt up to the cap, so a
// long wait doesn't hammer the rank endpoint once a second forever.
func pollInterval(base, cap time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}

// Status is the queue page. The attempt counter rides along in the query so
// backoff survives across the stateless refreshes.
func (h *QueueHandler) Status(c echo.Context) error {
	eventIDStr := c.Param("eventId")
	eventID, err := strconv.ParseInt(eventIDStr, 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown event.", "/events")
	}
	attempt, _ := strconv.Atoi(c.QueryParam("n"))
	if attempt < 0 {
		attempt = 0
	}
	sess := middleware.CurrentSession(c)

	status, err := h.API.QueueRank(c.Request().Context(), creds(sess), eventID)
	if err != nil {
		if upstreamIsUnauthorized(err) {
			return h.failUpstream(c, err, "", "/events")
		}
		// A failed poll keeps the page refreshing; the wait continues.
		monitoring.QueuePoll("error")
		log.Printf("queue rank event=%d: %v", eventID, err)
		return h.renderWaiting(c, eventIDStr, nil, attempt)
	}

	if status.Active {
		monitoring.QueuePoll("admitted")
		if err := h.Store.SetQueuePass(c.Request().Context(), sess.ID, sess.UserID, eventIDStr); err != nil {
			log.Printf("store queue pass: %v", err)
			return h.flashTo(c, "Could not record your queue pass. Please retry.",
				fmt.Sprintf("/queue/%s", eventIDStr))
		}
		bookingURL := fmt.Sprintf("/booking/%s", eventIDStr)
		return h.renderRefresh(c, "Admitted", "queue_admitted", "2;url="+bookingURL,
			map[string]any{"BookingURL": bookingURL})
	}

	monitoring.QueuePoll("waiting")
	return h.renderWaiting(c, eventIDStr, status.Rank, attempt)
}

func (h *QueueHandler) renderWaiting(c echo.Context, eventID string, rank *int64, attempt int) error {
	interval := pollInterval(h.PollBase, h.PollCap, attempt)
	seconds := int(interval / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	refresh := fmt.Sprintf("%d;url=/queue/%s?n=%d", seconds, eventID, attempt+1)
	return h.renderRefresh(c, "In queue", "queue_wait", refresh, map[string]any{"Rank": rank})
}
