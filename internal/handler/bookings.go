package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// BookingsHandler serves the booking history pages.
type BookingsHandler struct {
	Pages
	API *upstream.Client
}

func NewBookingsHandler(p Pages, api *upstream.Client) *BookingsHandler {
	return &BookingsHandler{Pages: p, API: api}
}

// List renders the caller's bookings with status filter chips.
func (h *BookingsHandler) List(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	filter := model.BookingStatus(c.QueryParam("status"))

	bookings, err := h.API.MyBookings(c.Request().Context(), creds(sess), filter)
	if err != nil {
		return h.failUpstream(c, err, "Could not load your bookings.", "/")
	}
	return h.render(c, "My bookings", "bookings", map[string]any{
		"Bookings": bookings,
		"Filter":   filter,
		"Statuses": model.BookingStatuses,
	})
}

// Detail shows one booking. The upstream exposes no single-booking read, so
// the record is picked out of the my-bookings list.
func (h *BookingsHandler) Detail(c echo.Context) error {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown booking.", "/bookings")
	}
	sess := middleware.CurrentSession(c)

	bookings, err := h.API.MyBookings(c.Request().Context(), creds(sess), "")
	if err != nil {
		return h.failUpstream(c, err, "Could not load your bookings.", "/bookings")
	}
	for _, b := range bookings {
		if b.BookingID == bookingID {
			return h.render(c, "Booking", "booking_detail", map[string]any{"Booking": b})
		}
	}
	return h.flashTo(c, "Booking not found.", "/bookings")
}

// Cancel cancels a booking, then reloads the list so the page reflects
// server truth rather than a local guess.
func (h *BookingsHandler) Cancel(c echo.Context) error {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown booking.", "/bookings")
	}
	sess := middleware.CurrentSession(c)

	if _, err := h.API.CancelBooking(c.Request().Context(), creds(sess), bookingID); err != nil {
		return h.failUpstream(c, err, "Could not cancel the booking.", "/bookings")
	}
	return h.flashTo(c, "Booking cancelled.", "/bookings")
}
