package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/molticket/webgate/internal/model"
)

// CreateBooking reserves a seat (or one unit of capacity) and returns the
// pending booking. The queue admission pass headers must be present for this
// call to be admitted upstream.
func (c *Client) CreateBooking(ctx context.Context, creds Credentials, req model.CreateBooking) (model.Booking, error) {
	var booking model.Booking
	err := c.do(ctx, "booking_create", creds, http.MethodPost, "/bookings", req, &booking)
	return booking, err
}

// CancelBooking cancels a booking and returns its final state.
func (c *Client) CancelBooking(ctx context.Context, creds Credentials, bookingID int64) (model.Booking, error) {
	var booking model.Booking
	err := c.do(ctx, "booking_cancel", creds, http.MethodDelete, fmt.Sprintf("/bookings/%d", bookingID), nil, &booking)
	return booking, err
}

// MyBookings lists the caller's bookings, optionally filtered by status.
func (c *Client) MyBookings(ctx context.Context, creds Credentials, status model.BookingStatus) ([]model.Booking, error) {
	path := "/bookings/my"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var bookings []model.Booking
	if err := c.do(ctx, "booking_my", creds, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// PaymentReady asks the upstream to initialize payment for a booking. The
// browser is then sent to the returned external payment URL.
func (c *Client) PaymentReady(ctx context.Context, creds Credentials, bookingID int64) (model.PaymentReady, error) {
	var ready model.PaymentReady
	err := c.do(ctx, "payment_ready", creds, http.MethodPost, fmt.Sprintf("/payment/ready/%d", bookingID), nil, &ready)
	return ready, err
}
