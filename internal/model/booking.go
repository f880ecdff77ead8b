package model

import "github.com/shopspring/decimal"

// BookingStatus is the payment lifecycle of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking mirrors the upstream booking record. Seat coordinates are absent
// for FREE and STANDING events.
type Booking struct {
	BookingID int64           `json:"bookingId"`
	EventName string          `json:"eventName"`
	Section   string          `json:"section"`
	SeatRow   *int            `json:"seatRow,omitempty"`
	SeatCol   *int            `json:"seatCol,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Status    BookingStatus   `json:"status"`
}

// Assigned reports whether the booking carries a concrete seat position.
func (b Booking) Assigned() bool { return b.SeatRow != nil && b.SeatCol != nil }

// CreateBooking is the body of POST /bookings. SeatID is omitted for
// capacity events.
type CreateBooking struct {
	EventID int64  `json:"eventId"`
	SeatID  *int64 `json:"seatId,omitempty"`
}

// BookingStatuses are the filter chips on the bookings list.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}
