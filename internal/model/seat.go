package model

import "github.com/shopspring/decimal"

// SeatStatus is the sale state of a single seat.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatReserved    SeatStatus = "RESERVED"
	SeatSold        SeatStatus = "SOLD"
	SeatUnavailable SeatStatus = "UNAVAILABLE"
)

// Seat mirrors one row of GET /seat/{eventId}. Row and Col are 1-based.
type Seat struct {
	SeatID    int64           `json:"seatId"`
	Section   string          `json:"section"`
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	SeatLevel string          `json:"seatLevel"`
	Price     decimal.Decimal `json:"price"`
	Status    SeatStatus      `json:"status"`
}

// Selectable reports whether the seat can be picked for booking.
func (s Seat) Selectable() bool { return s.Status == SeatAvailable }
