package model

import "github.com/shopspring/decimal"

// PaymentReady is the response of POST /payment/ready/{bookingId}. The
// browser is sent to PaymentURL; the provider redirects back to the gateway's
// /payment/success|cancel|fail routes with booking_id in the query.
type PaymentReady struct {
	BookingID  int64           `json:"bookingId"`
	TID        string          `json:"tid"`
	PaymentURL string          `json:"paymentUrl"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	ApprovedAt string          `json:"approvedAt,omitempty"`
}
