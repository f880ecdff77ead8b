package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
)

// PaymentHandler serves the three static outcome pages the payment provider
// redirects back to, distinguished only by route and the booking_id query.
type PaymentHandler struct {
	Pages
}

func NewPaymentHandler(p Pages) *PaymentHandler {
	return &PaymentHandler{Pages: p}
}

// Success renders the paid confirmation. The queue pass has served its
// purpose and is dropped.
func (h *PaymentHandler) Success(c echo.Context) error {
	h.clearPass(c)
	return h.outcome(c, "Payment complete", "success")
}

// Cancel renders the user-aborted outcome; the pass is dropped the same way.
func (h *PaymentHandler) Cancel(c echo.Context) error {
	h.clearPass(c)
	return h.outcome(c, "Payment cancelled", "cancel")
}

// Fail renders the failed outcome. The pass is kept so the user can retry
// the payment while their admission is still valid.
func (h *PaymentHandler) Fail(c echo.Context) error {
	return h.outcome(c, "Payment failed", "fail")
}

func (h *PaymentHandler) outcome(c echo.Context, title, outcome string) error {
	return h.render(c, title, "payment_result", map[string]any{
		"Outcome":   outcome,
		"BookingID": c.QueryParam("booking_id"),
	})
}

func (h *PaymentHandler) clearPass(c echo.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.Store.ClearQueuePass(c.Request().Context(), sess.ID); err != nil {
		log.Printf("clear queue pass: %v", err)
	}
}
