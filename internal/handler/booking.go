package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// BookingHandler serves seat selection and the booking→payment handoff.
type BookingHandler struct {
	Pages
	API *upstream.Client
}

func NewBookingHandler(p Pages, api *upstream.Client) *BookingHandler {
	return &BookingHandler{Pages: p, API: api}
}

// seatCell is one grid cell in the seat map view. Href is empty for seats
// that cannot be clicked.
type seatCell struct {
	Seat     *model.Seat
	Selected bool
	Href     string
}

// Page renders the booking page: a seat grid for assigned events, a
// headcount view for free seating and standing.
func (h *BookingHandler) Page(c echo.Context) error {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown event.", "/events")
	}
	sess := middleware.CurrentSession(c)
	ctx := c.Request().Context()

	event, err := h.API.EventDetail(ctx, creds(sess), eventID)
	if err != nil {
		return h.failUpstream(c, err, "Could not load this event.",
			fmt.Sprintf("/events/%d", eventID))
	}
	seats, err := h.API.Seats(ctx, creds(sess), eventID)
	if err != nil {
		return h.failUpstream(c, err, "Could not load seats.",
			fmt.Sprintf("/events/%d", eventID))
	}

	if event.SeatForm.Capacity() {
		return h.capacityPage(c, event, seats)
	}
	return h.seatPage(c, event, seats)
}

func (h *BookingHandler) capacityPage(c echo.Context, event model.EventDetail, seats []model.Seat) error {
	var price decimal.Decimal
	hasPrice := len(seats) > 0
	if hasPrice {
		price = seats[0].Price
	}
	return h.render(c, event.EventName, "booking_capacity", map[string]any{
		"Event":     event,
		"Available": model.AvailableCount(seats),
		"Total":     len(seats),
		"Price":     price,
		"HasPrice":  hasPrice,
		"FormToken": h.formToken(c),
	})
}

func (h *BookingHandler) seatPage(c echo.Context, event model.EventDetail, seats []model.Seat) error {
	section := c.QueryParam("section")
	basePath := fmt.Sprintf("/booking/%d", event.EventID)

	var selected *model.Seat
	var selectedID int64
	if raw := c.QueryParam("seat"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			selected, err = model.SelectSeat(seats, id)
		}
		if err != nil {
			// Clicking a held or sold seat is rejected before any
			// upstream call.
			return h.flashTo(c, "That seat cannot be selected.",
				basePath+sectionQuery(section, 0))
		}
		selectedID = selected.SeatID
	}

	visible := model.FilterSection(seats, section)
	grids := buildCells(model.BuildSeatMap(visible), basePath, section, selectedID)

	return h.render(c, event.EventName, "booking_assigned", map[string]any{
		"Event":     event,
		"Sections":  model.SectionNames(seats),
		"Section":   section,
		"Grids":     grids,
		"Selected":  selected,
		"FormToken": h.formToken(c),
	})
}

// sectionGridView mirrors model.SectionGrid with clickable cells.
type sectionGridView struct {
	Section string
	Rows    [][]*seatCell
}

// buildCells turns the seat map into grid cells whose links implement the
// selection toggle: clicking the selected seat produces a link without the
// seat param, clicking another seat replaces the selection.
func buildCells(grids []model.SectionGrid, basePath, section string, selectedID int64) []sectionGridView {
	out := make([]sectionGridView, 0, len(grids))
	for _, g := range grids {
		rows := make([][]*seatCell, len(g.Rows))
		for ri, row := range g.Rows {
			cells := make([]*seatCell, len(row))
			for ci, seat := range row {
				if seat == nil {
					continue
				}
				cell := &seatCell{Seat: seat, Selected: seat.SeatID == selectedID}
				if seat.Selectable() {
					cell.Href = basePath + sectionQuery(section, model.ToggleSeat(selectedID, seat.SeatID))
				}
				cells[ci] = cell
			}
			rows[ri] = cells
		}
		out = append(out, sectionGridView{Section: g.Section, Rows: rows})
	}
	return out
}

// sectionQuery builds the query string preserving the section filter and,
// when non-zero, the selected seat.
func sectionQuery(section string, seatID int64) string {
	q := url.Values{}
	if section != "" {
		q.Set("section", section)
	}
	if seatID != 0 {
		q.Set("seat", strconv.FormatInt(seatID, 10))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Create books the seat (or one capacity unit), initializes payment and
// sends the browser to the external payment page. The one-shot form token
// rejects double submits.
func (h *BookingHandler) Create(c echo.Context) error {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown event.", "/events")
	}
	backTo := fmt.Sprintf("/booking/%d", eventID)

	if !h.consumeFormToken(c) {
		return h.flashTo(c, "This booking is already being processed.", backTo)
	}

	req := model.CreateBooking{EventID: eventID}
	if raw := c.FormValue("seat_id"); raw != "" {
		seatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.flashTo(c, "Invalid seat.", backTo)
		}
		req.SeatID = &seatID
	}

	sess := middleware.CurrentSession(c)
	ctx := c.Request().Context()

	booking, err := h.API.CreateBooking(ctx, creds(sess), req)
	if err != nil {
		return h.failUpstream(c, err, "Booking failed.", backTo)
	}

	ready, err := h.API.PaymentReady(ctx, creds(sess), booking.BookingID)
	if err != nil {
		return h.failUpstream(c, err, "Payment could not be initialized.", backTo)
	}
	// Full navigation to the external payment provider.
	return c.Redirect(http.StatusSeeOther, ready.PaymentURL)
}
