package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// HostHandler serves the host dashboard: my events, event creation and
// venue management.
type HostHandler struct {
	Pages
	API *upstream.Client
}

func NewHostHandler(p Pages, api *upstream.Client) *HostHandler {
	return &HostHandler{Pages: p, API: api}
}

// Dashboard renders the selected tab. The create tab needs the venue list
// for its select box; the places tab needs it for display.
func (h *HostHandler) Dashboard(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab != "create" && tab != "places" {
		tab = "events"
	}
	sess := middleware.CurrentSession(c)
	ctx := c.Request().Context()

	data := map[string]any{"Tab": tab, "Categories": model.EventCategories}

	switch tab {
	case "events":
		events, err := h.API.MyEvents(ctx, creds(sess))
		if err != nil {
			return h.failUpstream(c, err, "Could not load your events.", "/")
		}
		data["Events"] = events
	default: // create and places both need the venue list
		places, err := h.API.Places(ctx, creds(sess))
		if err != nil {
			return h.failUpstream(c, err, "Could not load venues.", "/host?tab=events")
		}
		data["Places"] = places
		data["FormToken"] = h.formToken(c)
	}
	return h.render(c, "Host dashboard", "host", data)
}

// CreateEvent submits the new-event form.
func (h *HostHandler) CreateEvent(c echo.Context) error {
	backTo := "/host?tab=create"
	if !h.consumeFormToken(c) {
		return h.flashTo(c, "This event is already being created.", backTo)
	}

	placeID, err := strconv.ParseInt(c.FormValue("placeId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Choose a venue.", backTo)
	}
	name := strings.TrimSpace(c.FormValue("eventName"))
	date := c.FormValue("date")
	opens := c.FormValue("ticketingStartAt")
	if name == "" || date == "" || opens == "" {
		return h.flashTo(c, "All fields are required.", backTo)
	}

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil || price.IsNegative() {
		return h.flashTo(c, "Price must be a non-negative number.", backTo)
	}

	req := model.CreateEvent{
		PlaceID:          placeID,
		EventName:        name,
		Category:         c.FormValue("category"),
		Date:             date,
		TicketingStartAt: opens,
		SeatForm:         model.SeatForm(c.FormValue("seatForm")),
		SeatSettings: []model.SeatSetting{{
			SectionName: strings.TrimSpace(c.FormValue("sectionName")),
			SeatLevel:   strings.TrimSpace(c.FormValue("seatLevel")),
			Price:       price,
		}},
	}

	sess := middleware.CurrentSession(c)
	if _, err := h.API.CreateEvent(c.Request().Context(), creds(sess), req); err != nil {
		return h.failUpstream(c, err, "Could not create the event.", backTo)
	}
	return h.flashTo(c, "Event created.", "/host?tab=events")
}

// CreatePlace registers a venue from the places tab.
func (h *HostHandler) CreatePlace(c echo.Context) error {
	backTo := "/host?tab=places"
	if !h.consumeFormToken(c) {
		return h.flashTo(c, "This venue is already being created.", backTo)
	}

	name := strings.TrimSpace(c.FormValue("placeName"))
	address := strings.TrimSpace(c.FormValue("address"))
	if name == "" || address == "" {
		return h.flashTo(c, "Name and address are required.", backTo)
	}
	rows, _ := strconv.Atoi(c.FormValue("rowCount"))
	cols, _ := strconv.Atoi(c.FormValue("colCount"))
	if rows < 1 || cols < 1 {
		return h.flashTo(c, "Rows and columns must be at least 1.", backTo)
	}

	req := model.CreatePlace{
		PlaceName: name,
		Address:   address,
		Sections: []model.PlaceSection{{
			SectionName: strings.TrimSpace(c.FormValue("sectionName")),
			RowCount:    rows,
			ColCount:    cols,
		}},
	}

	sess := middleware.CurrentSession(c)
	if _, err := h.API.CreatePlace(c.Request().Context(), creds(sess), req); err != nil {
		return h.failUpstream(c, err, "Could not create the venue.", backTo)
	}
	return h.flashTo(c, "Venue created.", backTo)
}

// DeletePlace removes a venue.
func (h *HostHandler) DeletePlace(c echo.Context) error {
	backTo := "/host?tab=places"
	placeID, err := strconv.ParseInt(c.Param("placeId"), 10, 64)
	if err != nil {
		return h.flashTo(c, "Unknown venue.", backTo)
	}
	sess := middleware.CurrentSession(c)

	if err := h.API.DeletePlace(c.Request().Context(), creds(sess), placeID); err != nil {
		return h.failUpstream(c, err, "Could not delete the venue.", backTo)
	}
	return h.flashTo(c, "Venue deleted.", backTo)
}
