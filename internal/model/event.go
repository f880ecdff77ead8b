package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus is the lifecycle state of an event as reported upstream.
type EventStatus string

const (
	EventScheduled EventStatus = "SCHEDULED"
	EventOpen      EventStatus = "OPEN"
	EventClosed    EventStatus = "CLOSED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

// SeatForm is the allocation mode of an event: individually assigned seats,
// unassigned free seating, or standing capacity.
type SeatForm string

const (
	SeatAssigned SeatForm = "ASSIGNED"
	SeatFree     SeatForm = "FREE"
	SeatStanding SeatForm = "STANDING"
)

// Capacity reports whether the event sells by headcount rather than by
// individual seat.
func (f SeatForm) Capacity() bool { return f == SeatFree || f == SeatStanding }

// Event is a list-view snapshot. Date fields stay strings because the
// upstream emits both "2006-01-02T15:04:05" and space-separated variants;
// ParseAPITime normalizes them for display.
type Event struct {
	EventID          int64       `json:"eventId"`
	EventName        string      `json:"eventName"`
	HostName         string      `json:"hostName"`
	PlaceName        string      `json:"placeName"`
	Date             string      `json:"date"`
	TicketingStartAt string      `json:"ticketingStartAt"`
	Category         string      `json:"category"`
	Status           EventStatus `json:"status"`
	SeatForm         SeatForm    `json:"seatForm"`
}

// EventDetail adds the venue address to the list snapshot.
type EventDetail struct {
	Event
	Address string `json:"address"`
}

// CreateEvent is the body of POST /events. SeatSettings defines one pricing
// row per section.
type CreateEvent struct {
	PlaceID          int64         `json:"placeId"`
	EventName        string        `json:"eventName"`
	Category         string        `json:"category"`
	Date             string        `json:"date"`
	TicketingStartAt string        `json:"ticketingStartAt"`
	SeatForm         SeatForm      `json:"seatForm"`
	SeatSettings     []SeatSetting `json:"seatSettings"`
}

// SeatSetting is one pricing row of CreateEvent: a section paired with its
// level label and ticket price.
type SeatSetting struct {
	SectionName string          `json:"sectionName"`
	SeatLevel   string          `json:"seatLevel"`
	Price       decimal.Decimal `json:"price"`
}

// EventCategories are the choices offered on the create-event form.
var EventCategories = []string{"CONCERT", "MUSICAL", "THEATER", "SPORTS", "EXHIBITION", "ETC"}

// EventStatuses are the filter chips on the event list, in display order.
var EventStatuses = []EventStatus{EventOpen, EventScheduled, EventClosed, EventCancelled, EventCompleted}

// ParseAPITime parses an upstream timestamp, accepting a space or a "T"
// between date and time. The zero time is returned for malformed input.
func ParseAPITime(s string) time.Time {
	s = strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
