package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/molticket/webgate/internal/model"
)

// Events lists events, optionally filtered by status.
func (c *Client) Events(ctx context.Context, creds Credentials, status model.EventStatus) ([]model.Event, error) {
	path := "/events"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var events []model.Event
	if err := c.do(ctx, "events_list", creds, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// MyEvents lists the authenticated host's own events.
func (c *Client) MyEvents(ctx context.Context, creds Credentials) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, "events_my", creds, http.MethodGet, "/events/my", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventDetail fetches a single event with its venue address.
func (c *Client) EventDetail(ctx context.Context, creds Credentials, eventID int64) (model.EventDetail, error) {
	var detail model.EventDetail
	err := c.do(ctx, "events_detail", creds, http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, &detail)
	return detail, err
}

// CreateEvent creates an event and returns the new event id.
func (c *Client) CreateEvent(ctx context.Context, creds Credentials, req model.CreateEvent) (int64, error) {
	var id int64
	if err := c.do(ctx, "events_create", creds, http.MethodPost, "/events", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Seats returns the full seat inventory for an event.
func (c *Client) Seats(ctx context.Context, creds Credentials, eventID int64) ([]model.Seat, error) {
	var seats []model.Seat
	if err := c.do(ctx, "seats_list", creds, http.MethodGet, fmt.Sprintf("/seat/%d", eventID), nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}
