package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/molticket/webgate/internal/model"
)

// Places lists all venues. The endpoint wraps the list in the response
// envelope.
func (c *Client) Places(ctx context.Context, creds Credentials) ([]model.Place, error) {
	var resp envelope[[]model.Place]
	if err := c.do(ctx, "place_list", creds, http.MethodGet, "/place", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Place fetches a single venue with its sections.
func (c *Client) Place(ctx context.Context, creds Credentials, placeID int64) (model.Place, error) {
	var place model.Place
	err := c.do(ctx, "place_get", creds, http.MethodGet, fmt.Sprintf("/place/%d", placeID), nil, &place)
	return place, err
}

// CreatePlace registers a venue and returns its id.
func (c *Client) CreatePlace(ctx context.Context, creds Credentials, req model.CreatePlace) (int64, error) {
	var id int64
	if err := c.do(ctx, "place_create", creds, http.MethodPost, "/place/create", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeletePlace removes a venue.
func (c *Client) DeletePlace(ctx context.Context, creds Credentials, placeID int64) error {
	return c.do(ctx, "place_delete", creds, http.MethodDelete, fmt.Sprintf("/place/%d", placeID), nil, nil)
}
