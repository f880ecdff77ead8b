package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/molticket/webgate/internal/model"
)

// JoinQueue enters the virtual waiting line for an event.
func (c *Client) JoinQueue(ctx context.Context, creds Credentials, eventID int64) error {
	return c.do(ctx, "queue_join", creds, http.MethodPost, fmt.Sprintf("/queue/%d", eventID), nil, nil)
}

// QueueRank polls the caller's position. Rank may be nil while the line is
// still assigning positions; Active flips true when it is the caller's turn.
func (c *Client) QueueRank(ctx context.Context, creds Credentials, eventID int64) (model.QueueStatus, error) {
	var status model.QueueStatus
	err := c.do(ctx, "queue_rank", creds, http.MethodGet, fmt.Sprintf("/queue/rank/%d", eventID), nil, &status)
	return status, err
}
