package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/molticket/webgate/internal/model"
)

// PendingHosts lists host accounts waiting for approval.
func (c *Client) PendingHosts(ctx context.Context, creds Credentials) ([]model.Host, error) {
	return c.hosts(ctx, creds, "admin_hosts_pending", "/admin/host/pending")
}

// AllHosts lists every host account.
func (c *Client) AllHosts(ctx context.Context, creds Credentials) ([]model.Host, error) {
	return c.hosts(ctx, creds, "admin_hosts_all", "/admin/host")
}

func (c *Client) hosts(ctx context.Context, creds Credentials, op, path string) ([]model.Host, error) {
	var resp envelope[[]model.Host]
	if err := c.do(ctx, op, creds, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HostAction performs one of the admin moderation verbs: approve, reject,
// suspend or activate.
func (c *Client) HostAction(ctx context.Context, creds Credentials, hostID int64, action string) error {
	path := fmt.Sprintf("/admin/%d/%s", hostID, action)
	return c.do(ctx, "admin_host_"+action, creds, http.MethodPost, path, nil, nil)
}
