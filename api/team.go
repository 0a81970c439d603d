package api

import (
	"context"
	"net/url"
	"strconv"
)

// TeamSummary returns the current gameweek squad, points, rank, value and
// bank for the user's linked external team. entryID is optional; nil uses
// the linked team on the identity.
func (c *Client) TeamSummary(ctx context.Context, entryID *int) (TeamSummary, error) {
	query := url.Values{}
	if entryID != nil {
		query.Set("entry_id", strconv.Itoa(*entryID))
	}

	var summary TeamSummary
	err := c.t.Get(ctx, "/team/summary", query, &summary)
	return summary, err
}
