package api

import (
	"context"
	"fmt"
)

// Teams lists every team in the current season.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := c.t.Get(ctx, "/teams", nil, &teams)
	return teams, err
}

// Team fetches a single team.
func (c *Client) Team(ctx context.Context, teamID int) (Team, error) {
	var team Team
	err := c.t.Get(ctx, fmt.Sprintf("/teams/%d", teamID), nil, &team)
	return team, err
}
