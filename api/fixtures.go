package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Fixtures lists fixtures with optional gameweek/team/future filters.
func (c *Client) Fixtures(ctx context.Context, filters FixtureFilters) ([]Fixture, error) {
	query := url.Values{}
	if filters.Gameweek != nil {
		query.Set("gameweek", strconv.Itoa(*filters.Gameweek))
	}
	if filters.TeamID != nil {
		query.Set("team_id", strconv.Itoa(*filters.TeamID))
	}
	if filters.FutureOnly {
		query.Set("future_only", "true")
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var fixtures []Fixture
	err := c.t.Get(ctx, "/fixtures", query, &fixtures)
	return fixtures, err
}

// Fixture fetches a single fixture.
func (c *Client) Fixture(ctx context.Context, fixtureID int) (Fixture, error) {
	var fixture Fixture
	err := c.t.Get(ctx, fmt.Sprintf("/fixtures/%d", fixtureID), nil, &fixture)
	return fixture, err
}
