package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Players runs the paginated, filtered player query.
func (c *Client) Players(ctx context.Context, filters PlayerFilters) (PlayersPage, error) {
	query := url.Values{}
	if filters.Position != nil {
		query.Set("position", strconv.Itoa(*filters.Position))
	}
	if filters.TeamID != nil {
		query.Set("team", strconv.Itoa(*filters.TeamID))
	}
	if filters.MinPrice != nil {
		query.Set("min_price", formatFloat(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		query.Set("max_price", formatFloat(*filters.MaxPrice))
	}
	if filters.MinPoints != nil {
		query.Set("min_points", strconv.Itoa(*filters.MinPoints))
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	query.Set("available_only", strconv.FormatBool(filters.AvailableOnly))
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filters.PageSize))
	}

	var page PlayersPage
	err := c.t.Get(ctx, "/players", query, &page)
	return page, err
}

// Player fetches a single player in detail.
func (c *Client) Player(ctx context.Context, playerID int) (PlayerDetail, error) {
	var player PlayerDetail
	err := c.t.Get(ctx, fmt.Sprintf("/players/%d", playerID), nil, &player)
	return player, err
}

// PlayerHistory returns a player's recent gameweek lines, newest first.
// season and limit are optional (zero values omitted).
func (c *Client) PlayerHistory(ctx context.Context, playerID int, season string, limit int) ([]PlayerRound, error) {
	query := url.Values{}
	if season != "" {
		query.Set("season", season)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var rounds []PlayerRound
	err := c.t.Get(ctx, fmt.Sprintf("/players/%d/history", playerID), query, &rounds)
	return rounds, err
}

// PlayerFixtures returns a player's upcoming fixtures with difficulty.
func (c *Client) PlayerFixtures(ctx context.Context, playerID, limit int) ([]UpcomingFixture, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var fixtures []UpcomingFixture
	err := c.t.Get(ctx, fmt.Sprintf("/players/%d/fixtures", playerID), query, &fixtures)
	return fixtures, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
