package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OptimizeSquad runs the full-squad optimization under the given constraint
// set.
func (c *Client) OptimizeSquad(ctx context.Context, req OptimizationRequest) (OptimizationResult, error) {
	var result OptimizationResult
	err := c.t.Post(ctx, "/optimization/squad", req, &result)
	return result, err
}

// OptimizeFormation finds the best starting-eleven arrangement for a fixed
// set of 15 player ids in the given gameweek.
func (c *Client) OptimizeFormation(ctx context.Context, gameweek int, requiredPlayers []int) (FormationResult, error) {
	body := struct {
		Gameweek        int   `json:"gameweek"`
		RequiredPlayers []int `json:"required_players"`
	}{Gameweek: gameweek, RequiredPlayers: requiredPlayers}

	var result FormationResult
	err := c.t.Post(ctx, "/optimization/formation", body, &result)
	return result, err
}

// OptimizeCaptain ranks captaincy candidates within the given id set.
// gameweek is optional.
func (c *Client) OptimizeCaptain(ctx context.Context, playerIDs []int, gameweek *int) (CaptainResult, error) {
	body := struct {
		PlayerIDs []int `json:"player_ids"`
		Gameweek  *int  `json:"gameweek,omitempty"`
	}{PlayerIDs: playerIDs, Gameweek: gameweek}

	var result CaptainResult
	err := c.t.Post(ctx, "/optimization/captain", body, &result)
	return result, err
}

// PlanTransfers asks the planner for per-gameweek transfer plans.
func (c *Client) PlanTransfers(ctx context.Context, req TransferPlanRequest) (TransferPlanResult, error) {
	var result TransferPlanResult
	err := c.t.Post(ctx, "/optimization/transfers", req, &result)
	return result, err
}

// QuickPick generates a beginner squad pick for a gameweek.
func (c *Client) QuickPick(ctx context.Context, gameweek int, formation string, riskTolerance float64) (OptimizationResult, error) {
	query := url.Values{}
	if formation != "" {
		query.Set("formation", formation)
	}
	query.Set("risk_tolerance", formatFloat(riskTolerance))

	var result OptimizationResult
	err := c.t.PostQuery(ctx, fmt.Sprintf("/optimization/quick-pick/%d", gameweek), query, &result)
	return result, err
}

// ChipAnalysis analyzes optimal chip usage for a gameweek. The payload is
// opaque to this client.
func (c *Client) ChipAnalysis(ctx context.Context, gameweek int, availableChips []string) (map[string]any, error) {
	query := url.Values{}
	if len(availableChips) > 0 {
		query.Set("available_chips", strings.Join(availableChips, ","))
	}

	var result map[string]any
	err := c.t.Get(ctx, fmt.Sprintf("/optimization/chips/analysis/%d", gameweek), query, &result)
	return result, err
}

// FixtureAnalysis summarizes fixture difficulty over the next gameweeks.
// The payload is opaque to this client.
func (c *Client) FixtureAnalysis(ctx context.Context, gameweeks int) (map[string]any, error) {
	query := url.Values{}
	if gameweeks > 0 {
		query.Set("gameweeks", strconv.Itoa(gameweeks))
	}

	var result map[string]any
	err := c.t.Get(ctx, "/optimization/fixture-analysis", query, &result)
	return result, err
}
