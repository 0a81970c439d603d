package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Predictions lists model predictions for a gameweek.
func (c *Client) Predictions(ctx context.Context, filters PredictionFilters) ([]Prediction, error) {
	query := url.Values{}
	query.Set("gameweek", strconv.Itoa(filters.Gameweek))
	for _, id := range filters.PlayerIDs {
		query.Add("player_ids", strconv.Itoa(id))
	}
	if filters.MinPredictedPoints != nil {
		query.Set("min_predicted_points", formatFloat(*filters.MinPredictedPoints))
	}
	if filters.Position != nil {
		query.Set("position", strconv.Itoa(*filters.Position))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var predictions []Prediction
	err := c.t.Get(ctx, "/predictions", query, &predictions)
	return predictions, err
}

// PlayerPrediction fetches the prediction for one player and gameweek.
func (c *Client) PlayerPrediction(ctx context.Context, playerID, gameweek int) (Prediction, error) {
	var prediction Prediction
	err := c.t.Get(ctx, fmt.Sprintf("/predictions/player/%d/%d", playerID, gameweek), nil, &prediction)
	return prediction, err
}
