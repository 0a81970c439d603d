package api

import "context"

// Analytics payloads are opaque structured maps: their contents are rendered,
// never interpreted, on this side.

// Performance returns the user performance summary.
func (c *Client) Performance(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/analytics/performance", nil, &result)
	return result, err
}

// Trends returns market trend signals (top transfers in/out).
func (c *Client) Trends(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/analytics/trends", nil, &result)
	return result, err
}

// FixtureDifficulty returns the per-team fixture difficulty snapshot.
func (c *Client) FixtureDifficulty(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/analytics/fixtures", nil, &result)
	return result, err
}
