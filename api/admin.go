package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Background task names the service accepts.
const (
	TaskDataSync            = "data_sync"
	TaskGeneratePredictions = "generate_predictions"
	TaskTrainModels         = "train_models"
	TaskClearCache          = "clear_cache"
)

// RunTask triggers a background task. gameweek and pattern are optional
// task-specific arguments.
func (c *Client) RunTask(ctx context.Context, taskName string, gameweek *int, pattern string) (map[string]any, error) {
	query := url.Values{}
	if gameweek != nil {
		query.Set("gameweek", strconv.Itoa(*gameweek))
	}
	if pattern != "" {
		query.Set("pattern", pattern)
	}

	var result map[string]any
	err := c.t.PostQuery(ctx, fmt.Sprintf("/admin/tasks/%s", taskName), query, &result)
	return result, err
}

// CacheStats returns cache health and statistics.
func (c *Client) CacheStats(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/admin/cache/stats", nil, &result)
	return result, err
}

// ClearCache removes cache entries matching a key pattern.
func (c *Client) ClearCache(ctx context.Context, pattern string) (map[string]any, error) {
	query := url.Values{}
	if pattern != "" {
		query.Set("pattern", pattern)
	}

	var result map[string]any
	err := c.t.Delete(ctx, "/admin/cache", query, &result)
	return result, err
}

// Health runs the service's comprehensive health check.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/admin/health", nil, &result)
	return result, err
}

// SystemStats returns system-wide statistics.
func (c *Client) SystemStats(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	err := c.t.Get(ctx, "/admin/stats", nil, &result)
	return result, err
}
