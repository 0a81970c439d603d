package api

import "context"

// CurrentSquad returns the user's saved current squad, or nil when none is
// saved (the service answers 200 with a null squad in that case).
func (c *Client) CurrentSquad(ctx context.Context) (*SavedSquad, error) {
	var envelope struct {
		SavedSquad
		Message string `json:"message"`
	}
	if err := c.t.Get(ctx, "/squads/current", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Squad == nil {
		return nil, nil
	}
	saved := envelope.SavedSquad
	return &saved, nil
}

// SaveSquad persists a squad snapshot and marks it current. Returns the new
// snapshot id.
func (c *Client) SaveSquad(ctx context.Context, params SaveSquadParams) (int, error) {
	var resp struct {
		Message string `json:"message"`
		ID      int    `json:"id"`
	}
	err := c.t.Post(ctx, "/squads/save", params, &resp)
	return resp.ID, err
}

// ImportFromFPL imports the squad behind an externally linked team id, saves
// it as current, and returns the snapshot. entryID 0 falls back to the
// user's linked team.
func (c *Client) ImportFromFPL(ctx context.Context, entryID int) (SavedSquad, error) {
	body := map[string]any{}
	if entryID != 0 {
		body["entry_id"] = entryID
	}

	var snapshot SavedSquad
	err := c.t.Post(ctx, "/squads/import-from-fpl", body, &snapshot)
	return snapshot, err
}

// SquadHistory lists the user's historical squads, newest first.
func (c *Client) SquadHistory(ctx context.Context) ([]SquadHistoryEntry, error) {
	var entries []SquadHistoryEntry
	err := c.t.Get(ctx, "/squads/history", nil, &entries)
	return entries, err
}
