package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fplassist/go-fpl-client/api"
	"github.com/fplassist/go-fpl-client/creds"
	"github.com/fplassist/go-fpl-client/creds/credsfakes"
	"github.com/fplassist/go-fpl-client/session"
	"github.com/fplassist/go-fpl-client/transport"
)

// capture records the last request the test service saw.
type capture struct {
	method string
	path   string
	query  map[string][]string
	body   []byte
}

func newClient(t *testing.T, authenticated bool, status int, response any) (*api.Client, *capture) {
	t.Helper()

	captured := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	sessions, err := session.NewManager(credsfakes.NewFakeStore())
	require.NoError(t, err)
	if authenticated {
		require.NoError(t, sessions.Adopt(creds.Pair{Access: "access-0", Refresh: "refresh-0"}))
	}

	tr, err := transport.New(server.URL+"/api/v1", sessions)
	require.NoError(t, err)

	client, err := api.New(tr)
	require.NoError(t, err)
	return client, captured
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestPlayersBuildsFilterQuery(t *testing.T) {
	client, captured := newClient(t, true, http.StatusOK, api.PlayersPage{Total: 1})

	_, err := client.Players(context.Background(), api.PlayerFilters{
		Position:      intPtr(api.PositionMidfielder),
		TeamID:        intPtr(11),
		MinPrice:      floatPtr(4.5),
		MaxPrice:      floatPtr(12.5),
		Status:        "a",
		AvailableOnly: true,
		Page:          2,
		PageSize:      50,
	})
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, captured.method)
	require.Equal(t, "/api/v1/players", captured.path)
	require.Equal(t, []string{"3"}, captured.query["position"])
	require.Equal(t, []string{"11"}, captured.query["team"])
	require.Equal(t, []string{"4.5"}, captured.query["min_price"])
	require.Equal(t, []string{"12.5"}, captured.query["max_price"])
	require.Equal(t, []string{"a"}, captured.query["status"])
	require.Equal(t, []string{"true"}, captured.query["available_only"])
	require.Equal(t, []string{"2"}, captured.query["page"])
	require.Equal(t, []string{"50"}, captured.query["page_size"])
}

func TestPredictionsRepeatsPlayerIDs(t *testing.T) {
	client, captured := newClient(t, true, http.StatusOK, []api.Prediction{})

	_, err := client.Predictions(context.Background(), api.PredictionFilters{
		Gameweek:  27,
		PlayerIDs: []int{7, 233, 355},
	})
	require.NoError(t, err)

	require.Equal(t, "/api/v1/predictions", captured.path)
	require.Equal(t, []string{"27"}, captured.query["gameweek"])
	require.Equal(t, []string{"7", "233", "355"}, captured.query["player_ids"])
}

func TestOptimizeFormationPostsRequiredPlayers(t *testing.T) {
	client, captured := newClient(t, true, http.StatusOK, api.FormationResult{BestFormation: "3-4-3"})

	result, err := client.OptimizeFormation(context.Background(), 27, []int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "3-4-3", result.BestFormation)

	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "/api/v1/optimization/formation", captured.path)

	var body struct {
		Gameweek        int   `json:"gameweek"`
		RequiredPlayers []int `json:"required_players"`
	}
	require.NoError(t, json.Unmarshal(captured.body, &body))
	require.Equal(t, 27, body.Gameweek)
	require.Equal(t, []int{1, 2, 3}, body.RequiredPlayers)
}

func TestLoginMapsTokenResponse(t *testing.T) {
	client, captured := newClient(t, false, http.StatusOK, map[string]string{
		"access_token":  "issued-access",
		"refresh_token": "issued-refresh",
		"token_type":    "bearer",
	})

	pair, err := client.Login(context.Background(), "manager@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, creds.Pair{Access: "issued-access", Refresh: "issued-refresh"}, pair)

	require.Equal(t, "/api/v1/auth/login", captured.path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(captured.body, &body))
	require.Equal(t, "manager@example.com", body["email"])
	require.Equal(t, "secret", body["password"])
}

func TestLogoutPostsRefreshToken(t *testing.T) {
	client, captured := newClient(t, true, http.StatusOK, map[string]string{"message": "ok"})

	require.NoError(t, client.Logout(context.Background(), "refresh-0"))

	require.Equal(t, "/api/v1/auth/logout", captured.path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(captured.body, &body))
	require.Equal(t, "refresh-0", body["refresh_token"])
}

func TestCurrentSquadNilWhenNothingSaved(t *testing.T) {
	client, _ := newClient(t, true, http.StatusOK, map[string]any{
		"squad":   nil,
		"message": "No saved squad found",
	})

	saved, err := client.CurrentSquad(context.Background())
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestCurrentSquadReturnsSnapshot(t *testing.T) {
	client, _ := newClient(t, true, http.StatusOK, api.SavedSquad{
		ID:        12,
		Gameweek:  27,
		Formation: "4-4-2",
		Squad: &api.SquadData{
			StartingXI: []api.SquadPlayer{{PlayerID: 7, IsStarter: true}},
			Bench:      []api.SquadPlayer{{PlayerID: 8}},
		},
	})

	saved, err := client.CurrentSquad(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, 12, saved.ID)
	require.Len(t, saved.Squad.StartingXI, 1)
	require.Equal(t, 7, saved.Squad.StartingXI[0].PlayerID)
}

func TestRejectedResponseCarriesDetail(t *testing.T) {
	client, _ := newClient(t, true, http.StatusBadRequest, map[string]string{
		"detail": "No FPL team linked",
	})

	_, err := client.TeamSummary(context.Background(), nil)
	require.Error(t, err)

	var rejected *transport.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusBadRequest, rejected.Status)
	require.Equal(t, "No FPL team linked", rejected.Detail)
}
