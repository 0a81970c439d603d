package api

import "time"

// User is the service-side identity. FPLTeamID is the optional externally
// linked team.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FPLTeamID *int      `json:"fpl_team_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Player positions as the service encodes them.
const (
	PositionGoalkeeper = 1
	PositionDefender   = 2
	PositionMidfielder = 3
	PositionForward    = 4
)

type Player struct {
	ID                int     `json:"id"`
	FPLID             int     `json:"fpl_id"`
	FirstName         string  `json:"first_name"`
	SecondName        string  `json:"second_name"`
	WebName           string  `json:"web_name"`
	TeamID            int     `json:"team_id"`
	Position          int     `json:"position"`
	CurrentPrice      int     `json:"current_price"` // 0.1M units
	TotalPoints       int     `json:"total_points"`
	Form              float64 `json:"form"`
	Status            string  `json:"status"`
	ChancePlayingThis *int    `json:"chance_playing_this"`
	ChancePlayingNext *int    `json:"chance_playing_next"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	GoalsScored       int     `json:"goals_scored"`
	Assists           int     `json:"assists"`
	CleanSheets       int     `json:"clean_sheets"`
	EPThis            float64 `json:"ep_this"`
	EPNext            float64 `json:"ep_next"`
	News              string  `json:"news"`
}

type PlayerDetail struct {
	Player
	GoalsConceded     int     `json:"goals_conceded"`
	YellowCards       int     `json:"yellow_cards"`
	RedCards          int     `json:"red_cards"`
	Saves             int     `json:"saves"`
	Bonus             int     `json:"bonus"`
	BPS               int     `json:"bps"`
	Influence         float64 `json:"influence"`
	Creativity        float64 `json:"creativity"`
	Threat            float64 `json:"threat"`
	ICTIndex          float64 `json:"ict_index"`
	TransfersInEvent  int     `json:"transfers_in_event"`
	TransfersOutEvent int     `json:"transfers_out_event"`
	CostChangeEvent   int     `json:"cost_change_event"`
	CostChangeStart   int     `json:"cost_change_start"`
	Photo             string  `json:"photo"`
}

// PlayersPage is one page of a filtered player query.
type PlayersPage struct {
	Players  []Player `json:"players"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// PlayerFilters narrow the paginated player query. Nil fields are omitted.
type PlayerFilters struct {
	Position      *int
	TeamID        *int
	MinPrice      *float64 // millions
	MaxPrice      *float64
	MinPoints     *int
	Status        string
	AvailableOnly bool
	Page          int
	PageSize      int
}

// PlayerRound is one historical gameweek line for a player.
type PlayerRound struct {
	Gameweek        int     `json:"gameweek"`
	Season          string  `json:"season"`
	Minutes         int     `json:"minutes"`
	TotalPoints     int     `json:"total_points"`
	GoalsScored     int     `json:"goals_scored"`
	Assists         int     `json:"assists"`
	CleanSheets     int     `json:"clean_sheets"`
	GoalsConceded   int     `json:"goals_conceded"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	Saves           int     `json:"saves"`
	Bonus           int     `json:"bonus"`
	BPS             int     `json:"bps"`
	Influence       float64 `json:"influence"`
	Creativity      float64 `json:"creativity"`
	Threat          float64 `json:"threat"`
	ICTIndex        float64 `json:"ict_index"`
	ExpectedGoals   float64 `json:"expected_goals"`
	ExpectedAssists float64 `json:"expected_assists"`
	WasHome         *bool   `json:"was_home"`
	Starts          int     `json:"starts"`
	OpponentTeamID  *int    `json:"opponent_team_id"`
}

// UpcomingFixture is one upcoming fixture from a player's perspective.
type UpcomingFixture struct {
	Gameweek       int    `json:"gameweek"`
	OpponentTeamID int    `json:"opponent_team_id"`
	IsHome         bool   `json:"is_home"`
	Difficulty     int    `json:"difficulty"`
	KickoffTime    string `json:"kickoff_time"`
}

type Team struct {
	ID                  int    `json:"id"`
	FPLID               int    `json:"fpl_id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
	Position            *int   `json:"position"`
	Played              int    `json:"played"`
	Won                 int    `json:"won"`
	Drawn               int    `json:"drawn"`
	Lost                int    `json:"lost"`
	Points              int    `json:"points"`
}

type Fixture struct {
	ID              int        `json:"id"`
	FPLID           int        `json:"fpl_id"`
	Gameweek        int        `json:"gameweek"`
	Season          string     `json:"season"`
	TeamHID         int        `json:"team_h_id"`
	TeamAID         int        `json:"team_a_id"`
	TeamHScore      *int       `json:"team_h_score"`
	TeamAScore      *int       `json:"team_a_score"`
	TeamHDifficulty int        `json:"team_h_difficulty"`
	TeamADifficulty int        `json:"team_a_difficulty"`
	KickoffTime     *time.Time `json:"kickoff_time"`
	Finished        bool       `json:"finished"`
}

// FixtureFilters narrow the fixture list query.
type FixtureFilters struct {
	Gameweek   *int
	TeamID     *int
	FutureOnly bool
	Limit      int
}

type Prediction struct {
	ID              int      `json:"id"`
	PlayerID        int      `json:"player_id"`
	Gameweek        int      `json:"gameweek"`
	Season          string   `json:"season"`
	PredictedPoints float64  `json:"predicted_points"`
	ConfidenceLower *float64 `json:"confidence_lower"`
	ConfidenceUpper *float64 `json:"confidence_upper"`
	StartProb       float64  `json:"start_probability"`
	PredictedMins   float64  `json:"predicted_minutes"`
	CeilingPoints   *float64 `json:"ceiling_points"`
	FloorPoints     *float64 `json:"floor_points"`
	Variance        *float64 `json:"variance"`
	ModelVersion    string   `json:"model_version"`
}

// PredictionFilters narrow the prediction list query. Gameweek is required
// by the service.
type PredictionFilters struct {
	Gameweek           int
	PlayerIDs          []int
	MinPredictedPoints *float64
	Position           *int
	Limit              int
}

// SquadPlayer is one slot of a squad as the service renders it.
type SquadPlayer struct {
	PlayerID        int     `json:"player_id"`
	Name            string  `json:"name"`
	Position        int     `json:"position"`
	TeamID          int     `json:"team_id"`
	Price           float64 `json:"price"`
	PredictedPoints float64 `json:"predicted_points"`
	GWPoints        *int    `json:"gw_points,omitempty"`
	IsStarter       bool    `json:"is_starter"`
	IsCaptain       bool    `json:"is_captain"`
	IsViceCaptain   bool    `json:"is_vice_captain,omitempty"`
}

// SquadData is the starting-eleven/bench split used by saved squads, imports
// and team summaries.
type SquadData struct {
	StartingXI []SquadPlayer `json:"starting_xi"`
	Bench      []SquadPlayer `json:"bench"`
}

// SavedSquad is the user's persisted current squad snapshot.
type SavedSquad struct {
	ID              int        `json:"id"`
	Gameweek        int        `json:"gameweek"`
	Season          string     `json:"season"`
	Squad           *SquadData `json:"squad"`
	Formation       string     `json:"formation"`
	CaptainID       *int       `json:"captain_id"`
	ViceCaptainID   *int       `json:"vice_captain_id"`
	TotalCost       float64    `json:"total_cost"`
	PredictedPoints float64    `json:"predicted_points"`
}

// SaveSquadParams is the snapshot payload for saving a squad as current.
type SaveSquadParams struct {
	Gameweek        int       `json:"gameweek"`
	Season          string    `json:"season"`
	Squad           SquadData `json:"squad"`
	Formation       string    `json:"formation,omitempty"`
	CaptainID       *int      `json:"captain_id,omitempty"`
	ViceCaptainID   *int      `json:"vice_captain_id,omitempty"`
	TotalCost       float64   `json:"total_cost"`
	PredictedPoints float64   `json:"predicted_points,omitempty"`
}

// SquadHistoryEntry is one row of the user's squad history.
type SquadHistoryEntry struct {
	ID              int     `json:"id"`
	Gameweek        int     `json:"gameweek"`
	Season          string  `json:"season"`
	Formation       string  `json:"formation"`
	TotalCost       float64 `json:"total_cost"`
	PredictedPoints float64 `json:"predicted_points"`
	IsCurrent       bool    `json:"is_current"`
}

// TeamSummary is the linked external team's current gameweek snapshot.
type TeamSummary struct {
	EntryID       int       `json:"entry_id"`
	Gameweek      int       `json:"gameweek"`
	Season        string    `json:"season"`
	Squad         SquadData `json:"squad"`
	Formation     string    `json:"formation"`
	CaptainID     *int      `json:"captain_id"`
	ViceCaptainID *int      `json:"vice_captain_id"`
	TeamValue     *float64  `json:"team_value"`
	Bank          *float64  `json:"bank"`
	GWPoints      int       `json:"gw_points"`
	TotalPoints   int       `json:"total_points"`
	OverallRank   *int      `json:"overall_rank"`
}

// OptimizationRequest is the full-squad optimization constraint set, passed
// through to the remote optimizer unmodified.
type OptimizationRequest struct {
	Gameweek       int         `json:"gameweek"`
	Budget         float64     `json:"budget"`
	Formation      string      `json:"formation,omitempty"`
	RiskTolerance  float64     `json:"risk_tolerance"`
	ExcludedIDs    []int       `json:"excluded_players,omitempty"`
	MinTeamPlayers map[int]int `json:"min_team_players,omitempty"`
	MaxTeamPlayers map[int]int `json:"max_team_players,omitempty"`
	CaptainOptions []int       `json:"captain_options,omitempty"`
}

// OptimizationResult is the optimizer's squad proposal. Alternatives are
// opaque.
type OptimizationResult struct {
	Squad           []SquadPlayer    `json:"squad"`
	StartingXI      []SquadPlayer    `json:"starting_xi"`
	Bench           []SquadPlayer    `json:"bench"`
	Formation       string           `json:"formation"`
	TotalCost       float64          `json:"total_cost"`
	PredictedPoints float64          `json:"predicted_points"`
	CaptainID       int              `json:"captain_id"`
	Alternatives    []map[string]any `json:"alternatives,omitempty"`
	Explanation     map[string]any   `json:"explanation,omitempty"`
}

// FormationResult is the best-formation search over a fixed 15.
type FormationResult struct {
	BestFormation string                        `json:"best_formation"`
	BestResult    *OptimizationResult           `json:"best_result"`
	AllFormations map[string]OptimizationResult `json:"all_formations"`
}

// CaptainOption is one captaincy candidate with its risk-adjusted scoring.
type CaptainOption struct {
	PlayerID           int     `json:"player_id"`
	Name               string  `json:"name"`
	Position           int     `json:"position"`
	ExpectedPoints     float64 `json:"expected_points"`
	RiskAdjustedPoints float64 `json:"risk_adjusted_points"`
	StartProb          float64 `json:"start_probability"`
	BasePoints         float64 `json:"base_points"`
	Variance           float64 `json:"variance"`
}

// CaptainResult is the captain optimization outcome. The service reports "no
// candidates" as an Error string with a 200 status.
type CaptainResult struct {
	Recommended *CaptainOption  `json:"recommended_captain"`
	TopOptions  []CaptainOption `json:"top_options"`
	AllOptions  []CaptainOption `json:"all_options"`
	Error       string          `json:"error,omitempty"`
}

// Chip names accepted by the transfer planner.
const (
	ChipWildcard      = "wildcard"
	ChipFreeHit       = "free_hit"
	ChipBenchBoost    = "bench_boost"
	ChipTripleCaptain = "triple_captain"
)

// TransferPlanRequest asks the planner for per-gameweek transfer plans over
// a horizon.
type TransferPlanRequest struct {
	CurrentSquad        []int           `json:"current_squad"`
	PlanningHorizon     int             `json:"planning_horizon"`
	MaxTransfersPerWeek int             `json:"max_transfers_per_week"`
	AvailableChips      map[string]bool `json:"available_chips"`
}

// GameweekPlan is one gameweek's plan. Its internal fields are not
// interpreted by this client beyond pass-through.
type GameweekPlan map[string]any

// TransferPlanResult is the planner's multi-gameweek answer.
type TransferPlanResult struct {
	GameweekPlans       []GameweekPlan  `json:"gameweek_plans"`
	ChipRecommendations map[string]*int `json:"chip_recommendations"`
	TotalExpectedGain   float64         `json:"total_expected_gain"`
	TotalTransferCosts  float64         `json:"total_transfer_costs"`
	PlanningHorizon     int             `json:"planning_horizon"`
}
