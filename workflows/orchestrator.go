package workflows

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fplassist/go-fpl-client/api"
	"github.com/fplassist/go-fpl-client/squad"
)

// ErrEmptySquad means a workflow's precondition is unmet: the user has no
// resolvable squad yet. Callers should prompt for input, not retry.
var ErrEmptySquad = errors.New("no resolvable squad")

// Resolver yields the user's canonical current squad.
type Resolver interface {
	Resolve(ctx context.Context) (squad.Reference, error)
}

// OptimizerAPI is the slice of the API the workflows compose.
type OptimizerAPI interface {
	TeamSummary(ctx context.Context, entryID *int) (api.TeamSummary, error)
	OptimizeFormation(ctx context.Context, gameweek int, requiredPlayers []int) (api.FormationResult, error)
	OptimizeCaptain(ctx context.Context, playerIDs []int, gameweek *int) (api.CaptainResult, error)
	PlanTransfers(ctx context.Context, req api.TransferPlanRequest) (api.TransferPlanResult, error)
}

// Orchestrator sequences the multi-step optimization workflows. Each
// workflow is a strict linear pipeline: any step's failure aborts the whole
// workflow and surfaces verbatim; only the squad resolver has internal
// fallback absorption.
type Orchestrator struct {
	resolver  Resolver
	optimizer OptimizerAPI
}

// NewOrchestrator creates an orchestrator over a resolver and the optimizer
// API.
func NewOrchestrator(resolver Resolver, optimizer OptimizerAPI) (*Orchestrator, error) {
	if resolver == nil {
		return nil, errors.New("[NewOrchestrator] resolver is required")
	}
	if optimizer == nil {
		return nil, errors.New("[NewOrchestrator] optimizer API is required")
	}
	return &Orchestrator{resolver: resolver, optimizer: optimizer}, nil
}

// OptimizeLineup finds the best starting-eleven arrangement for the user's
// current 15, in their current gameweek.
func (o *Orchestrator) OptimizeLineup(ctx context.Context) (api.FormationResult, error) {
	ref, err := o.resolver.Resolve(ctx)
	if err != nil {
		return api.FormationResult{}, err
	}
	if ref.Empty() {
		return api.FormationResult{}, ErrEmptySquad
	}

	summary, err := o.optimizer.TeamSummary(ctx, nil)
	if err != nil {
		return api.FormationResult{}, err
	}

	return o.optimizer.OptimizeFormation(ctx, summary.Gameweek, ref.PlayerIDs())
}

// SuggestTransfers plans the immediate next move: a one-gameweek horizon
// with at most one transfer. Returns the first gameweek's plan.
func (o *Orchestrator) SuggestTransfers(ctx context.Context) (api.GameweekPlan, error) {
	ref, err := o.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if ref.Empty() {
		return nil, ErrEmptySquad
	}

	result, err := o.optimizer.PlanTransfers(ctx, api.TransferPlanRequest{
		CurrentSquad:        ref.PlayerIDs(),
		PlanningHorizon:     1,
		MaxTransfersPerWeek: 1,
		AvailableChips: map[string]bool{
			api.ChipWildcard:      false,
			api.ChipFreeHit:       false,
			api.ChipBenchBoost:    false,
			api.ChipTripleCaptain: false,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(result.GameweekPlans) == 0 {
		return nil, nil
	}
	return result.GameweekPlans[0], nil
}

// SuggestCaptain picks the single best captain candidate from the user's
// current squad, or nil when the optimizer has no candidate.
func (o *Orchestrator) SuggestCaptain(ctx context.Context) (*api.CaptainOption, error) {
	ref, err := o.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if ref.Empty() {
		return nil, ErrEmptySquad
	}

	result, err := o.optimizer.OptimizeCaptain(ctx, ref.PlayerIDs(), nil)
	if err != nil {
		return nil, err
	}
	// The service reports "no candidates" as an error string inside a 200.
	if result.Error != "" || result.Recommended == nil {
		return nil, nil
	}
	return result.Recommended, nil
}
