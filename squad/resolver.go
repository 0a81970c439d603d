package squad

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fplassist/go-fpl-client/api"
	"github.com/fplassist/go-fpl-client/transport"
)

// Sources is the slice of the API the resolver reads.
type Sources interface {
	CurrentSquad(ctx context.Context) (*api.SavedSquad, error)
	TeamSummary(ctx context.Context, entryID *int) (api.TeamSummary, error)
}

// Resolver produces the user's canonical current squad by ordered fallback:
// the saved-squad snapshot first, then a live read of the linked external
// team.
type Resolver struct {
	sources Sources
}

// NewResolver creates a resolver over the given squad sources.
func NewResolver(sources Sources) (*Resolver, error) {
	if sources == nil {
		return nil, errors.New("[NewResolver] squad sources are required")
	}
	return &Resolver{sources: sources}, nil
}

// Resolve returns the current squad reference. Failures on the saved-squad
// source are absorbed and the fallback attempted; the team-summary source is
// the last resort, so its transport failures surface. A user with no squad
// anywhere resolves to an empty Reference, not an error.
func (r *Resolver) Resolve(ctx context.Context) (Reference, error) {
	saved, err := r.sources.CurrentSquad(ctx)
	if err == nil && saved != nil && saved.Squad != nil {
		if ref := fromSquadData(*saved.Squad); !ref.Empty() {
			return ref, nil
		}
	}

	summary, err := r.sources.TeamSummary(ctx, nil)
	if err != nil {
		// The service rejects the summary request outright when no external
		// team is linked; that is "no squad here", not a failure.
		var rejected *transport.RejectedError
		if errors.As(err, &rejected) {
			return Reference{}, nil
		}
		return Reference{}, err
	}

	return fromSquadData(summary.Squad), nil
}

func fromSquadData(data api.SquadData) Reference {
	ref := Reference{}
	for _, p := range data.StartingXI {
		ref.StartingXI = append(ref.StartingXI, p.PlayerID)
	}
	for _, p := range data.Bench {
		ref.Bench = append(ref.Bench, p.PlayerID)
	}
	return ref
}
