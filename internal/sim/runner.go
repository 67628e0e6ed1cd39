package sim

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// BatchSpec describes a batch of seeded matches for balance runs.
type BatchSpec struct {
	BaseSeed uint64
	Matches  int
	TickMs   int32
	MaxTicks int32

	// Workers caps concurrent matches. <=0 means no explicit cap.
	Workers int

	// Setup populates a fresh match with its combatants. Called once
	// per match; must be safe to call from multiple goroutines.
	Setup func(m *Match) error
}

// RunBatch plays the batch concurrently, one goroutine per match. Each
// match is single-threaded internally; only whole matches run in
// parallel. Results arrive indexed by match number, so output order is
// independent of scheduling.
func RunBatch(ctx context.Context, spec BatchSpec) ([]Result, error) {
	results := make([]Result, spec.Matches)

	g, ctx := errgroup.WithContext(ctx)
	if spec.Workers > 0 {
		g.SetLimit(spec.Workers)
	}

	for i := 0; i < spec.Matches; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := spec.BaseSeed + uint64(i)
			m := NewMatch(seed, spec.TickMs, spec.MaxTicks)
			if err := spec.Setup(m); err != nil {
				return err
			}
			results[i] = m.Run()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	wins := map[string]int{}
	for _, r := range results {
		wins[r.Winner.String()]++
	}
	slog.Info("batch finished", "matches", spec.Matches, "outcomes", wins)
	return results, nil
}
