package engine

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/TablePlan/internal/model"
)

// Outcome is the result of solving one room of a batch.
type Outcome struct {
	Index  int
	Room   model.Room
	Result model.PlanResult
	Err    error
}

// SolveAll solves rooms concurrently, at most workers at a time (workers
// <= 0 means one per CPU). Rooms share nothing, so a failing room only
// records its error in its Outcome. The returned slice is in input order.
// The batch error is non-nil only when ctx is cancelled.
func SolveAll(ctx context.Context, rooms []model.Room, settings model.PlanSettings, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := log.FromContext(ctx)
	outcomes := make([]Outcome, len(rooms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, room := range rooms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := New(settings).Solve(room)
			outcomes[i] = Outcome{Index: i, Room: room, Result: res, Err: err}
			if err == nil {
				logger.Debug("room solved", "room", i+1, "label", room.Label, "achieved", res.Achieved, "target", room.Target)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Results returns the successful plans of a batch in order, and the
// outcomes that failed.
func Results(outcomes []Outcome) ([]model.PlanResult, []Outcome) {
	var plans []model.PlanResult
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
			continue
		}
		plans = append(plans, o.Result)
	}
	return plans, failed
}
