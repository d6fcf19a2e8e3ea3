package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

func TestSolveAll_KeepsInputOrder(t *testing.T) {
	rooms := []model.Room{
		{Label: "a", Width: 10, Height: 5, Target: 100},
		{Label: "b", Width: 3, Height: 3, Target: 1},
		{Label: "c", Width: 7, Height: 7, Target: 100},
		{Label: "d", Width: 1, Height: 5, Target: 3},
	}

	outcomes, err := SolveAll(context.Background(), rooms, model.DefaultSettings(), 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	want := []int{7, 1, 8, 1}
	for i, o := range outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, i, o.Index)
		assert.Equal(t, rooms[i].Label, o.Room.Label)
		assert.Equal(t, want[i], o.Result.Achieved, "room %s", o.Room.Label)
	}
}

func TestSolveAll_MatchesSequential(t *testing.T) {
	var rooms []model.Room
	for w := 1; w <= 9; w++ {
		for h := 1; h <= 9; h++ {
			rooms = append(rooms, model.Room{Width: w, Height: h, Target: w * h})
		}
	}

	settings := model.PlanSettings{Strategy: model.StrategyDense, FillGaps: true}
	outcomes, err := SolveAll(context.Background(), rooms, settings, 0)
	require.NoError(t, err)

	for i, room := range rooms {
		seq, err := New(settings).Solve(room)
		require.NoError(t, err)
		assert.Equal(t, seq.Grid.Rows(), outcomes[i].Result.Grid.Rows(), "room %v", room)
	}
}

func TestSolveAll_BadRoomDoesNotStopBatch(t *testing.T) {
	rooms := []model.Room{
		{Label: "good", Width: 3, Height: 3, Target: 1},
		{Label: "bad", Width: 0, Height: 3, Target: 1},
		{Label: "also good", Width: 6, Height: 2, Target: 4},
	}

	outcomes, err := SolveAll(context.Background(), rooms, model.DefaultSettings(), 1)
	require.NoError(t, err)

	assert.NoError(t, outcomes[0].Err)
	assert.True(t, errors.Is(outcomes[1].Err, grid.ErrInvalidDimension))
	assert.NoError(t, outcomes[2].Err)

	plans, failed := Results(outcomes)
	assert.Len(t, plans, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Room.Label)
}

func TestSolveAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SolveAll(ctx, []model.Room{{Width: 3, Height: 3, Target: 1}}, model.DefaultSettings(), 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolveAll_Empty(t *testing.T) {
	outcomes, err := SolveAll(context.Background(), nil, model.DefaultSettings(), 4)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
