package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

func planFromRows(t *testing.T, strategy model.Strategy, target int, rows [][]grid.Cell) model.PlanResult {
	t.Helper()
	g, err := grid.FromRows(rows)
	require.NoError(t, err)
	return model.PlanResult{
		Room:     model.Room{Width: g.Width(), Height: g.Height(), Target: target},
		Strategy: strategy,
		Grid:     g,
		Achieved: g.Count(),
		Phase1:   g.Count(),
	}
}

func TestVerify_ValidHandBuiltPlan(t *testing.T) {
	p := planFromRows(t, model.StrategySpaced, 3, [][]grid.Cell{
		{1, 1, 1, 0, 3},
		{0, 0, 0, 0, 3},
		{2, 2, 2, 0, 3},
	})
	p.Phase1 = 2
	assert.NoError(t, Verify(p))
}

func TestVerify_NoGrid(t *testing.T) {
	err := Verify(model.PlanResult{})
	assert.True(t, errors.Is(err, ErrInvalidPlan))
}

func TestVerify_BrokenRun(t *testing.T) {
	p := planFromRows(t, model.StrategyDense, 5, [][]grid.Cell{
		{1, 1, 0},
		{0, 1, 0},
	})
	err := Verify(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPlan))
	assert.Contains(t, err.Error(), "table 1")
}

func TestVerify_NonContiguousIDs(t *testing.T) {
	p := planFromRows(t, model.StrategyDense, 5, [][]grid.Cell{
		{1, 1, 1},
		{3, 3, 3},
	})
	err := Verify(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 missing")
}

func TestVerify_CountMismatch(t *testing.T) {
	p := planFromRows(t, model.StrategyDense, 5, [][]grid.Cell{
		{1, 1, 1},
	})
	p.Achieved = 2
	err := Verify(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid holds 1")
}

func TestVerify_OverTarget(t *testing.T) {
	p := planFromRows(t, model.StrategyDense, 1, [][]grid.Cell{
		{1, 1, 1},
		{2, 2, 2},
	})
	err := Verify(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds target")
}

func TestVerify_Phase1AboveAchieved(t *testing.T) {
	p := planFromRows(t, model.StrategyDense, 5, [][]grid.Cell{
		{1, 1, 1},
	})
	p.Phase1 = 2
	err := Verify(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row sweep count")
}

func TestVerify_SpacedAdjacentRows(t *testing.T) {
	rows := [][]grid.Cell{
		{1, 1, 1, 0},
		{0, 2, 2, 2},
	}

	// Back-to-back rows are fine for the dense strategy only.
	assert.NoError(t, Verify(planFromRows(t, model.StrategyDense, 5, rows)))

	err := Verify(planFromRows(t, model.StrategySpaced, 5, rows))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "touch")
}

func TestVerify_SpacedSameRowNoGap(t *testing.T) {
	err := Verify(planFromRows(t, model.StrategySpaced, 5, [][]grid.Cell{
		{1, 1, 1, 2, 2, 2},
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPlan))
}

func TestVerify_SpacedVerticalMargin(t *testing.T) {
	err := Verify(planFromRows(t, model.StrategySpaced, 5, [][]grid.Cell{
		{1, 1, 1, 2},
		{0, 0, 0, 2},
		{0, 0, 0, 2},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vertical table 2 margin")
}

func TestVerify_SolvedPlansPass(t *testing.T) {
	for _, s := range model.Strategies() {
		res, err := New(model.PlanSettings{Strategy: s, FillGaps: true}).
			Solve(model.Room{Width: 20, Height: 15, Target: 60})
		require.NoError(t, err)
		assert.NoError(t, Verify(res), "strategy %s", s)
	}
}
