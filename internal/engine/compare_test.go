package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TablePlan/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())
	require.Len(t, scenarios, 3)

	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, model.StrategySpaced, scenarios[0].Settings.Strategy)
	assert.Equal(t, model.StrategyDense, scenarios[1].Settings.Strategy)
	assert.False(t, scenarios[2].Settings.FillGaps)
}

func TestBuildDefaultScenarios_NoGapFill(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.PlanSettings{Strategy: model.StrategyDense})
	require.Len(t, scenarios, 2)
	assert.Equal(t, model.StrategyDense, scenarios[0].Settings.Strategy)
	assert.Equal(t, model.StrategySpaced, scenarios[1].Settings.Strategy)
}

func TestCompareScenarios(t *testing.T) {
	rooms := []model.Room{
		{Label: "hall", Width: 10, Height: 5, Target: 100},
		{Label: "office", Width: 3, Height: 3, Target: 1},
		{Label: "broken", Width: 0, Height: 3, Target: 1},
	}

	results := CompareScenarios(BuildDefaultScenarios(model.DefaultSettings()), rooms)
	require.Len(t, results, 3)

	spaced := results[0]
	assert.Equal(t, 8, spaced.Achieved)
	assert.Equal(t, 101, spaced.Target)
	assert.Equal(t, 93, spaced.Shortfall)
	assert.Equal(t, 1, spaced.RoomsMet)
	assert.Equal(t, 1, spaced.Failed)
	assert.Len(t, spaced.Plans, 2)
	// 24 occupied out of 59 cells
	assert.InDelta(t, 24.0/59.0*100.0, spaced.FillPercent, 1e-9)

	dense := results[1]
	assert.Equal(t, 17, dense.Achieved)

	rowsOnly := results[2]
	assert.Equal(t, 7, rowsOnly.Achieved)

	assert.Equal(t, 1, Best(results))
}

func TestBest_Empty(t *testing.T) {
	assert.Equal(t, -1, Best(nil))
}
