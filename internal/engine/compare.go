package engine

import (
	"fmt"

	"github.com/piwi3910/TablePlan/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlanSettings
}

// ComparisonResult holds the plans and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Plans       []model.PlanResult
	Failed      int // Rooms that could not be built
	Achieved    int
	Target      int
	Shortfall   int
	RoomsMet    int     // Rooms whose target was reached
	FillPercent float64 // Occupied share of all cells
}

// CompareScenarios solves every room under each scenario and returns the
// results in scenario order, for side-by-side comparison of strategies.
func CompareScenarios(scenarios []ComparisonScenario, rooms []model.Room) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		tiler := New(scenario.Settings)
		cr := ComparisonResult{Scenario: scenario}
		var occupied, cells int

		for _, room := range rooms {
			plan, err := tiler.Solve(room)
			if err != nil {
				cr.Failed++
				continue
			}
			cr.Plans = append(cr.Plans, plan)
			cr.Achieved += plan.Achieved
			cr.Target += room.Target
			cr.Shortfall += plan.Shortfall()
			if plan.Shortfall() == 0 {
				cr.RoomsMet++
			}
			occupied += plan.Grid.Occupied()
			cells += plan.Grid.Width() * plan.Grid.Height()
		}

		if cells > 0 {
			cr.FillPercent = float64(occupied) / float64(cells) * 100.0
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates the base settings plus every other
// strategy and the base settings without gap filling.
func BuildDefaultScenarios(base model.PlanSettings) []ComparisonScenario {
	if base.Strategy == "" {
		base.Strategy = model.StrategySpaced
	}
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	for _, s := range model.Strategies() {
		if s == base.Strategy {
			continue
		}
		alt := base
		alt.Strategy = s
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Strategy %s", s),
			Settings: alt,
		})
	}

	if base.FillGaps {
		noGaps := base
		noGaps.FillGaps = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Row Sweep Only",
			Settings: noGaps,
		})
	}

	return scenarios
}

// Best returns the index of the scenario that placed the most tables,
// preferring the earlier scenario on ties. It returns -1 for no results.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 || r.Achieved > results[best].Achieved {
			best = i
		}
	}
	return best
}
