package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

// layout renders a grid as X/. rows joined by "|".
func layout(g *grid.Grid) string {
	rows := make([]string, 0, g.Height())
	for r := 0; r < g.Height(); r++ {
		var b strings.Builder
		for c := 0; c < g.Width(); c++ {
			if g.Get(r, c).Occupied() {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "|")
}

func solveWith(t *testing.T, strategy model.Strategy, w, h, target int) model.PlanResult {
	t.Helper()
	settings := model.DefaultSettings()
	settings.Strategy = strategy
	res, err := New(settings).Solve(model.Room{Label: "test", Width: w, Height: h, Target: target})
	require.NoError(t, err)
	require.NoError(t, Verify(res))
	return res
}

func TestSolve_SpacedPinnedResults(t *testing.T) {
	tests := []struct {
		w, h, target     int
		phase1, achieved int
		layout           string
	}{
		{6, 2, 4, 1, 1, "XXX...|......"},
		{3, 3, 1, 1, 1, "XXX|...|..."},
		{3, 3, 5, 2, 2, "XXX|...|XXX"},
		{1, 5, 3, 0, 1, "X|X|X|.|."},
		{5, 1, 3, 1, 1, "XXX.."},
		{7, 7, 100, 8, 8, "XXX.XXX|.......|XXX.XXX|.......|XXX.XXX|.......|XXX.XXX"},
		{10, 5, 100, 6, 7, "XXX.XXX.X.|........X.|XXX.XXX.X.|..........|XXX.XXX..."},
		{9, 5, 10, 6, 7, "XXX.XXX.X|........X|XXX.XXX.X|.........|XXX.XXX.."},
		{5, 5, 100, 3, 4, "XXX.X|....X|XXX.X|.....|XXX.."},
		{4, 4, 10, 2, 2, "XXX.|....|XXX.|...."},
		{4, 6, 10, 3, 3, "XXX.|....|XXX.|....|XXX.|...."},
		{8, 4, 100, 4, 4, "XXX.XXX.|........|XXX.XXX.|........"},
	}
	for _, tt := range tests {
		res := solveWith(t, model.StrategySpaced, tt.w, tt.h, tt.target)
		assert.Equal(t, tt.phase1, res.Phase1, "%dx%d target %d phase1", tt.w, tt.h, tt.target)
		assert.Equal(t, tt.achieved, res.Achieved, "%dx%d target %d achieved", tt.w, tt.h, tt.target)
		assert.Equal(t, tt.layout, layout(res.Grid), "%dx%d target %d layout", tt.w, tt.h, tt.target)
	}
}

func TestSolve_DensePinnedResults(t *testing.T) {
	tests := []struct {
		w, h, target     int
		phase1, achieved int
	}{
		{6, 2, 4, 4, 4},
		{3, 3, 5, 3, 3},
		{7, 7, 100, 14, 16},
		{10, 5, 100, 15, 16},
		{4, 4, 10, 4, 5},
		{9, 5, 10, 10, 10},
		{4, 6, 10, 6, 8},
		{5, 5, 100, 5, 7},
		{4, 3, 5, 3, 4},
		{8, 4, 100, 8, 10},
	}
	for _, tt := range tests {
		res := solveWith(t, model.StrategyDense, tt.w, tt.h, tt.target)
		assert.Equal(t, tt.phase1, res.Phase1, "%dx%d target %d phase1", tt.w, tt.h, tt.target)
		assert.Equal(t, tt.achieved, res.Achieved, "%dx%d target %d achieved", tt.w, tt.h, tt.target)
	}
}

func TestSolve_TileIDsAndOrientation(t *testing.T) {
	res := solveWith(t, model.StrategySpaced, 10, 5, 100)

	tiles := res.Tiles()
	require.Len(t, tiles, 7)

	// The vertical table is inserted last but sits in row 0.
	assert.Equal(t, grid.Tile{ID: 1, Row: 0, Col: 0, Orientation: grid.Horizontal}, tiles[0])
	assert.Equal(t, grid.Tile{ID: 2, Row: 0, Col: 4, Orientation: grid.Horizontal}, tiles[1])
	assert.Equal(t, grid.Tile{ID: 7, Row: 0, Col: 8, Orientation: grid.Vertical}, tiles[2])
	assert.Equal(t, grid.Cell(7), res.Grid.Get(2, 8))
	assert.Equal(t, grid.Cell(6), res.Grid.Get(4, 6))
}

func TestSolve_SingleTableInSquareRoom(t *testing.T) {
	res, err := Solve(3, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Achieved)
	assert.Equal(t, []grid.Tile{{ID: 1, Row: 0, Col: 0, Orientation: grid.Horizontal}}, res.Tiles())
	assert.Equal(t, 0, res.Shortfall())
}

func TestSolve_TooSmallRooms(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {2, 1}, {1, 2}} {
		for _, s := range model.Strategies() {
			res := solveWith(t, s, dims[0], dims[1], 5)
			assert.Equal(t, 0, res.Achieved, "%s %v", s, dims)
			assert.Equal(t, 5, res.Shortfall(), "%s %v", s, dims)
		}
	}
}

func TestSolve_ZeroTarget(t *testing.T) {
	for _, s := range model.Strategies() {
		res := solveWith(t, s, 9, 9, 0)
		assert.Equal(t, 0, res.Achieved)
		assert.Equal(t, 0, res.Grid.Occupied())
	}
}

func TestSolve_NegativeTargetPlacesNothing(t *testing.T) {
	res, err := Solve(6, 6, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Achieved)
}

func TestSolve_InvalidDimension(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-2, 3}} {
		_, err := Solve(dims[0], dims[1], 1)
		assert.True(t, errors.Is(err, grid.ErrInvalidDimension), "dims %v", dims)
	}
}

func TestSolve_UnknownStrategy(t *testing.T) {
	_, err := New(model.PlanSettings{Strategy: "zigzag"}).Solve(model.Room{Width: 3, Height: 3, Target: 1})
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestSolve_EmptyStrategyDefaultsToSpaced(t *testing.T) {
	res, err := New(model.PlanSettings{FillGaps: true}).Solve(model.Room{Width: 10, Height: 5, Target: 100})
	require.NoError(t, err)
	assert.Equal(t, model.StrategySpaced, res.Strategy)
	assert.Equal(t, 7, res.Achieved)
}

func TestSolve_FillGapsDisabled(t *testing.T) {
	settings := model.DefaultSettings()
	settings.FillGaps = false

	res, err := New(settings).Solve(model.Room{Width: 1, Height: 5, Target: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Achieved)

	res, err = New(settings).Solve(model.Room{Width: 10, Height: 5, Target: 100})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Achieved)
	assert.Equal(t, res.Phase1, res.Achieved)
}

func TestSolve_TargetReachedInRowSweep(t *testing.T) {
	// Phase 2 has nothing to do once the target is met.
	res := solveWith(t, model.StrategySpaced, 10, 5, 4)
	assert.Equal(t, 4, res.Phase1)
	assert.Equal(t, 4, res.Achieved)
	assert.Equal(t, "XXX.XXX...|..........|XXX.XXX...|..........|..........", layout(res.Grid))
}

func TestSolve_Idempotent(t *testing.T) {
	for _, s := range model.Strategies() {
		a := solveWith(t, s, 11, 7, 20)
		b := solveWith(t, s, 11, 7, 20)
		assert.Equal(t, a.Grid.Rows(), b.Grid.Rows(), "strategy %s", s)
		assert.Equal(t, a.Achieved, b.Achieved)
	}
}

func TestSolve_AllSizesVerify(t *testing.T) {
	targets := []int{0, 1, 2, 5, 13, 1000}
	for _, s := range model.Strategies() {
		for w := 1; w <= 13; w++ {
			for h := 1; h <= 13; h++ {
				for _, target := range targets {
					res, err := New(model.PlanSettings{Strategy: s, FillGaps: true}).
						Solve(model.Room{Width: w, Height: h, Target: target})
					require.NoError(t, err)
					require.NoError(t, Verify(res), "%s %dx%d target %d", s, w, h, target)
					assert.LessOrEqual(t, res.Achieved, target)
					assert.LessOrEqual(t, res.Achieved, Capacity(w, h))
				}
			}
		}
	}
}

func TestSolve_DenseNeverBelowSpaced(t *testing.T) {
	for w := 1; w <= 12; w++ {
		for h := 1; h <= 12; h++ {
			spaced := solveWith(t, model.StrategySpaced, w, h, 1000)
			dense := solveWith(t, model.StrategyDense, w, h, 1000)
			assert.GreaterOrEqual(t, dense.Achieved, spaced.Achieved, "%dx%d", w, h)
		}
	}
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 0, Capacity(1, 1))
	assert.Equal(t, 1, Capacity(1, 3))
	assert.Equal(t, 4, Capacity(6, 2))
	assert.Equal(t, 16, Capacity(7, 7))
	assert.Equal(t, 0, Capacity(0, 9))
}
