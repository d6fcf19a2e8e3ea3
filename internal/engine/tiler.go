// Package engine places tables on room grids.
//
// Both strategies run two bounded sweeps: a row sweep that lays horizontal
// tables, then a single row-major pass that inserts vertical tables into
// the gaps. Placements are never undone, and neither phase places more
// tables than the room's target.
package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

var (
	// ErrInvariant signals grid state the sweep order should make impossible.
	ErrInvariant = errors.New("placement invariant violated")
	// ErrUnknownStrategy is returned for strategies the engine does not implement.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Tiler runs the placement heuristic.
type Tiler struct {
	Settings model.PlanSettings
}

func New(settings model.PlanSettings) *Tiler {
	return &Tiler{Settings: settings}
}

// Solve places tables in a width x height room with the default settings.
func Solve(width, height, target int) (model.PlanResult, error) {
	return New(model.DefaultSettings()).Solve(model.Room{Width: width, Height: height, Target: target})
}

// Solve builds a fresh grid for room and fills it. The only error for a
// well-formed strategy is grid.ErrInvalidDimension.
func (t *Tiler) Solve(room model.Room) (model.PlanResult, error) {
	strategy := t.Settings.Strategy
	if strategy == "" {
		strategy = model.StrategySpaced
	}

	g, err := grid.New(room.Width, room.Height)
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("room %q: %w", room.Label, err)
	}

	target := room.Target
	if target < 0 {
		target = 0
	}
	s := &sweep{grid: g, target: target}

	switch strategy {
	case model.StrategySpaced:
		err = s.spacedRows()
		if err == nil && t.Settings.FillGaps {
			err = s.spacedGaps()
		}
	case model.StrategyDense:
		s.denseRows()
		if t.Settings.FillGaps {
			s.denseGaps()
		}
	default:
		return model.PlanResult{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("room %q: %w", room.Label, err)
	}

	return model.PlanResult{
		Room:     room,
		Strategy: strategy,
		Grid:     g,
		Achieved: s.placed,
		Phase1:   s.phase1,
	}, nil
}

// Capacity is the upper bound on tables for a width x height room.
func Capacity(width, height int) int {
	return model.Room{Width: width, Height: height}.Capacity()
}

// sweep carries the state shared by the two phases of one solve.
type sweep struct {
	grid   *grid.Grid
	target int
	placed int
	phase1 int
}

func (s *sweep) full() bool {
	return s.placed >= s.target
}

// nextID returns the id for the next table. Ids start at 1.
func (s *sweep) nextID() grid.Cell {
	return grid.Cell(s.placed + 1)
}

// spacedRows lays horizontal tables row by row. A table keeps one free
// column to its left neighbour in the same row, and none of the cells from
// one column before to one column after it may be occupied in the rows
// directly above and below.
func (s *sweep) spacedRows() error {
	g := s.grid
	w := g.Width()
	for row := 0; row < g.Height() && !s.full(); row++ {
		col := 0
		for col+grid.TableLength <= w && !s.full() {
			if g.Get(row, col-1).Occupied() {
				col++
			}
			if s.rowBlocked(row-1, col) || s.rowBlocked(row+1, col) {
				col += grid.TableLength
				continue
			}
			if col+grid.TableLength > w {
				break
			}
			if err := g.PlaceHorizontal(row, col, s.nextID()); err != nil {
				return err
			}
			s.placed++
			if err := s.clearBelow(row, col); err != nil {
				return err
			}
			col += grid.TableLength
		}
	}
	s.phase1 = s.placed
	return nil
}

// rowBlocked reports whether any of columns col-1..col+3 in row is occupied.
func (s *sweep) rowBlocked(row, col int) bool {
	return !s.grid.IsRegionEmpty(row, col-1, row, col+grid.TableLength)
}

// clearBelow frees the seating cells under a fresh horizontal table. The
// rows below have not been swept yet, so they must already be empty.
func (s *sweep) clearBelow(row, col int) error {
	for k := 0; k < grid.TableLength; k++ {
		if prev := s.grid.Clear(row+1, col+k); prev.Occupied() {
			return fmt.Errorf("%w: cell (%d,%d) below table %d held table %d",
				ErrInvariant, row+1, col+k, s.placed, prev)
		}
	}
	return nil
}

// spacedGaps inserts vertical tables that keep an empty one-cell margin on
// every side, corners included.
func (s *sweep) spacedGaps() error {
	g := s.grid
	for i := 0; i < g.Height() && !s.full(); i++ {
		for j := 0; j < g.Width() && !s.full(); j++ {
			if g.Get(i, j).Occupied() || i+grid.TableLength-1 >= g.Height() {
				continue
			}
			if !g.IsRegionEmpty(i-1, j-1, i+grid.TableLength, j+1) {
				continue
			}
			if err := g.PlaceVertical(i, j, s.nextID()); err != nil {
				return err
			}
			s.placed++
		}
	}
	return nil
}

// denseRows packs horizontal tables back to back from column 0.
func (s *sweep) denseRows() {
	g := s.grid
	for row := 0; row < g.Height() && !s.full(); row++ {
		for col := 0; col+grid.TableLength <= g.Width() && !s.full(); col += grid.TableLength {
			// The run always fits and rows are visited once, so this cannot fail.
			_ = g.PlaceHorizontal(row, col, s.nextID())
			s.placed++
		}
	}
	s.phase1 = s.placed
}

// denseGaps drops vertical tables into any empty 3x1 column run.
func (s *sweep) denseGaps() {
	g := s.grid
	for i := 0; i < g.Height() && !s.full(); i++ {
		for j := 0; j < g.Width() && !s.full(); j++ {
			if g.IsRunEmpty(i, j, grid.Vertical) {
				_ = g.PlaceVertical(i, j, s.nextID())
				s.placed++
			}
		}
	}
}
