package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

// ErrInvalidPlan wraps every problem reported by Verify.
var ErrInvalidPlan = errors.New("invalid plan")

// Verify checks a finished plan against the placement rules: every table is
// one straight run of three cells, ids run 1..n without gaps, the counts
// agree with the grid and stay within target and capacity. Plans made by
// the spaced strategy are also checked for table spacing. All problems are
// returned joined; nil means the plan is valid.
func Verify(p model.PlanResult) error {
	if p.Grid == nil {
		return fmt.Errorf("%w: no grid", ErrInvalidPlan)
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidPlan}, args...)...))
	}

	cells := make(map[grid.Cell][][2]int)
	g := p.Grid
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			if id := g.Get(r, c); id.Occupied() {
				cells[id] = append(cells[id], [2]int{r, c})
			}
		}
	}

	for id, pos := range cells {
		if !straightRun(pos) {
			fail("table %d covers %v, want 3 consecutive cells in one row or column", id, pos)
		}
	}
	for id := 1; id <= len(cells); id++ {
		if _, ok := cells[grid.Cell(id)]; !ok {
			fail("table ids are not contiguous: %d missing", id)
		}
	}

	if len(cells) != p.Achieved {
		fail("achieved count %d, grid holds %d tables", p.Achieved, len(cells))
	}
	if p.Phase1 > p.Achieved {
		fail("row sweep count %d exceeds achieved count %d", p.Phase1, p.Achieved)
	}
	if p.Achieved > p.Room.Target {
		fail("achieved %d exceeds target %d", p.Achieved, p.Room.Target)
	}
	if p.Achieved > p.Room.Capacity() {
		fail("achieved %d exceeds capacity %d", p.Achieved, p.Room.Capacity())
	}

	if p.Strategy == model.StrategySpaced && len(errs) == 0 {
		errs = append(errs, spacingErrors(g)...)
	}

	return errors.Join(errs...)
}

func straightRun(pos [][2]int) bool {
	if len(pos) != grid.TableLength {
		return false
	}
	// pos is in row-major order, so a valid run is sorted already.
	sameRow, sameCol := true, true
	for k := 1; k < len(pos); k++ {
		if pos[k][0] != pos[0][0] || pos[k][1] != pos[0][1]+k {
			sameRow = false
		}
		if pos[k][1] != pos[0][1] || pos[k][0] != pos[0][0]+k {
			sameCol = false
		}
	}
	return sameRow || sameCol
}

// spacingErrors checks the spaced strategy rules. Horizontal tables never
// touch another horizontal table in their own row or the rows next to it,
// diagonals included; vertical tables keep their whole one-cell margin
// empty.
func spacingErrors(g *grid.Grid) []error {
	tiles := g.Tiles()
	orientation := make(map[grid.Cell]grid.Orientation, len(tiles))
	for _, t := range tiles {
		orientation[t.ID] = t.Orientation
	}

	var errs []error
	for _, t := range tiles {
		if t.Orientation == grid.Horizontal {
			for r := t.Row - 1; r <= t.Row+1; r++ {
				for c := t.Col - 1; c <= t.Col+grid.TableLength; c++ {
					other := g.Get(r, c)
					if !other.Occupied() || other == t.ID {
						continue
					}
					if orientation[other] == grid.Horizontal {
						errs = append(errs, fmt.Errorf("%w: horizontal tables %d and %d touch at (%d,%d)",
							ErrInvalidPlan, t.ID, other, r, c))
					}
				}
			}
			continue
		}

		for r := t.Row - 1; r <= t.Row+grid.TableLength; r++ {
			for c := t.Col - 1; c <= t.Col+1; c++ {
				if other := g.Get(r, c); other.Occupied() && other != t.ID {
					errs = append(errs, fmt.Errorf("%w: vertical table %d margin holds table %d at (%d,%d)",
						ErrInvalidPlan, t.ID, other, r, c))
				}
			}
		}
	}
	return errs
}
