package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

// roomGap is the horizontal space between rooms, in cells.
const roomGap = 2

// ExportDXF draws every plan as a room outline with one rectangle per
// table. Rooms are laid out left to right; cellSize is the drawing units
// per grid cell. Row 0 is at the top of each room.
func ExportDXF(path string, plans []model.PlanResult, cellSize float64) error {
	if len(plans) == 0 {
		return ErrNoPlans
	}
	if cellSize <= 0 {
		cellSize = 1
	}

	d := dxf.NewDrawing()
	originX := 0.0
	for i, plan := range plans {
		if plan.Grid == nil {
			return fmt.Errorf("plan %d (%s): no grid", i+1, plan.Room.Label)
		}
		g := plan.Grid
		h := float64(g.Height()) * cellSize

		if err := rect(d, originX, 0, originX+float64(g.Width())*cellSize, h); err != nil {
			return fmt.Errorf("room %d outline: %w", i+1, err)
		}

		for _, t := range plan.Tiles() {
			w, th := grid.TableLength, 1
			if t.Orientation == grid.Vertical {
				w, th = th, w
			}
			x0 := originX + float64(t.Col)*cellSize
			y1 := h - float64(t.Row)*cellSize
			x1 := x0 + float64(w)*cellSize
			y0 := y1 - float64(th)*cellSize
			if err := rect(d, x0, y0, x1, y1); err != nil {
				return fmt.Errorf("room %d table %d: %w", i+1, t.ID, err)
			}
		}

		originX += float64(g.Width()+roomGap) * cellSize
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write dxf %s: %w", path, err)
	}
	return nil
}

// rect draws an axis-aligned rectangle as four LINE entities.
func rect(d *drawing.Drawing, x0, y0, x1, y1 float64) error {
	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
