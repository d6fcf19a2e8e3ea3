package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

// Table colors cycle through these for visual distinction.
var tableColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 220},  // green
	{R: 33, G: 150, B: 243, A: 220}, // blue
	{R: 255, G: 152, B: 0, A: 220},  // orange
	{R: 156, G: 39, B: 176, A: 220}, // purple
	{R: 0, G: 188, B: 212, A: 220},  // cyan
	{R: 244, G: 67, B: 54, A: 220},  // red
	{R: 255, G: 235, B: 59, A: 220}, // yellow
	{R: 121, G: 85, B: 72, A: 220},  // brown
}

var (
	floorColor = color.NRGBA{R: 235, G: 230, B: 220, A: 255}
	lineColor  = color.NRGBA{R: 200, G: 195, B: 185, A: 255}
	wallColor  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	edgeColor  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// RoomCanvas renders the grid of a single plan.
type RoomCanvas struct {
	widget.BaseWidget
	plan      model.PlanResult
	maxWidth  float32
	maxHeight float32
}

func NewRoomCanvas(plan model.PlanResult, maxW, maxH float32) *RoomCanvas {
	rc := &RoomCanvas{
		plan:      plan,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	rc.ExtendBaseWidget(rc)
	return rc
}

func (rc *RoomCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newRoomCanvasRenderer(rc)
}

// CellScale returns the side of one cell in pixels so that a w x h grid
// fits within maxW x maxH.
func CellScale(w, h int, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 0
	}
	scale := maxW / float32(w)
	if s := maxH / float32(h); s < scale {
		scale = s
	}
	return scale
}

type roomCanvasRenderer struct {
	rc      *RoomCanvas
	objects []fyne.CanvasObject
}

func newRoomCanvasRenderer(rc *RoomCanvas) *roomCanvasRenderer {
	r := &roomCanvasRenderer{rc: rc}
	r.rebuild()
	return r
}

func (r *roomCanvasRenderer) rebuild() {
	r.objects = nil

	g := r.rc.plan.Grid
	if g == nil {
		return
	}
	scale := CellScale(g.Width(), g.Height(), r.rc.maxWidth, r.rc.maxHeight)
	canvasW := float32(g.Width()) * scale
	canvasH := float32(g.Height()) * scale

	bg := canvas.NewRectangle(floorColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	// Cell grid lines, skipped when cells get too small to see
	if scale >= 6 {
		for c := 1; c < g.Width(); c++ {
			x := float32(c) * scale
			line := canvas.NewLine(lineColor)
			line.Position1 = fyne.NewPos(x, 0)
			line.Position2 = fyne.NewPos(x, canvasH)
			r.objects = append(r.objects, line)
		}
		for row := 1; row < g.Height(); row++ {
			y := float32(row) * scale
			line := canvas.NewLine(lineColor)
			line.Position1 = fyne.NewPos(0, y)
			line.Position2 = fyne.NewPos(canvasW, y)
			r.objects = append(r.objects, line)
		}
	}

	for _, t := range g.Tiles() {
		r.drawTable(t, scale)
	}

	wall := canvas.NewRectangle(color.Transparent)
	wall.StrokeColor = wallColor
	wall.StrokeWidth = 2
	wall.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, wall)
}

func (r *roomCanvasRenderer) drawTable(t grid.Tile, scale float32) {
	cols, rows := grid.TableLength, 1
	if t.Orientation == grid.Vertical {
		cols, rows = 1, grid.TableLength
	}
	x := float32(t.Col) * scale
	y := float32(t.Row) * scale
	w := float32(cols) * scale
	h := float32(rows) * scale

	col := tableColors[(int(t.ID)-1)%len(tableColors)]
	rect := canvas.NewRectangle(col)
	rect.StrokeColor = edgeColor
	rect.StrokeWidth = 1
	rect.Resize(fyne.NewSize(w, h))
	rect.Move(fyne.NewPos(x, y))
	r.objects = append(r.objects, rect)

	if scale >= 14 {
		label := canvas.NewText(fmt.Sprintf("%d", t.ID), color.Black)
		label.TextSize = 10
		label.Move(fyne.NewPos(x+3, y+1))
		r.objects = append(r.objects, label)
	}
}

func (r *roomCanvasRenderer) Layout(size fyne.Size)        {}
func (r *roomCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *roomCanvasRenderer) Destroy()                     {}
func (r *roomCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *roomCanvasRenderer) MinSize() fyne.Size {
	g := r.rc.plan.Grid
	if g == nil {
		return fyne.NewSize(0, 0)
	}
	scale := CellScale(g.Width(), g.Height(), r.rc.maxWidth, r.rc.maxHeight)
	return fyne.NewSize(float32(g.Width())*scale, float32(g.Height())*scale)
}

// RenderPlans creates a scrollable container of all room plans.
func RenderPlans(plans []model.PlanResult) fyne.CanvasObject {
	if len(plans) == 0 {
		return widget.NewLabel("No plans yet. Add rooms, then click Solve.")
	}

	var items []fyne.CanvasObject
	achieved, target, short := 0, 0, 0

	for i, p := range plans {
		header := widget.NewLabel(fmt.Sprintf(
			"Room %d: %s (%d × %d): %d of %d tables, %.1f%% covered",
			i+1, p.Room.Label, p.Room.Width, p.Room.Height,
			p.Achieved, p.Room.Target, p.FillRatio()*100,
		))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header, NewRoomCanvas(p, 600, 400))

		if p.Shortfall() > 0 {
			warning := widget.NewLabel(fmt.Sprintf("%d tables could not be placed.", p.Shortfall()))
			warning.Importance = widget.WarningImportance
			items = append(items, warning)
		}
		items = append(items, widget.NewSeparator())

		achieved += p.Achieved
		target += p.Room.Target
		short += p.Shortfall()
	}

	summaryText := fmt.Sprintf("Total: %d rooms, %d of %d tables placed", len(plans), achieved, target)
	if short > 0 {
		summaryText += fmt.Sprintf(" | %d short", short)
	}
	summary := widget.NewLabel(summaryText)
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
