// Package export writes table plans to text grids, PDF, QR placards, Excel
// workbooks and DXF drawings.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

// ErrNoPlans is returned by exporters given nothing to write.
var ErrNoPlans = errors.New("no plans to export")

// tableColor represents an RGB color for a placed table.
type tableColor struct {
	R, G, B int
}

// tableColors mirrors the color scheme used in the UI room canvas widget.
var tableColors = []tableColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(id grid.Cell) tableColor {
	return tableColors[(int(id)-1)%len(tableColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	maxCellSize  = 20.0
)

// ExportPDF writes one page per plan with the room drawn to scale,
// followed by a summary page.
func ExportPDF(path string, plans []model.PlanResult) error {
	if len(plans) == 0 {
		return ErrNoPlans
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, plan := range plans {
		if plan.Grid == nil {
			return fmt.Errorf("plan %d (%s): no grid", i+1, plan.Room.Label)
		}
		pdf.AddPage()
		renderRoomPage(pdf, plan, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plans)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// renderRoomPage draws a single room plan on the current PDF page.
func renderRoomPage(pdf *fpdf.Fpdf, plan model.PlanResult, roomNum int) {
	g := plan.Grid

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Room %d: %s (%d x %d cells)", roomNum, roomTitle(plan.Room), g.Width(), g.Height())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tables: %d of %d | Row sweep: %d | Shortfall: %d | Capacity: %d | Fill: %.1f%% | Strategy: %s",
		plan.Achieved, plan.Room.Target, plan.Phase1, plan.Shortfall(), plan.Room.Capacity(), plan.FillRatio()*100, plan.Strategy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	cell := math.Min(drawWidth/float64(g.Width()), drawHeight/float64(g.Height()))
	cell = math.Min(cell, maxCellSize)

	canvasW := float64(g.Width()) * cell
	canvasH := float64(g.Height()) * cell
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Floor
	pdf.SetFillColor(240, 240, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawCellGrid(pdf, g, cell, offsetX, offsetY)

	for _, t := range plan.Tiles() {
		col := colorFor(t.ID)
		tw, th := cell*grid.TableLength, cell
		if t.Orientation == grid.Vertical {
			tw, th = th, tw
		}
		tx := offsetX + float64(t.Col)*cell
		ty := offsetY + float64(t.Row)*cell

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(tx+0.3, ty+0.3, tw-0.6, th-0.6, "FD")

		if cell >= 4 {
			label := fmt.Sprintf("%d", t.ID)
			pdf.SetFont("Helvetica", "", labelFontSize(cell))
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(tx+(tw-labelW)/2, ty+th/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, g, offsetX, offsetY, canvasW, canvasH)
}

// drawCellGrid draws thin cell separators when the cells are big enough to
// tell apart.
func drawCellGrid(pdf *fpdf.Fpdf, g *grid.Grid, cell, offsetX, offsetY float64) {
	if cell < 2 {
		return
	}
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	for c := 1; c < g.Width(); c++ {
		x := offsetX + float64(c)*cell
		pdf.Line(x, offsetY, x, offsetY+float64(g.Height())*cell)
	}
	for r := 1; r < g.Height(); r++ {
		y := offsetY + float64(r)*cell
		pdf.Line(offsetX, y, offsetX+float64(g.Width())*cell, y)
	}
}

// drawDimensionAnnotations adds width and height labels outside the room.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, g *grid.Grid, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d cells", g.Width())
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d cells", g.Height())
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plans []model.PlanResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Table Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	s := Summarize(plans)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Rooms", fmt.Sprintf("%d", s.Rooms)},
		{"Tables Placed", fmt.Sprintf("%d of %d", s.Achieved, s.Target)},
		{"Shortfall", fmt.Sprintf("%d", s.Shortfall)},
		{"Rooms At Target", fmt.Sprintf("%d", s.RoomsMet)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Room Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 70, 35, 30, 30, 30, 30}
	headers := []string{"#", "Room", "Size", "Target", "Placed", "Shortfall", "Fill"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, plan := range plans {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			roomTitle(plan.Room),
			fmt.Sprintf("%d x %d", plan.Room.Width, plan.Room.Height),
			fmt.Sprintf("%d", plan.Room.Target),
			fmt.Sprintf("%d", plan.Achieved),
			fmt.Sprintf("%d", plan.Shortfall()),
			fmt.Sprintf("%.1f%%", plan.FillRatio()*100),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TablePlan", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that fits a table id in one cell.
func labelFontSize(cell float64) float64 {
	switch {
	case cell > 12:
		return 9
	case cell > 7:
		return 7
	default:
		return 5
	}
}

func roomTitle(r model.Room) string {
	if r.Label != "" {
		return r.Label
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Summary totals a set of plans.
type Summary struct {
	Rooms     int
	Achieved  int
	Target    int
	Shortfall int
	RoomsMet  int
}

func Summarize(plans []model.PlanResult) Summary {
	s := Summary{Rooms: len(plans)}
	for _, p := range plans {
		s.Achieved += p.Achieved
		s.Target += p.Room.Target
		s.Shortfall += p.Shortfall()
		if p.Shortfall() == 0 {
			s.RoomsMet++
		}
	}
	return s
}
