package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TablePlan/internal/grid"
	"github.com/piwi3910/TablePlan/internal/model"
)

const (
	summarySheet   = "Summary"
	maxSheetName   = 31
	gridColumnWide = 3.5
)

var summaryHeaders = []string{"#", "Room", "Width", "Height", "Target", "Placed", "Row Sweep", "Shortfall", "Capacity", "Fill %"}

// ExportExcel writes a workbook with a summary sheet and one sheet per
// room. Room sheets show the table id in each occupied cell, colored like
// the PDF plan.
func ExportExcel(path string, plans []model.PlanResult) error {
	if len(plans) == 0 {
		return ErrNoPlans
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	tableStyles := make([]int, len(tableColors))
	for i, c := range tableColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("create table style: %w", err)
		}
		tableStyles[i] = id
	}

	if err := writeSummarySheet(f, plans, headerStyle); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, plan := range plans {
		if plan.Grid == nil {
			return fmt.Errorf("plan %d (%s): no grid", i+1, plan.Room.Label)
		}
		name := uniqueSheetName(sheetName(i+1, plan.Room), used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeRoomSheet(f, name, plan.Grid, tableStyles); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, plans []model.PlanResult, headerStyle int) error {
	for j, h := range summaryHeaders {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(summaryHeaders), 1)
	if err := f.SetCellStyle(summarySheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 24); err != nil {
		return err
	}

	for i, p := range plans {
		row := []interface{}{
			i + 1,
			roomTitle(p.Room),
			p.Room.Width,
			p.Room.Height,
			p.Room.Target,
			p.Achieved,
			p.Phase1,
			p.Shortfall(),
			p.Room.Capacity(),
			fmt.Sprintf("%.1f", p.FillRatio()*100),
		}
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRoomSheet(f *excelize.File, sheet string, g *grid.Grid, styles []int) error {
	lastCol, err := excelize.ColumnNumberToName(g.Width())
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, gridColumnWide); err != nil {
		return err
	}

	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			id := g.Get(r, c)
			if !id.Occupied() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, int(id)); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles[(int(id)-1)%len(styles)]); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName builds a valid worksheet name from the room label.
func sheetName(n int, r model.Room) string {
	name := strings.Map(func(c rune) rune {
		switch c {
		case '[', ']', ':', '*', '?', '/', '\\', '\'':
			return '_'
		}
		return c
	}, fmt.Sprintf("%d %s", n, roomTitle(r)))
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for k := 2; used[strings.ToLower(candidate)]; k++ {
		suffix := fmt.Sprintf(" (%d)", k)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
