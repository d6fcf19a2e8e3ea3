package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/TablePlan/internal/engine"
	"github.com/piwi3910/TablePlan/internal/model"
)

// tableColors cycles through neighbouring tables so adjacent ones differ.
var tableColors = []lipgloss.Color{"36", "35", "220", "75", "167", "141", "208", "114"}

const (
	cellTable = "██"
	cellEmpty = "· "
)

// renderPlan draws one plan as colored blocks with a title and a stats line.
func renderPlan(p model.PlanResult) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(planTitle(p.Room)))
	b.WriteByte('\n')

	if p.Grid != nil {
		for r := 0; r < p.Grid.Height(); r++ {
			for c := 0; c < p.Grid.Width(); c++ {
				id := p.Grid.Get(r, c)
				if !id.Occupied() {
					b.WriteString(StyleDim.Render(cellEmpty))
					continue
				}
				color := tableColors[(int(id)-1)%len(tableColors)]
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(cellTable))
			}
			b.WriteByte('\n')
		}
	}

	stats := fmt.Sprintf("%d/%d tables · %s · fill %.0f%%",
		p.Achieved, p.Room.Target, p.Strategy, p.FillRatio()*100)
	if p.Shortfall() > 0 {
		b.WriteString(StyleWarning.Render(stats + fmt.Sprintf(" · short %d", p.Shortfall())))
	} else {
		b.WriteString(StyleDim.Render(stats))
	}
	b.WriteByte('\n')
	return b.String()
}

// renderPreview renders every plan separated by a blank line.
func renderPreview(plans []model.PlanResult) string {
	parts := make([]string, len(plans))
	for i, p := range plans {
		parts[i] = renderPlan(p)
	}
	return strings.Join(parts, "\n")
}

func planTitle(r model.Room) string {
	label := r.Label
	if label == "" {
		label = "Room"
	}
	return fmt.Sprintf("%s (%dx%d)", label, r.Width, r.Height)
}

// renderComparison lays out scenario totals as a bordered table, marking
// the best scenario.
func renderComparison(results []engine.ComparisonResult, best int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	bestStyle := cellStyle.Foreground(colorGreen)

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		mark := ""
		if i == best {
			mark = iconSuccess
		}
		rows = append(rows, []string{
			mark,
			r.Scenario.Name,
			strconv.Itoa(r.Achieved),
			strconv.Itoa(r.Target),
			strconv.Itoa(r.Shortfall),
			fmt.Sprintf("%d/%d", r.RoomsMet, len(r.Plans)),
			fmt.Sprintf("%.1f%%", r.FillPercent),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scenario", "Tables", "Target", "Short", "Met", "Fill").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == best:
				return bestStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}
