package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/piwi3910/TablePlan/internal/model"
)

// WriteIDGrid writes each plan as rows of space separated table ids, 0 for
// empty cells. Rooms are separated by a blank line.
func WriteIDGrid(w io.Writer, plans []model.PlanResult) error {
	return writeGrids(w, plans, func(bw *bufio.Writer, row []int) {
		for c, id := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(id))
		}
	})
}

// WriteCharGrid writes each plan with X for occupied and . for empty cells.
// Rooms are separated by a blank line.
func WriteCharGrid(w io.Writer, plans []model.PlanResult) error {
	return writeGrids(w, plans, func(bw *bufio.Writer, row []int) {
		for _, id := range row {
			if id != 0 {
				bw.WriteByte('X')
			} else {
				bw.WriteByte('.')
			}
		}
	})
}

func writeGrids(w io.Writer, plans []model.PlanResult, writeRow func(*bufio.Writer, []int)) error {
	bw := bufio.NewWriter(w)
	for i, plan := range plans {
		if plan.Grid == nil {
			return fmt.Errorf("plan %d (%s): no grid", i+1, plan.Room.Label)
		}
		if i > 0 {
			bw.WriteByte('\n')
		}
		row := make([]int, plan.Grid.Width())
		for r := 0; r < plan.Grid.Height(); r++ {
			for c := range row {
				row[c] = int(plan.Grid.Get(r, c))
			}
			writeRow(bw, row)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteCounts writes one number per line.
func WriteCounts(w io.Writer, counts []int) error {
	bw := bufio.NewWriter(w)
	for _, n := range counts {
		fmt.Fprintln(bw, n)
	}
	return bw.Flush()
}

// WriteSequences writes each sequence as one line of space separated
// numbers.
func WriteSequences(w io.Writer, seqs [][]int) error {
	bw := bufio.NewWriter(w)
	for _, seq := range seqs {
		for i, n := range seq {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(n))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFormat writes plans in one of the text formats named by
// model.FormatIDs, model.FormatChars or model.FormatCounts.
func WriteFormat(w io.Writer, format string, plans []model.PlanResult) error {
	switch format {
	case model.FormatIDs:
		return WriteIDGrid(w, plans)
	case model.FormatChars, "":
		return WriteCharGrid(w, plans)
	case model.FormatCounts:
		counts := make([]int, len(plans))
		for i, p := range plans {
			counts[i] = p.Room.Capacity()
		}
		return WriteCounts(w, counts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
