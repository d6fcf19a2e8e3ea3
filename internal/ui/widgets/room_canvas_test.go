package widgets

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/TablePlan/internal/engine"
	"github.com/piwi3910/TablePlan/internal/model"
)

func TestCellScale(t *testing.T) {
	tests := []struct {
		w, h       int
		maxW, maxH float32
		want       float32
	}{
		{10, 5, 600, 400, 60},
		{10, 20, 600, 400, 20},
		{0, 5, 600, 400, 0},
		{3, 3, 90, 90, 30},
	}
	for _, tt := range tests {
		if got := CellScale(tt.w, tt.h, tt.maxW, tt.maxH); got != tt.want {
			t.Errorf("CellScale(%d, %d, %v, %v) = %v, want %v", tt.w, tt.h, tt.maxW, tt.maxH, got, tt.want)
		}
	}
}

func TestRoomCanvasMinSize(t *testing.T) {
	test.NewTempApp(t)

	plan, err := engine.Solve(10, 5, 4)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	rc := NewRoomCanvas(plan, 600, 400)
	size := rc.MinSize()
	if size.Width != 600 || size.Height != 300 {
		t.Errorf("MinSize = %v, want 600x300", size)
	}
}

func TestRoomCanvasWithoutGrid(t *testing.T) {
	test.NewTempApp(t)

	rc := NewRoomCanvas(model.PlanResult{}, 600, 400)
	if size := rc.MinSize(); size.Width != 0 || size.Height != 0 {
		t.Errorf("MinSize = %v, want zero", size)
	}
}
