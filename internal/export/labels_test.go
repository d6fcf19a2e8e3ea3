package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TablePlan/internal/engine"
	"github.com/piwi3910/TablePlan/internal/model"
)

func TestExportPlacards_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placards.pdf")

	if err := ExportPlacards(path, buildTestPlans(t)); err != nil {
		t.Fatalf("ExportPlacards returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("placard file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("placard file seems too small: %d bytes", info.Size())
	}
}

func TestExportPlacards_MultiplePages(t *testing.T) {
	// 7x7 dense holds 16 tables; three rooms need two label pages.
	settings := model.PlanSettings{Strategy: model.StrategyDense, FillGaps: true}
	var plans []model.PlanResult
	for i := 0; i < 3; i++ {
		p, err := engine.New(settings).Solve(model.Room{Width: 7, Height: 7, Target: 100})
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		plans = append(plans, p)
	}

	if got := len(CollectPlacards(plans)); got != 48 {
		t.Fatalf("expected 48 placards, got %d", got)
	}
	if err := ExportPlacards(filepath.Join(t.TempDir(), "many.pdf"), plans); err != nil {
		t.Fatalf("ExportPlacards returned error: %v", err)
	}
}

func TestExportPlacards_Empty(t *testing.T) {
	if err := ExportPlacards(filepath.Join(t.TempDir(), "empty.pdf"), nil); err == nil {
		t.Fatal("expected error for no plans, got nil")
	}
}

func TestExportPlacards_NoTables(t *testing.T) {
	p, err := engine.Solve(2, 2, 5)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if err := ExportPlacards(filepath.Join(t.TempDir(), "none.pdf"), []model.PlanResult{p}); err == nil {
		t.Fatal("expected error for plans with no tables, got nil")
	}
}

func TestCollectPlacards(t *testing.T) {
	placards := CollectPlacards(buildTestPlans(t))

	if len(placards) != 9 {
		t.Fatalf("expected 9 placards, got %d", len(placards))
	}

	first := placards[0]
	if first.RoomIndex != 1 || first.RoomLabel != "Main Hall" || first.TableID != 1 {
		t.Errorf("unexpected first placard %+v", first)
	}

	// Grid order: the vertical table 7 comes third in the hall.
	third := placards[2]
	if third.TableID != 7 || third.Orientation != "Vertical" || third.Col != 8 {
		t.Errorf("unexpected third placard %+v", third)
	}

	last := placards[8]
	if last.RoomIndex != 3 || last.Orientation != "Vertical" {
		t.Errorf("unexpected last placard %+v", last)
	}
}

func TestPlacardInfo_JSON(t *testing.T) {
	info := PlacardInfo{RoomIndex: 2, RoomLabel: "Office", TableID: 4, Row: 1, Col: 3, Orientation: "Horizontal"}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"room":2,"room_label":"Office","table":4,"row":1,"col":3,"orientation":"Horizontal"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
