package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TablePlan/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Workers = 8
	cfg.Theme = "dark"

	p := model.NewProject()
	p.Name = "Conference"
	p.Rooms = []model.Room{model.NewRoom("Hall", 10, 5, 7)}

	if err := ExportAllData(path, cfg, []model.Project{p}); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", backup.Config.Workers)
	}
	if len(backup.Projects) != 1 || backup.Projects[0].Name != "Conference" {
		t.Fatalf("expected the Conference project, got %+v", backup.Projects)
	}
	if r := backup.Projects[0].Rooms[0]; r.Label != "Hall" || r.Target != 7 {
		t.Errorf("unexpected room %+v", r)
	}
}

func TestExportAllDataNoProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ExportAllData(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Projects == nil || len(backup.Projects) != 0 {
		t.Errorf("expected empty project list, got %v", backup.Projects)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
