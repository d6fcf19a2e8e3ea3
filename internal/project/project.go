package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/TablePlan/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".tableplan"

// SaveProject writes the project to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the specified JSON file. Rooms that
// fail validation are reported as an error naming the first bad room.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Rooms == nil {
		p.Rooms = []model.Room{}
	}
	for i, r := range p.Rooms {
		if err := r.Validate(); err != nil {
			return model.Project{}, fmt.Errorf("project %s room %d: %w", path, i+1, err)
		}
	}
	return p, nil
}

// MergeRooms appends imported rooms to the project. Rooms whose ID is
// already present are skipped; rooms without an ID always get added.
// It returns the number of rooms added.
func MergeRooms(p *model.Project, rooms []model.Room) int {
	ids := make(map[string]bool, len(p.Rooms))
	for _, r := range p.Rooms {
		if r.ID != "" {
			ids[r.ID] = true
		}
	}

	added := 0
	for _, r := range rooms {
		if r.ID != "" && ids[r.ID] {
			continue
		}
		if r.ID != "" {
			ids[r.ID] = true
		}
		p.Rooms = append(p.Rooms, r)
		added++
	}
	return added
}
