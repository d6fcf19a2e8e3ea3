package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TablePlan/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "event"+ProjectExt)

	p := model.NewProject()
	p.Name = "Event"
	p.Settings.Strategy = model.StrategyDense
	p.Rooms = []model.Room{
		model.NewRoom("Hall", 10, 5, 7),
		model.NewRoom("Office", 3, 3, 1),
	}

	require.NoError(t, SaveProject(path, p))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadProject_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.tableplan")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Bare"}`), 0644))

	p, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, "Bare", p.Name)
	assert.Equal(t, model.DefaultSettings(), p.Settings)
	assert.NotNil(t, p.Rooms)
}

func TestLoadProject_InvalidRoom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tableplan")
	require.NoError(t, os.WriteFile(path, []byte(`{"rooms": [{"width": 3, "height": 3}, {"width": 0, "height": 2}]}`), 0644))

	_, err := LoadProject(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room 2")
}

func TestLoadProject_Errors(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "missing.tableplan"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "junk.tableplan")
	require.NoError(t, os.WriteFile(path, []byte("{{"), 0644))
	_, err = LoadProject(path)
	assert.Error(t, err)
}

func TestMergeRooms(t *testing.T) {
	p := model.NewProject()
	p.Rooms = []model.Room{{ID: "a", Width: 3, Height: 3}}

	added := MergeRooms(&p, []model.Room{
		{ID: "a", Width: 9, Height: 9},
		{ID: "b", Width: 4, Height: 4},
		{ID: "b", Width: 5, Height: 5},
		{Width: 6, Height: 6},
	})

	assert.Equal(t, 2, added)
	require.Len(t, p.Rooms, 3)
	assert.Equal(t, 3, p.Rooms[0].Width)
	assert.Equal(t, 4, p.Rooms[1].Width)
	assert.Equal(t, 6, p.Rooms[2].Width)
}
