package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/importer"
	"github.com/piwi3910/TablePlan/internal/model"
)

var errNoRooms = errors.New("no rooms")

// defaultCellSize is the drawing units per grid cell for DXF floor plans.
const defaultCellSize = 1000.0

// loadRooms picks an importer by extension: .csv, .xlsx and .dxf, with
// anything else read as a plain room file. "-" reads a room file from In.
// Import warnings and row errors are logged; only an input with no usable
// room is an error.
func (c *CLI) loadRooms(path string, cellSize float64) ([]model.Room, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		res = importer.ImportCSV(path)
	case ".xlsx":
		res = importer.ImportExcel(path)
	case ".dxf":
		if cellSize <= 0 {
			cellSize = defaultCellSize
		}
		res = importer.ImportDXF(path, cellSize)
	default:
		if path == "-" {
			res = importer.ImportRoomsFromReader(c.In)
		} else {
			res = importer.ImportRoomFile(path)
		}
	}

	for _, w := range res.Warnings {
		c.Logger.Warn(w, "input", path)
	}
	for _, e := range res.Errors {
		c.Logger.Error(e, "input", path)
	}
	if len(res.Rooms) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoRooms)
	}
	c.Logger.Debug("rooms loaded", "input", path, "rooms", len(res.Rooms))
	return res.Rooms, nil
}

// planFlags are the engine options shared by solve, batch, compare and export.
type planFlags struct {
	strategy string
	noGaps   bool
	workers  int
	cellSize float64
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "placement strategy: spaced, dense (default from config)")
	cmd.Flags().BoolVar(&f.noGaps, "no-gaps", false, "skip the vertical gap-filling phase")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "rooms solved in parallel (default from config, 0 = one per CPU)")
	cmd.Flags().Float64Var(&f.cellSize, "cell-size", defaultCellSize, "drawing units per grid cell for DXF input")
}

// settings starts from the app config and applies flags set on cmd.
func (c *CLI) settings(cmd *cobra.Command, f planFlags) (model.PlanSettings, error) {
	s := model.DefaultSettings()
	c.Config.ApplyToSettings(&s)

	if cmd.Flags().Changed("strategy") {
		strategy, err := model.ParseStrategy(f.strategy)
		if err != nil {
			return s, err
		}
		s.Strategy = strategy
	}
	if f.noGaps {
		s.FillGaps = false
	}
	return s, nil
}

func (c *CLI) workers(cmd *cobra.Command, f planFlags) int {
	if cmd.Flags().Changed("workers") {
		return f.workers
	}
	return c.Config.Workers
}
