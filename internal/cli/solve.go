package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/engine"
	"github.com/piwi3910/TablePlan/internal/export"
	"github.com/piwi3910/TablePlan/internal/model"
)

// formatPreview renders plans for the terminal instead of a text format.
const formatPreview = "preview"

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags  planFlags
		format string
		output string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "solve [rooms]",
		Short: "Place tables in every room of an input file",
		Long: `Place tables in every room of an input file.

The input is a room file (first line the room count, then "width height
[target]" per room), a CSV or Excel room list, or a DXF floor plan. Use "-"
to read a room file from stdin.

Formats: chars (X and .), ids (table ids, 0 for empty cells), counts (room
capacity per line) and preview (colored terminal rendering).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings(cmd, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = c.Config.DefaultFormat
			}
			return c.runSolve(cmd.Context(), args[0], settings, c.workers(cmd, flags), flags.cellSize, format, output, verify)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", model.FormatChars, "output format: chars, ids, counts, preview")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every plan against the placement rules")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, input string, settings model.PlanSettings, workers int, cellSize float64, format, output string, verify bool) error {
	rooms, err := c.loadRooms(input, cellSize)
	if err != nil {
		return err
	}

	plans, err := c.solveRooms(ctx, rooms, settings, workers, verify)
	if err != nil {
		return err
	}

	if err := c.writePlans(output, format, plans); err != nil {
		return err
	}
	if output != "" {
		printSuccess(c.Out, "Solved %d rooms", len(plans))
		printFile(c.Out, output)
	}
	return nil
}

// solveRooms runs the engine over rooms, logging rooms that fail. It
// returns an error only on cancellation, failed verification, or when no
// room could be solved.
func (c *CLI) solveRooms(ctx context.Context, rooms []model.Room, settings model.PlanSettings, workers int, verify bool) ([]model.PlanResult, error) {
	prog := newProgress(c.Logger)
	outcomes, err := engine.SolveAll(ctx, rooms, settings, workers)
	if err != nil {
		return nil, err
	}

	plans, failed := engine.Results(outcomes)
	for _, o := range failed {
		c.Logger.Error("room failed", "room", o.Index+1, "label", o.Room.Label, "err", o.Err)
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("all %d rooms failed", len(rooms))
	}

	achieved, target := 0, 0
	for _, p := range plans {
		achieved += p.Achieved
		target += p.Room.Target
		c.Logger.Debug("room solved", "label", p.Room.Label, "size", fmt.Sprintf("%dx%d", p.Room.Width, p.Room.Height),
			"achieved", p.Achieved, "target", p.Room.Target, "phase1", p.Phase1)
	}
	prog.done("Solved rooms", "rooms", len(plans), "tables", achieved, "target", target, "strategy", settings.Strategy)

	if verify {
		var errs []error
		for _, p := range plans {
			if err := engine.Verify(p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", planTitle(p.Room), err))
			}
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		c.Logger.Info("All plans verified", "rooms", len(plans))
	}
	return plans, nil
}

// writePlans writes plans in format to path, or to Out when path is empty.
func (c *CLI) writePlans(path, format string, plans []model.PlanResult) error {
	if path == "" {
		return writeFormat(c.Out, format, plans)
	}
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := writeFormat(f, format, plans); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFormat(w io.Writer, format string, plans []model.PlanResult) error {
	if format == formatPreview {
		_, err := io.WriteString(w, renderPreview(plans))
		return err
	}
	if err := export.WriteFormat(w, format, plans); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// createOutput creates path and any missing parent directories.
func createOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, nil
}
