package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/export"
	"github.com/piwi3910/TablePlan/internal/model"
)

type exportTargets struct {
	pdf      string
	placards string
	xlsx     string
	dxf      string
}

func (t exportTargets) empty() bool {
	return t.pdf == "" && t.placards == "" && t.xlsx == "" && t.dxf == ""
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags   planFlags
		targets exportTargets
	)

	cmd := &cobra.Command{
		Use:   "export [rooms]",
		Short: "Solve rooms and export the plans as documents",
		Long: `Solve rooms and export the plans as documents.

  --pdf       one page per room plus a summary page
  --placards  Avery 5160 sheet with a QR placard per table
  --xlsx      workbook with a summary sheet and a sheet per room
  --dxf       drawing with room outlines and table rectangles

At least one target is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if targets.empty() {
				return errors.New("no export target: pass --pdf, --placards, --xlsx or --dxf")
			}
			settings, err := c.settings(cmd, flags)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], settings, c.workers(cmd, flags), flags.cellSize, targets)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&targets.pdf, "pdf", "", "PDF plan output")
	cmd.Flags().StringVar(&targets.placards, "placards", "", "PDF placard sheet output")
	cmd.Flags().StringVar(&targets.xlsx, "xlsx", "", "Excel workbook output")
	cmd.Flags().StringVar(&targets.dxf, "dxf", "", "DXF drawing output")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, settings model.PlanSettings, workers int, cellSize float64, t exportTargets) error {
	rooms, err := c.loadRooms(input, cellSize)
	if err != nil {
		return err
	}
	plans, err := c.solveRooms(ctx, rooms, settings, workers, false)
	if err != nil {
		return err
	}

	steps := []struct {
		path string
		name string
		run  func(string) error
	}{
		{t.pdf, "PDF plan", func(p string) error { return export.ExportPDF(p, plans) }},
		{t.placards, "placards", func(p string) error { return export.ExportPlacards(p, plans) }},
		{t.xlsx, "workbook", func(p string) error { return export.ExportExcel(p, plans) }},
		{t.dxf, "DXF drawing", func(p string) error { return export.ExportDXF(p, plans, cellSize) }},
	}

	for _, s := range steps {
		if s.path == "" {
			continue
		}
		if err := s.run(s.path); err != nil {
			return fmt.Errorf("export %s: %w", s.name, err)
		}
		c.Logger.Debug("exported", "kind", s.name, "path", s.path)
		printFile(c.Out, s.path)
	}

	sum := export.Summarize(plans)
	printSuccess(c.Out, "Exported %d rooms, %d of %d tables placed", sum.Rooms, sum.Achieved, sum.Target)
	if sum.Shortfall > 0 {
		printWarning(c.Out, "%d tables short across %d rooms", sum.Shortfall, sum.Rooms-sum.RoomsMet)
	}
	return nil
}
