package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/export"
)

// capacityCommand creates the capacity command.
func (c *CLI) capacityCommand() *cobra.Command {
	var cellSize float64

	cmd := &cobra.Command{
		Use:   "capacity [rooms]",
		Short: "Print the table capacity of every room",
		Long: `Print the table capacity of every room, floor(width*height/3), one
number per line. No placement is computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms, err := c.loadRooms(args[0], cellSize)
			if err != nil {
				return err
			}
			counts := make([]int, len(rooms))
			for i, r := range rooms {
				counts[i] = r.Capacity()
			}
			return export.WriteCounts(c.Out, counts)
		},
	}

	cmd.Flags().Float64Var(&cellSize, "cell-size", defaultCellSize, "drawing units per grid cell for DXF input")
	return cmd
}
