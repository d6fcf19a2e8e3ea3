package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/engine"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "compare [rooms]",
		Short: "Compare placement strategies on the same rooms",
		Long: `Compare placement strategies on the same rooms.

Runs the current settings, every other strategy and, when gap filling is
on, the row sweep alone, then prints the totals side by side. The scenario
placing the most tables is marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings(cmd, flags)
			if err != nil {
				return err
			}
			rooms, err := c.loadRooms(args[0], flags.cellSize)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), rooms)
			prog.done("Compared scenarios", "scenarios", len(results), "rooms", len(rooms))

			for _, r := range results {
				if r.Failed > 0 {
					c.Logger.Warn("rooms failed", "scenario", r.Scenario.Name, "failed", r.Failed)
				}
			}

			best := engine.Best(results)
			fmt.Fprintln(c.Out, renderComparison(results, best))
			if best >= 0 {
				printKeyValue(c.Out, "Best", results[best].Scenario.Name)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
