package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/export"
	"github.com/piwi3910/TablePlan/internal/flight"
	"github.com/piwi3910/TablePlan/internal/importer"
)

// flightCommand groups the flight subcommands.
func (c *CLI) flightCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Plan and replay lift sequences",
	}
	cmd.AddCommand(c.flightPlanCommand())
	cmd.AddCommand(c.flightRunCommand())
	return cmd
}

func (c *CLI) flightPlanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plan [targets]",
		Short: "Compute acceleration sequences that reach each target altitude",
		Long: `Compute acceleration sequences that reach each target altitude and land.

The input holds the flight count, the time limit in steps, then one target
per line. Each output line is one sequence. A plan longer than the time
limit is still written and logged as a warning; a target that cannot be
planned leaves an empty line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft := importer.ImportFlightTargets(args[0])
			for _, w := range ft.Warnings {
				c.Logger.Warn(w, "input", args[0])
			}
			for _, e := range ft.Errors {
				c.Logger.Error(e, "input", args[0])
			}
			if len(ft.Targets) == 0 {
				return fmt.Errorf("%s: no flight targets", args[0])
			}

			seqs := make([][]int, len(ft.Targets))
			failed := 0
			for i, target := range ft.Targets {
				accs, err := flight.PlanWithin(target, ft.TimeLimit)
				switch {
				case errors.Is(err, flight.ErrTimeLimit):
					c.Logger.Warn("plan exceeds time limit", "flight", i+1, "target", target, "steps", len(accs), "limit", ft.TimeLimit)
				case err != nil:
					c.Logger.Error("cannot plan flight", "flight", i+1, "target", target, "err", err)
					failed++
					continue
				}
				c.Logger.Debug("flight planned", "flight", i+1, "target", target, "steps", len(accs))
				seqs[i] = accs
			}
			if failed == len(ft.Targets) {
				return fmt.Errorf("all %d flights failed", failed)
			}
			return c.writeSequences(output, seqs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) flightRunCommand() *cobra.Command {
	var accelerations bool

	cmd := &cobra.Command{
		Use:   "run [sequences]",
		Short: "Replay sequences and print the final altitude of each",
		Long: `Replay sequences and print the final altitude of each.

The input holds the flight count, then one sequence per line. Sequences are
velocities unless --accelerations is set, in which case every step also
subtracts gravity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := importer.ImportFlightSequences(args[0])
			for _, w := range fs.Warnings {
				c.Logger.Warn(w, "input", args[0])
			}
			for _, e := range fs.Errors {
				c.Logger.Error(e, "input", args[0])
			}
			if len(fs.Sequences) == 0 {
				return fmt.Errorf("%s: no flight sequences", args[0])
			}

			finals := make([]int, len(fs.Sequences))
			for i, seq := range fs.Sequences {
				if accelerations {
					finals[i] = flight.FinalAltitude(seq)
				} else {
					finals[i] = flight.FinalPosition(seq)
				}
			}
			return export.WriteCounts(c.Out, finals)
		},
	}

	cmd.Flags().BoolVarP(&accelerations, "accelerations", "a", false, "treat sequences as accelerations")
	return cmd
}

func (c *CLI) writeSequences(path string, seqs [][]int) error {
	if path == "" {
		return export.WriteSequences(c.Out, seqs)
	}
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := export.WriteSequences(f, seqs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(c.Out, path)
	return nil
}
