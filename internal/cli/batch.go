package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/model"
	"github.com/piwi3910/TablePlan/internal/project"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags    planFlags
		manifest string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "batch [inputs...]",
		Short: "Solve several input files, writing one output per input",
		Long: `Solve several input files, writing one output per input.

Inputs are listed as arguments, each written to <input>.out, or described by
a TOML manifest:

  strategy = "spaced"
  format   = "chars"
  workers  = 4

  [[job]]
  input  = "level3/in1.txt"
  output = "out/level3_1.txt"

Relative manifest paths are resolved against the manifest's directory.
A failing input is logged and the remaining inputs still run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings(cmd, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = c.Config.DefaultFormat
			}
			workers := c.workers(cmd, flags)

			var jobs []project.Job
			switch {
			case manifest != "" && len(args) > 0:
				return errors.New("use either --manifest or input arguments, not both")
			case manifest != "":
				m, err := project.LoadManifest(manifest)
				if err != nil {
					return err
				}
				settings = m.Settings(settings)
				if m.Workers > 0 && !cmd.Flags().Changed("workers") {
					workers = m.Workers
				}
				jobs = m.Jobs
				for i := range jobs {
					if jobs[i].Format == "" {
						jobs[i].Format = format
					}
				}
			case len(args) > 0:
				for _, in := range args {
					jobs = append(jobs, project.Job{Input: in, Output: in + ".out", Format: format})
				}
			default:
				return errors.New("no inputs: pass files or --manifest")
			}

			return c.runBatch(cmd.Context(), jobs, settings, workers, flags.cellSize)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "TOML batch manifest")
	cmd.Flags().StringVarP(&format, "format", "f", model.FormatChars, "output format: chars, ids, counts, preview")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, jobs []project.Job, settings model.PlanSettings, workers int, cellSize float64) error {
	prog := newProgress(c.Logger)
	done := 0
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.runJob(ctx, job, settings, workers, cellSize); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			c.Logger.Error("job failed", "input", job.Input, "err", err)
			printError(c.Out, "%s: %v", job.Input, err)
			continue
		}
		printFile(c.Out, job.Output)
		done++
	}
	prog.done("Batch finished", "jobs", len(jobs), "ok", done)

	if done == 0 {
		return fmt.Errorf("all %d jobs failed", len(jobs))
	}
	printSuccess(c.Out, "Wrote %d of %d outputs", done, len(jobs))
	return nil
}

func (c *CLI) runJob(ctx context.Context, job project.Job, settings model.PlanSettings, workers int, cellSize float64) error {
	rooms, err := c.loadRooms(job.Input, cellSize)
	if err != nil {
		return err
	}
	plans, err := c.solveRooms(ctx, rooms, settings, workers, false)
	if err != nil {
		return err
	}
	return c.writePlans(job.Output, job.Format, plans)
}
