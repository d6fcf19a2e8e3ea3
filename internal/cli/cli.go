// Package cli implements the tableplan command-line interface.
//
// Commands read room lists (plain room files, CSV, Excel or DXF floor
// plans), run the tiling engine and write the plans as text grids or as
// PDF, placard, Excel and DXF documents. The flight subcommands plan and
// replay lift sequences.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through
// charmbracelet/log. Results go to stdout, logs to stderr.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/TablePlan/internal/model"
	"github.com/piwi3910/TablePlan/internal/project"
)

const appName = "tableplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information shown by --version and the
// version command. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config model.AppConfig

	// Out receives command results; In is read when an input path is "-".
	Out io.Writer
	In  io.Reader

	configPath string
	verbose    bool
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: model.DefaultAppConfig(),
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "TablePlan fills rooms with 1x3 tables",
		Long: `TablePlan places 1x3 tables on rectangular room grids.

Rooms come from plain room files, CSV or Excel sheets, or DXF floor plans.
Plans can be printed as id or character grids, previewed in the terminal,
or exported as PDF plans, QR placards, Excel workbooks and DXF drawings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "app config file (default: ~/.tableplan/config.json)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.capacityCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.flightCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path, "strategy", cfg.DefaultStrategy, "workers", cfg.Workers)
	return nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(c.Out, versionString())
			return err
		},
	}
}

func versionString() string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date)
}
