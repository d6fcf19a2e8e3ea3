// TablePlan: room table layout planner
//
// A cross-platform desktop application that places 1x3 tables on room
// grids and exports printable plans, placards and drawings.
//
// Build:
//   go build -o tableplan-gui ./cmd/tableplan-gui
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/TablePlan/internal/model"
	"github.com/piwi3910/TablePlan/internal/project"
	"github.com/piwi3910/TablePlan/internal/ui"
)

func main() {
	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		log.Warn("Using default config", "path", configPath, "err", err)
		config = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.tableplan")
	application.Settings().SetTheme(ui.ThemeFor(config.Theme))

	window := application.NewWindow("TablePlan - Room Table Planner")

	appUI := ui.NewApp(window, config, configPath)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 750))
	window.CenterOnScreen()
	window.ShowAndRun()
}
