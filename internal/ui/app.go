// Package ui provides the TablePlan desktop application.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/TablePlan/internal/engine"
	"github.com/piwi3910/TablePlan/internal/export"
	roomimporter "github.com/piwi3910/TablePlan/internal/importer"
	"github.com/piwi3910/TablePlan/internal/model"
	"github.com/piwi3910/TablePlan/internal/project"
	"github.com/piwi3910/TablePlan/internal/ui/widgets"
)

// dxfCellSize is the drawing units per cell for DXF import and export.
const dxfCellSize = 1000.0

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	project    model.Project
	config     model.AppConfig
	configPath string
	history    *History
	plans      []model.PlanResult
	logger     *log.Logger
	tabs       *container.AppTabs

	// UI references for dynamic updates
	roomsContainer  *fyne.Container
	resultContainer *fyne.Container
	strategySelect  *widget.Select
	gapsCheck       *widget.Check
}

func NewApp(window fyne.Window, config model.AppConfig, configPath string) *App {
	p := model.NewProject()
	config.ApplyToSettings(&p.Settings)
	return &App{
		window:     window,
		project:    p,
		config:     config,
		configPath: configPath,
		history:    NewHistory(),
		logger:     log.WithPrefix("ui"),
	}
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.project = model.NewProject()
			a.config.ApplyToSettings(&a.project.Settings)
			a.history.Clear()
			a.plans = nil
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Room File...", func() {
			a.importRooms("Room File", nil, roomimporter.ImportRoomFile)
		}),
		fyne.NewMenuItem("Import Rooms from CSV...", func() {
			a.importRooms("CSV", []string{".csv"}, roomimporter.ImportCSV)
		}),
		fyne.NewMenuItem("Import Rooms from Excel...", func() {
			a.importRooms("Excel", []string{".xlsx"}, roomimporter.ImportExcel)
		}),
		fyne.NewMenuItem("Import Floor Plan (DXF)...", func() {
			a.importRooms("DXF", []string{".dxf"}, func(path string) roomimporter.ImportResult {
				return roomimporter.ImportDXF(path, dxfCellSize)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Plan...", func() {
			a.exportFile("plan.pdf", export.ExportPDF)
		}),
		fyne.NewMenuItem("Export Table Placards...", func() {
			a.exportFile("placards.pdf", export.ExportPlacards)
		}),
		fyne.NewMenuItem("Export Excel Workbook...", func() {
			a.exportFile("plan.xlsx", export.ExportExcel)
		}),
		fyne.NewMenuItem("Export DXF Drawing...", func() {
			a.exportFile("plan.dxf", func(path string, plans []model.PlanResult) error {
				return export.ExportDXF(path, plans, dxfCellSize)
			})
		}),
		fyne.NewMenuItem("Export Text Grid...", a.exportText),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup All Data...", a.backupData),
		fyne.NewMenuItem("Restore Backup...", a.restoreData),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Rooms", func() {
			a.record("Clear Rooms")
			a.project.Rooms = nil
			a.refreshRoomList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Solve", func() {
			a.runSolve()
			a.tabs.SelectIndex(2)
		}),
		fyne.NewMenuItem("Compare Strategies", a.runCompare),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { a.redo() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About TablePlan",
		"TablePlan: room table layout planner\n\n"+
			"Places 1x3 tables on room grids and exports\n"+
			"printable plans, placards and drawings.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	roomsTab := container.NewTabItem("Rooms", a.buildRoomsPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())
	plansTab := container.NewTabItem("Plans", a.buildPlansPanel())

	a.tabs = container.NewAppTabs(roomsTab, settingsTab, plansTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

func (a *App) refreshAll() {
	a.refreshRoomList()
	a.refreshSettings()
	a.refreshResults()
}

// ─── Undo / Redo ───────────────────────────────────────────

// record saves the current state before a modification.
func (a *App) record(label string) {
	a.history.Push(MakeSnapshot(a.project.Rooms, a.project.Settings, label))
}

func (a *App) restore(s Snapshot) {
	a.project.Rooms = s.Rooms
	a.project.Settings = s.Settings
	a.refreshRoomList()
	a.refreshSettings()
}

func (a *App) undo() {
	current := MakeSnapshot(a.project.Rooms, a.project.Settings, "current")
	if s, ok := a.history.Undo(current); ok {
		a.logger.Debug("undo", "action", s.Label)
		a.restore(s)
	}
}

func (a *App) redo() {
	current := MakeSnapshot(a.project.Rooms, a.project.Settings, "current")
	if s, ok := a.history.Redo(current); ok {
		a.logger.Debug("redo", "action", s.Label)
		a.restore(s)
	}
}

// ─── Rooms Panel ───────────────────────────────────────────

func (a *App) buildRoomsPanel() fyne.CanvasObject {
	a.roomsContainer = container.NewVBox()
	a.refreshRoomList()

	addBtn := widget.NewButtonWithIcon("Add Room", theme.ContentAddIcon(), func() {
		a.showRoomDialog(-1)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Rooms", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.roomsContainer),
	)
}

func (a *App) refreshRoomList() {
	if a.roomsContainer == nil {
		return
	}
	a.roomsContainer.RemoveAll()

	if len(a.project.Rooms) == 0 {
		a.roomsContainer.Add(widget.NewLabel("No rooms added yet. Click 'Add Room' or import a file to begin."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.roomsContainer.Add(container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Target", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Capacity", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
		widget.NewLabel(""),
	))
	a.roomsContainer.Add(widget.NewSeparator())

	for i, r := range a.project.Rooms {
		idx := i
		a.roomsContainer.Add(container.NewGridWithColumns(7,
			widget.NewLabel(r.Label),
			widget.NewLabel(strconv.Itoa(r.Width)),
			widget.NewLabel(strconv.Itoa(r.Height)),
			widget.NewLabel(strconv.Itoa(r.Target)),
			widget.NewLabel(strconv.Itoa(r.Capacity())),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showRoomDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.record("Delete Room")
				a.project.Rooms = append(a.project.Rooms[:idx], a.project.Rooms[idx+1:]...)
				a.refreshRoomList()
			}),
		))
	}
}

// showRoomDialog adds a room when idx < 0, otherwise edits room idx.
func (a *App) showRoomDialog(idx int) {
	title, confirm := "Add Room", "Add"
	room := model.Room{Label: fmt.Sprintf("Room %d", len(a.project.Rooms)+1)}
	if idx >= 0 {
		title, confirm = "Edit Room", "Save"
		room = a.project.Rooms[idx]
	}

	labelEntry := widget.NewEntry()
	labelEntry.SetText(room.Label)

	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Cells across")
	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Cells down")
	targetEntry := widget.NewEntry()
	targetEntry.SetPlaceHolder("Empty = room capacity")
	if idx >= 0 {
		widthEntry.SetText(strconv.Itoa(room.Width))
		heightEntry.SetText(strconv.Itoa(room.Height))
		targetEntry.SetText(strconv.Itoa(room.Target))
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width (cells)", widthEntry),
			widget.NewFormItem("Height (cells)", heightEntry),
			widget.NewFormItem("Tables", targetEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			edited, err := parseRoomForm(labelEntry.Text, widthEntry.Text, heightEntry.Text, targetEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if idx >= 0 {
				a.record("Edit Room")
				edited.ID = room.ID
				a.project.Rooms[idx] = edited
			} else {
				a.record("Add Room")
				a.project.Rooms = append(a.project.Rooms, edited)
			}
			a.refreshRoomList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

// parseRoomForm validates the room dialog fields. An empty target means
// the room's capacity.
func parseRoomForm(label, width, height, target string) (model.Room, error) {
	w, errW := strconv.Atoi(strings.TrimSpace(width))
	h, errH := strconv.Atoi(strings.TrimSpace(height))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return model.Room{}, errors.New("width and height must be whole numbers > 0")
	}

	room := model.NewRoom(strings.TrimSpace(label), w, h, 0)
	if t := strings.TrimSpace(target); t == "" {
		room.Target = room.Capacity()
	} else {
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return model.Room{}, errors.New("tables must be a whole number >= 0")
		}
		room.Target = n
	}
	return room, nil
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	names := make([]string, 0, len(model.Strategies()))
	for _, s := range model.Strategies() {
		names = append(names, string(s))
	}

	a.strategySelect = widget.NewSelect(names, func(selected string) {
		strategy, err := model.ParseStrategy(selected)
		if err != nil || strategy == a.project.Settings.Strategy {
			return
		}
		a.record("Change Strategy")
		a.project.Settings.Strategy = strategy
	})
	a.gapsCheck = widget.NewCheck("", func(b bool) {
		if b == a.project.Settings.FillGaps {
			return
		}
		a.record("Toggle Gap Filling")
		a.project.Settings.FillGaps = b
	})
	a.refreshSettings()

	engineSection := widget.NewCard("Placement", "", container.NewGridWithColumns(2,
		widget.NewLabel("Strategy"), a.strategySelect,
		widget.NewLabel("Fill Gaps With Vertical Tables"), a.gapsCheck,
	))

	help := widget.NewLabel("spaced: rows of tables with a free cell between neighbours and rows.\n" +
		"dense: tables packed back to back, ignoring spacing.")
	help.Wrapping = fyne.TextWrapWord

	return container.NewVScroll(container.NewVBox(engineSection, help))
}

func (a *App) refreshSettings() {
	if a.strategySelect == nil {
		return
	}
	a.strategySelect.SetSelected(string(a.project.Settings.Strategy))
	a.gapsCheck.SetChecked(a.project.Settings.FillGaps)
}

// ─── Plans Panel ───────────────────────────────────────────

func (a *App) buildPlansPanel() fyne.CanvasObject {
	solveBtn := widget.NewButtonWithIcon("Solve", theme.MediaPlayIcon(), a.runSolve)
	a.resultContainer = container.NewStack(widgets.RenderPlans(nil))
	return container.NewBorder(
		container.NewHBox(layout.NewSpacer(), solveBtn),
		nil, nil, nil,
		a.resultContainer,
	)
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderPlans(a.plans))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runSolve() {
	if len(a.project.Rooms) == 0 {
		dialog.ShowInformation("Nothing to solve", "Add at least one room first.", a.window)
		return
	}

	outcomes, err := engine.SolveAll(context.Background(), a.project.Rooms, a.project.Settings, a.config.Workers)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	plans, failed := engine.Results(outcomes)
	a.plans = plans
	a.refreshResults()

	if len(failed) > 0 {
		msgs := make([]string, len(failed))
		for i, o := range failed {
			msgs[i] = fmt.Sprintf("%s: %v", o.Room.Label, o.Err)
		}
		dialog.ShowError(fmt.Errorf("%d rooms could not be planned:\n\n%s", len(failed), strings.Join(msgs, "\n")), a.window)
	}
	a.logger.Info("solved", "rooms", len(plans), "failed", len(failed), "strategy", a.project.Settings.Strategy)
}

func (a *App) runCompare() {
	if len(a.project.Rooms) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add at least one room first.", a.window)
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(a.project.Settings), a.project.Rooms)
	best := engine.Best(results)

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Tables", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Short", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Rooms Met", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Fill", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for i, r := range results {
		name := widget.NewLabel(r.Scenario.Name)
		if i == best {
			name.Importance = widget.SuccessImportance
		}
		grid.Add(name)
		grid.Add(widget.NewLabel(fmt.Sprintf("%d / %d", r.Achieved, r.Target)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Shortfall)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d / %d", r.RoomsMet, len(r.Plans))))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.FillPercent)))
	}

	d := dialog.NewCustomConfirm("Strategy Comparison", "Use Best", "Close", grid, func(ok bool) {
		if !ok || best < 0 {
			return
		}
		a.record("Apply Best Scenario")
		a.project.Settings = results[best].Scenario.Settings
		a.plans = results[best].Plans
		a.refreshSettings()
		a.refreshResults()
	}, a.window)
	d.Resize(fyne.NewSize(600, 300))
	d.Show()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.ProjectExt)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		proj, err := project.LoadProject(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.project = proj
		a.plans = nil
		a.history.Clear()
		a.refreshAll()
		a.rememberFile(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.ProjectExt}))
	d.Show()
}

// rememberFile adds path to the recent files and persists the config.
func (a *App) rememberFile(path string) {
	a.config.AddRecentFile(path)
	if a.configPath == "" {
		return
	}
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.logger.Warn("cannot save config", "path", a.configPath, "err", err)
	}
}

// ─── Export Functions ──────────────────────────────────────

func (a *App) requirePlans() bool {
	if len(a.plans) == 0 {
		dialog.ShowInformation("No plans", "Solve the rooms first before exporting.", a.window)
		return false
	}
	return true
}

func (a *App) exportFile(defaultName string, write func(string, []model.PlanResult) error) {
	if !a.requirePlans() {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path, a.plans); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportText() {
	if !a.requirePlans() {
		return
	}
	format := a.config.DefaultFormat
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WriteFormat(writer, format, a.plans); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("plan.txt")
	d.Show()
}

func (a *App) backupData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.ExportAllData(path, a.config, []model.Project{a.project}); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("tableplan-backup.json")
	d.Show()
}

func (a *App) restoreData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config = backup.Config
		if len(backup.Projects) > 0 {
			a.project = backup.Projects[0]
		}
		a.plans = nil
		a.history.Clear()
		a.refreshAll()
		if a.configPath != "" {
			if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
				a.logger.Warn("cannot save config", "path", a.configPath, "err", err)
			}
		}
	}, a.window)
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importRooms(kind string, exts []string, read func(string) roomimporter.ImportResult) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		if _, err := os.Stat(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Debug("importing rooms", "kind", kind, "path", path)
		a.handleImportResult(read(path))
	}, a.window)
	if len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.Show()
}

func (a *App) handleImportResult(result roomimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn(w)
	}

	if len(result.Rooms) == 0 {
		return
	}
	a.record("Import Rooms")
	added := project.MergeRooms(&a.project, result.Rooms)
	a.refreshRoomList()

	msg := fmt.Sprintf("Successfully imported %d rooms.", added)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
