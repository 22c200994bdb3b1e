package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/engine"
	"github.com/piwi3910/palletpack/internal/export"
	"github.com/piwi3910/palletpack/internal/importer"
	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
	"github.com/piwi3910/palletpack/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	logger  *zap.Logger
	project model.Project
	config  model.AppConfig
	history *History
	tabs    *container.AppTabs

	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore
	templatePath  string

	// Per-generation statistics of the last genetic run, for chart export
	fitnessHistory []model.GenerationStats

	shapesContainer *fyne.Container
	resultContainer *fyne.Container
}

// NewApp loads the persisted config, pallet presets and templates. Load
// failures fall back to defaults and are logged.
func NewApp(application fyne.App, window fyne.Window, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		app:           application,
		window:        window,
		logger:        logger,
		project:       model.NewProject(),
		history:       NewHistory(),
		inventoryPath: project.DefaultInventoryPath(),
		templatePath:  project.DefaultTemplatePath(),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	a.config.ApplyToSettings(&a.project.Settings)

	if a.inventory, err = project.LoadInventory(a.inventoryPath); err != nil {
		logger.Warn("failed to load pallet presets", zap.Error(err))
		a.inventory = model.DefaultInventory()
	}
	if a.templates, err = project.LoadTemplates(a.templatePath); err != nil {
		logger.Warn("failed to load templates", zap.Error(err))
		a.templates = model.NewTemplateStore()
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.project = model.NewProject()
			a.config.ApplyToSettings(&a.project.Settings)
			a.history.Clear()
			a.fitnessHistory = nil
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Shapes...", a.importShapes),
		fyne.NewMenuItem("Paste Shape List...", a.showPasteShapesDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Export Labels...", a.exportLabels),
		fyne.NewMenuItem("Export PNG Images...", a.exportPNGs),
		fyne.NewMenuItem("Export Charts...", a.exportCharts),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Shapes", func() {
			a.recordChange("Clear Shapes")
			a.project.Shapes = nil
			a.refreshShapesList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Pack", func() {
			a.runPack()
			a.tabs.SelectIndex(2)
		}),
		fyne.NewMenuItem("Compare Strategies", a.showCompareDialog),
		fyne.NewMenuItem("View Pallets", a.openViewer),
	)

	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Pallet Presets...", a.showPalletInventoryDialog),
		fyne.NewMenuItem("Save as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItem("Load Template...", a.showLoadTemplateDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, adminMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PalletPack",
		"PalletPack: 2D Pallet Packing Optimizer\n\n"+
			"Packs rectangular shapes onto pallets with a greedy\n"+
			"best-fit packer or a genetic search.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Shapes", a.buildShapesPanel()),
		container.NewTabItem("Settings", a.buildSettingsPanel()),
		container.NewTabItem("Results", a.buildResultsPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)
	return a.tabs
}

func (a *App) refreshAll() {
	a.refreshShapesList()
	a.tabs.Items[1].Content = a.buildSettingsPanel()
	a.tabs.Refresh()
	a.refreshResults()
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) snapshot(label string) Snapshot {
	return MakeSnapshot(a.project.Shapes, a.project.Settings, label)
}

// recordChange must be called before the project is modified.
func (a *App) recordChange(label string) {
	a.history.Push(a.snapshot(label))
}

func (a *App) restore(s Snapshot) {
	a.project.Shapes = s.Shapes
	a.project.Settings = s.Settings
	a.refreshShapesList()
	a.tabs.Items[1].Content = a.buildSettingsPanel()
	a.tabs.Refresh()
}

func (a *App) undo() {
	if s, ok := a.history.Undo(a.snapshot("current")); ok {
		a.restore(s)
	}
}

func (a *App) redo() {
	if s, ok := a.history.Redo(a.snapshot("current")); ok {
		a.restore(s)
	}
}

// ─── Shapes Panel ──────────────────────────────────────────

func (a *App) buildShapesPanel() fyne.CanvasObject {
	a.shapesContainer = container.NewVBox()
	a.refreshShapesList()

	addBtn := widget.NewButtonWithIcon("Add Shape", theme.ContentAddIcon(), a.showAddShapeDialog)
	pasteBtn := widget.NewButtonWithIcon("Paste List", theme.ContentPasteIcon(), a.showPasteShapesDialog)
	packBtn := widget.NewButtonWithIcon("Pack", theme.MediaPlayIcon(), func() {
		a.runPack()
		a.tabs.SelectIndex(2)
	})
	packBtn.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Shapes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn, pasteBtn, packBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.shapesContainer),
	)
}

func (a *App) refreshShapesList() {
	a.shapesContainer.RemoveAll()

	if len(a.project.Shapes) == 0 {
		a.shapesContainer.Add(widget.NewLabel("No shapes added yet. Click 'Add Shape' or paste a list such as 10x20, 15x15:3."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.shapesContainer.Add(container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
		widget.NewLabel(""),
	))
	a.shapesContainer.Add(widget.NewSeparator())

	for i := range a.project.Shapes {
		idx := i
		s := a.project.Shapes[idx]
		a.shapesContainer.Add(container.NewGridWithColumns(6,
			widget.NewLabel(s.Label),
			widget.NewLabel(strconv.Itoa(s.Width)),
			widget.NewLabel(strconv.Itoa(s.Height)),
			widget.NewLabel(strconv.Itoa(s.Quantity)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showShapeDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.recordChange("Delete Shape")
				a.project.Shapes = append(a.project.Shapes[:idx], a.project.Shapes[idx+1:]...)
				a.refreshShapesList()
			}),
		))
	}
}

func (a *App) showAddShapeDialog() {
	a.showShapeDialog(-1)
}

// showShapeDialog edits the shape at idx, or adds a new one when idx < 0.
func (a *App) showShapeDialog(idx int) {
	s := model.ShapeRequest{Label: fmt.Sprintf("Shape %d", len(a.project.Shapes)+1), Quantity: 1}
	title, confirm := "Add Shape", "Add"
	if idx >= 0 {
		s = a.project.Shapes[idx]
		title, confirm = "Edit Shape", "Save"
	}

	labelEntry := widget.NewEntry()
	labelEntry.SetText(s.Label)
	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Width in cells")
	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Height in cells")
	if idx >= 0 {
		widthEntry.SetText(strconv.Itoa(s.Width))
		heightEntry.SetText(strconv.Itoa(s.Height))
	}
	qtyEntry := widget.NewEntry()
	qtyEntry.SetText(strconv.Itoa(s.Quantity))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
			widget.NewFormItem("Quantity", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.Atoi(widthEntry.Text)
			h, _ := strconv.Atoi(heightEntry.Text)
			q, _ := strconv.Atoi(qtyEntry.Text)
			if w <= 0 || h <= 0 || q <= 0 {
				dialog.ShowError(fmt.Errorf("width, height, and quantity must be positive integers"), a.window)
				return
			}
			req := model.ShapeRequest{Label: labelEntry.Text, Width: w, Height: h, Quantity: q}
			a.recordChange(title)
			if idx >= 0 {
				a.project.Shapes[idx] = req
			} else {
				a.project.Shapes = append(a.project.Shapes, req)
			}
			a.refreshShapesList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) showPasteShapesDialog() {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("10x20, 15x15, 5*5\ncrate=12x8:3")
	entry.SetMinRowsVisible(8)

	form := dialog.NewForm("Paste Shape List", "Add", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Shapes", entry)},
		func(ok bool) {
			if ok {
				a.handleImportResult(importer.ParseShapeList(entry.Text))
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 350))
	form.Show()
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.project.Settings

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	presetSelect := widget.NewSelect(a.inventory.PalletNames(), func(selected string) {
		if preset := a.inventory.FindPalletByName(selected); preset != nil {
			a.recordChange("Apply Pallet Preset")
			preset.ApplyToSettings(s)
			a.tabs.Items[1].Content = a.buildSettingsPanel()
			a.tabs.Refresh()
		}
	})
	presetSelect.PlaceHolder = "Load from preset..."

	algorithmSelect := widget.NewSelect([]string{"Greedy (Fast)", "Genetic (Single Pallet)"}, func(selected string) {
		if selected == "Genetic (Single Pallet)" {
			s.Algorithm = model.AlgorithmGenetic
		} else {
			s.Algorithm = model.AlgorithmGreedy
		}
	})
	if s.Algorithm == model.AlgorithmGenetic {
		algorithmSelect.SetSelected("Genetic (Single Pallet)")
	} else {
		algorithmSelect.SetSelected("Greedy (Fast)")
	}

	wasteSelect := widget.NewSelect([]string{string(model.WasteFootprint), string(model.WasteNeighborhood)}, func(selected string) {
		s.Waste = model.WasteMetric(selected)
	})
	wasteSelect.SetSelected(string(s.Waste))

	seedEntry := widget.NewEntry()
	seedEntry.SetText(strconv.FormatInt(s.Seed, 10))
	seedEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			s.Seed = v
		}
	}

	palletSection := widget.NewCard("Pallet", "", container.NewGridWithColumns(2,
		widget.NewLabel("Preset"), presetSelect,
		widget.NewLabel("Width"), intEntry(&s.PalletWidth),
		widget.NewLabel("Height"), intEntry(&s.PalletHeight),
		widget.NewLabel("Padding"), intEntry(&s.Padding),
	))

	packerSection := widget.NewCard("Packer", "", container.NewGridWithColumns(2,
		widget.NewLabel("Algorithm"), algorithmSelect,
		widget.NewLabel("Waste Metric (greedy)"), wasteSelect,
		widget.NewLabel("Random Seed"), seedEntry,
	))

	g := &s.Genetic
	mutationSelect := widget.NewSelect([]string{string(model.MutationNone), string(model.MutationJitter)}, func(selected string) {
		g.Mutation = model.MutationKind(selected)
	})
	mutationSelect.SetSelected(string(g.Mutation))

	geneticSection := widget.NewCard("Genetic Search", "", container.NewGridWithColumns(2,
		widget.NewLabel("Population Size"), intEntry(&g.PopulationSize),
		widget.NewLabel("Generations"), intEntry(&g.Generations),
		widget.NewLabel("Tournament Size"), intEntry(&g.TournamentSize),
		widget.NewLabel("Elite Count"), intEntry(&g.EliteCount),
		widget.NewLabel("Placement Attempts"), intEntry(&g.PlacementAttempts),
		widget.NewLabel("Repair Attempts"), intEntry(&g.RepairAttempts),
		widget.NewLabel("Mutation"), mutationSelect,
		widget.NewLabel("Mutation Shift"), intEntry(&g.MutationShift),
	))

	return container.NewVScroll(container.NewVBox(palletSection, packerSection, geneticSection))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add shapes, then click Pack."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderPalletResults(a.project.Result))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runPack() {
	if len(a.project.Shapes) == 0 {
		dialog.ShowInformation("Nothing to pack", "Add at least one shape first.", a.window)
		return
	}

	settings := a.project.Settings
	shapes := model.ExpandRequests(a.project.Shapes)
	if err := model.ValidateSettings(settings, shapes); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	progress := dialog.NewCustomWithoutButtons("Packing...", widget.NewProgressBarInfinite(), a.window)
	progress.Show()

	go func() {
		opt := engine.New(settings, a.logger)
		var (
			result  model.PackResult
			history []model.GenerationStats
			err     error
		)
		if settings.Algorithm == model.AlgorithmGenetic {
			var gr model.GeneticResult
			gr, err = opt.Evolve(context.Background(), shapes)
			result, history = gr.AsPackResult(), gr.History
		} else {
			result = opt.Pack(shapes)
		}

		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.project.Result = &result
			a.fitnessHistory = history
			a.refreshResults()
		})
	}()
}

func (a *App) showCompareDialog() {
	if len(a.project.Shapes) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add at least one shape first.", a.window)
		return
	}
	shapes := model.ExpandRequests(a.project.Shapes)
	results := engine.CompareStrategies(context.Background(), a.project.Settings, shapes, a.logger)

	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Pallets", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Unplaced", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Waste", fyne.TextAlignLeading, bold),
	)
	for _, r := range results {
		if r.Err != nil {
			grid.Add(widget.NewLabel(r.Scenario.Name))
			grid.Add(widget.NewLabel("error: " + r.Err.Error()))
			grid.Add(widget.NewLabel(""))
			grid.Add(widget.NewLabel(""))
			grid.Add(widget.NewLabel(""))
			continue
		}
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(strconv.Itoa(r.PalletsUsed)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.PlacedCount)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.UnplacedCount)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.WastePercent)))
	}

	d := dialog.NewCustom("Strategy Comparison", "Close", grid, a.window)
	d.Resize(fyne.NewSize(650, 250))
	d.Show()
}

func (a *App) openViewer() {
	if a.project.Result == nil || len(a.project.Result.Pallets) == 0 {
		dialog.ShowInformation("No results", "Pack the shapes first.", a.window)
		return
	}
	NewViewer(a.app, *a.project.Result).Show()
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
		a.rememberProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + ".palletpack")
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
		a.history.Clear()
		a.fitnessHistory = nil
		a.refreshAll()
		a.rememberProject(path)
	}, a.window)
	d.Show()
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, 10)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save recent projects", zap.Error(err))
	}
}

// ─── Export ────────────────────────────────────────────────

func (a *App) requireResult() bool {
	if a.project.Result == nil || len(a.project.Result.Pallets) == 0 {
		dialog.ShowInformation("No results", "Pack the shapes first before exporting.", a.window)
		return false
	}
	return true
}

// saveFile asks for a destination and hands the chosen path to write.
func (a *App) saveFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportPDF() {
	if !a.requireResult() {
		return
	}
	a.saveFile(a.project.Name+".pdf", func(path string) error {
		return export.ExportPDF(path, *a.project.Result, a.project.Settings)
	})
}

func (a *App) exportLabels() {
	if !a.requireResult() {
		return
	}
	a.saveFile(a.project.Name+"-labels.pdf", func(path string) error {
		return export.ExportLabels(path, *a.project.Result)
	})
}

func (a *App) exportCharts() {
	if !a.requireResult() {
		return
	}
	a.saveFile(a.project.Name+"-charts.html", func(path string) error {
		return export.ExportUtilizationChart(path, *a.project.Result, a.fitnessHistory)
	})
}

func (a *App) exportPNGs() {
	if !a.requireResult() {
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		s := a.project.Settings
		paths, err := export.SavePNGs(dir.Path(), "pallet", *a.project.Result, export.DefaultScale(s.PalletWidth, s.PalletHeight, 800))
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved %d images to %s", len(paths), dir.Path()), a.window)
	}, a.window)
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importShapes() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.Import(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")), a.window)
	}
	if len(result.Warnings) > 0 {
		a.logger.Info("import warnings", zap.Strings("warnings", result.Warnings))
	}

	if len(result.Shapes) > 0 {
		a.recordChange("Import Shapes")
		a.project.Shapes = append(a.project.Shapes, result.Shapes...)
		a.refreshShapesList()

		msg := fmt.Sprintf("Successfully imported %d shapes.", len(result.Shapes))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d entries had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
