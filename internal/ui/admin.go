package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
)

// showSettingsDialog edits the defaults applied to new projects.
func (a *App) showSettingsDialog() {
	cfg := a.config

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

	algorithmSelect := widget.NewSelect([]string{string(model.AlgorithmGreedy), string(model.AlgorithmGenetic)}, func(selected string) {
		cfg.DefaultAlgorithm = model.Algorithm(selected)
	})
	algorithmSelect.SetSelected(string(cfg.DefaultAlgorithm))

	wasteSelect := widget.NewSelect([]string{string(model.WasteFootprint), string(model.WasteNeighborhood)}, func(selected string) {
		cfg.DefaultWaste = model.WasteMetric(selected)
	})
	wasteSelect.SetSelected(string(cfg.DefaultWaste))

	addrEntry := widget.NewEntry()
	addrEntry.SetText(cfg.ServerAddr)
	addrEntry.OnChanged = func(text string) { cfg.ServerAddr = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("Default Pallet Width", intEntry(&cfg.DefaultPalletWidth)),
		widget.NewFormItem("Default Pallet Height", intEntry(&cfg.DefaultPalletHeight)),
		widget.NewFormItem("Default Padding", intEntry(&cfg.DefaultPadding)),
		widget.NewFormItem("Default Algorithm", algorithmSelect),
		widget.NewFormItem("Default Waste Metric", wasteSelect),
		widget.NewFormItem("Default Population", intEntry(&cfg.DefaultGenetic.PopulationSize)),
		widget.NewFormItem("Default Generations", intEntry(&cfg.DefaultGenetic.Generations)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("API Server Address", addrEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := model.ValidatePallet(cfg.DefaultPalletWidth, cfg.DefaultPalletHeight, cfg.DefaultPadding); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.config = cfg
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Defaults apply to new projects.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 480))
	d.Show()
}

// showImportExportDialog backs up or restores config, presets and templates.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		a.saveFile("palletpack-backup.json", func(path string) error {
			return project.ExportAllData(path, a.config, a.inventory, a.templates)
		})
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings, pallet presets and templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
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
					a.inventory = backup.Inventory
					a.templates = backup.Templates
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.saveInventory()
					a.saveTemplates()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, pallet presets and templates to a backup file,\nor restore them from a previous backup."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 220))
	d.Show()
}

func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
