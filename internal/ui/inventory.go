package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/project"
)

// ─── Pallet Presets ────────────────────────────────────────

func (a *App) showPalletInventoryDialog() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()
		if len(a.inventory.Pallets) == 0 {
			list.Add(widget.NewLabel("No pallet presets defined."))
			return
		}

		bold := fyne.TextStyle{Bold: true}
		list.Add(container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Padding", fyne.TextAlignLeading, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		list.Add(widget.NewSeparator())

		for i := range a.inventory.Pallets {
			idx := i
			p := a.inventory.Pallets[idx]
			list.Add(container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(strconv.Itoa(p.Width)),
				widget.NewLabel(strconv.Itoa(p.Height)),
				widget.NewLabel(strconv.Itoa(p.Padding)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPalletPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Pallets = append(a.inventory.Pallets[:idx], a.inventory.Pallets[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}
	}
	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showPalletPresetDialog(-1, refreshList)
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.saveFile("pallets.json", func(path string) error {
			return project.ExportInventory(path, a.inventory)
		})
	})

	content := container.NewBorder(
		container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn),
		nil, nil, nil,
		container.NewVScroll(list),
	)
	d := dialog.NewCustom("Pallet Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(650, 450))
	d.Show()
}

// showPalletPresetDialog edits the preset at idx, or adds one when idx < 0.
func (a *App) showPalletPresetDialog(idx int, onDone func()) {
	p := model.PalletPreset{Name: "New Pallet", Width: 120, Height: 80}
	title := "Add Pallet Preset"
	if idx >= 0 {
		p = a.inventory.Pallets[idx]
		title = "Edit Pallet Preset"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(p.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.Itoa(p.Height))
	paddingEntry := widget.NewEntry()
	paddingEntry.SetText(strconv.Itoa(p.Padding))

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
			widget.NewFormItem("Padding", paddingEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.Atoi(widthEntry.Text)
			h, _ := strconv.Atoi(heightEntry.Text)
			pad, _ := strconv.Atoi(paddingEntry.Text)
			if err := model.ValidatePallet(w, h, pad); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if idx >= 0 {
				preset := &a.inventory.Pallets[idx]
				preset.Name, preset.Width, preset.Height, preset.Padding = nameEntry.Text, w, h, pad
			} else {
				a.inventory.Pallets = append(a.inventory.Pallets, model.NewPalletPreset(nameEntry.Text, w, h, pad))
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d pallet presets.", len(a.inventory.Pallets)),
			a.window)
	}, a.window)
}

func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}

// ─── Shape Templates ───────────────────────────────────────

func (a *App) showSaveTemplateDialog() {
	if len(a.project.Shapes) == 0 {
		dialog.ShowInformation("No shapes", "Add shapes before saving a template.", a.window)
		return
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	descEntry := widget.NewEntry()

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok || nameEntry.Text == "" {
				return
			}
			a.templates.Put(model.NewShapeTemplate(nameEntry.Text, descEntry.Text, a.project.Shapes, a.project.Settings))
			a.saveTemplates()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

func (a *App) showLoadTemplateDialog() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No templates", "Use Admin > Save as Template first.", a.window)
		return
	}

	sel := widget.NewSelect(names, nil)
	sel.SetSelected(names[0])

	form := dialog.NewForm("Load Template", "Load", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Template", sel)},
		func(ok bool) {
			if !ok {
				return
			}
			tmpl := a.templates.FindByName(sel.Selected)
			if tmpl == nil {
				return
			}
			a.recordChange("Load Template")
			a.project = tmpl.ToProject(tmpl.Name)
			a.fitnessHistory = nil
			a.refreshAll()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 180))
	form.Show()
}

func (a *App) saveTemplates() {
	if err := project.SaveTemplates(a.templatePath, a.templates); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}
