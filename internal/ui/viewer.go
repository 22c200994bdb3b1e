package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/palletpack/internal/model"
	"github.com/piwi3910/palletpack/internal/ui/widgets"
)

// Viewer is a window that pages through the pallets of a result with the
// Left and Right arrow keys.
type Viewer struct {
	window fyne.Window
	result model.PackResult
	pager  *Pager
	canvas *widgets.PalletCanvas
	status *widget.Label
}

func NewViewer(application fyne.App, result model.PackResult) *Viewer {
	v := &Viewer{
		window: application.NewWindow("Pallet 0/0"),
		result: result,
		pager:  NewPager(len(result.Pallets)),
		status: widget.NewLabel(""),
	}

	var body fyne.CanvasObject
	if len(result.Pallets) == 0 {
		body = widget.NewLabel("Nothing was packed.")
	} else {
		v.canvas = widgets.NewPalletCanvas(result.Pallets[0], 800, 600)
		body = container.NewCenter(v.canvas)
	}

	prev := newIconButtonWithTooltip(theme.NavigateBackIcon(), "Previous pallet (Left)", func() { v.show(v.pager.Prev()) })
	next := newIconButtonWithTooltip(theme.NavigateNextIcon(), "Next pallet (Right)", func() { v.show(v.pager.Next()) })
	toolbar := container.NewHBox(prev, next, layout.NewSpacer(), v.status)

	content := container.NewBorder(toolbar, nil, nil, nil, body)
	v.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, v.window.Canvas()))
	v.window.Canvas().SetOnTypedKey(v.handleKey)
	v.window.Resize(fyne.NewSize(880, 700))
	v.show(0)
	return v
}

func (v *Viewer) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyRight:
		v.show(v.pager.Next())
	case fyne.KeyLeft:
		v.show(v.pager.Prev())
	}
}

func (v *Viewer) show(index int) {
	v.window.SetTitle(v.pager.Title())
	if v.canvas == nil {
		return
	}
	pallet := v.result.Pallets[index]
	v.canvas.SetPallet(pallet)
	v.status.SetText(fmt.Sprintf("%d shapes, %.1f%% used", len(pallet.Placements), pallet.Efficiency()))
}

// Window returns the viewer's window.
func (v *Viewer) Window() fyne.Window { return v.window }

// Show opens the viewer window.
func (v *Viewer) Show() { v.window.Show() }

// RunViewer opens a standalone viewer for result and blocks until it is closed.
func RunViewer(result model.PackResult) {
	application := app.NewWithID("com.piwi3910.palletpack")
	application.Settings().SetTheme(NewPalletPackTheme())
	v := NewViewer(application, result)
	v.window.CenterOnScreen()
	v.window.ShowAndRun()
}
