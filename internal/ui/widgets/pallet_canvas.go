package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/palletpack/internal/export"
	"github.com/piwi3910/palletpack/internal/model"
)

// PalletCanvas renders a single pallet with its placements numbered in
// placement order.
type PalletCanvas struct {
	widget.BaseWidget
	pallet    model.PalletResult
	maxWidth  float32
	maxHeight float32
}

func NewPalletCanvas(pallet model.PalletResult, maxW, maxH float32) *PalletCanvas {
	pc := &PalletCanvas{
		pallet:    pallet,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPallet swaps the displayed pallet.
func (pc *PalletCanvas) SetPallet(pallet model.PalletResult) {
	pc.pallet = pallet
	pc.Refresh()
}

func (pc *PalletCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &palletCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (pc *PalletCanvas) scale() float32 {
	w := float32(pc.pallet.Width)
	h := float32(pc.pallet.Height)
	if w <= 0 || h <= 0 {
		return 1
	}
	return min(pc.maxWidth/w, pc.maxHeight/h)
}

type palletCanvasRenderer struct {
	pc      *PalletCanvas
	objects []fyne.CanvasObject
}

func (r *palletCanvasRenderer) rebuild() {
	r.objects = nil

	pallet := r.pc.pallet
	scale := r.pc.scale()
	canvasW := float32(pallet.Width) * scale
	canvasH := float32(pallet.Height) * scale

	bg := canvas.NewRectangle(export.PalletColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for i, p := range pallet.Placements {
		pw := float32(p.PlacedWidth()) * scale
		ph := float32(p.PlacedHeight()) * scale
		px := float32(p.X) * scale
		py := float32(p.Y) * scale

		rect := canvas.NewRectangle(export.PlacementColor(i))
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)

		// Number at the rectangle center.
		num := canvas.NewText(fmt.Sprintf("%d", i+1), color.Black)
		num.TextSize = max(8, min(16, min(pw, ph)/2))
		num.TextStyle = fyne.TextStyle{Bold: true}
		size := num.MinSize()
		num.Move(fyne.NewPos(px+(pw-size.Width)/2, py+(ph-size.Height)/2))
		r.objects = append(r.objects, num)
	}
}

func (r *palletCanvasRenderer) Layout(size fyne.Size)        {}
func (r *palletCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.pc) }
func (r *palletCanvasRenderer) Destroy()                     {}
func (r *palletCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *palletCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.scale()
	return fyne.NewSize(float32(r.pc.pallet.Width)*scale, float32(r.pc.pallet.Height)*scale)
}

// RenderPalletResults creates a scrollable container of all pallets in result.
func RenderPalletResults(result *model.PackResult) fyne.CanvasObject {
	if result == nil || len(result.Pallets) == 0 {
		return widget.NewLabel("No results yet. Add shapes, then click Pack.")
	}

	var items []fyne.CanvasObject
	for i, pallet := range result.Pallets {
		header := widget.NewLabel(fmt.Sprintf(
			"Pallet %d/%d (%d x %d): %d shapes, %.1f%% used",
			i+1, len(result.Pallets), pallet.Width, pallet.Height,
			len(pallet.Placements), pallet.Efficiency(),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header, NewPalletCanvas(pallet, 600, 400), widget.NewSeparator())
	}

	if len(result.Unplaced) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d shapes could not be placed.", len(result.Unplaced),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d pallets, %d shapes placed, %.1f%% overall usage",
		len(result.Pallets), result.PlacedCount(), result.TotalEfficiency(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
