package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/piwi3910/palletpack/internal/model"
)

// pngMargin leaves room around the pallet for the title and outline.
const pngMargin = 24

// RenderPallet draws one pallet: the outline, every placement in its palette
// color, and the placement number at each rectangle's center. scale is the
// number of pixels per grid cell.
func RenderPallet(pallet model.PalletResult, total int, scale float64) *gg.Context {
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(pallet.Width)*scale) + 2*pngMargin
	h := int(float64(pallet.Height)*scale) + 2*pngMargin

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Pallet %d/%d", pallet.Index, total), float64(w)/2, pngMargin/2, 0.5, 0.5)

	ox, oy := float64(pngMargin), float64(pngMargin)
	dc.SetColor(PalletColor)
	dc.DrawRectangle(ox, oy, float64(pallet.Width)*scale, float64(pallet.Height)*scale)
	dc.Fill()

	for i, p := range pallet.Placements {
		x := ox + float64(p.X)*scale
		y := oy + float64(p.Y)*scale
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale

		dc.SetColor(PlacementColor(i))
		dc.DrawRectangle(x, y, pw, ph)
		dc.FillPreserve()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%d", i+1), x+pw/2, y+ph/2, 0.5, 0.5)
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawRectangle(ox, oy, float64(pallet.Width)*scale, float64(pallet.Height)*scale)
	dc.Stroke()

	return dc
}

// RenderPNG writes one pallet as a PNG image.
func RenderPNG(w io.Writer, pallet model.PalletResult, total int, scale float64) error {
	return RenderPallet(pallet, total, scale).EncodePNG(w)
}

// SavePNGs writes every pallet to dir as <prefix>_<index>.png and returns the
// written paths.
func SavePNGs(dir, prefix string, result model.PackResult, scale float64) ([]string, error) {
	if len(result.Pallets) == 0 {
		return nil, fmt.Errorf("no pallets to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(result.Pallets))
	for _, pallet := range result.Pallets {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, pallet.Index))
		if err := RenderPallet(pallet, len(result.Pallets), scale).SavePNG(path); err != nil {
			return paths, fmt.Errorf("failed to save pallet %d: %w", pallet.Index, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// DefaultScale picks a pixel scale so the longer pallet side is about
// target pixels.
func DefaultScale(width, height int, target float64) float64 {
	longest := max(width, height)
	if longest <= 0 {
		return 1
	}
	return max(target/float64(longest), 1)
}
