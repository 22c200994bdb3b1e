package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/palletpack/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF report of the packing result. Each pallet is
// drawn on its own page, followed by a summary page.
func ExportPDF(path string, result model.PackResult, settings model.PackSettings) error {
	if len(result.Pallets) == 0 {
		return fmt.Errorf("no pallets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, pallet := range result.Pallets {
		pdf.AddPage()
		renderPalletPage(pdf, pallet, len(result.Pallets))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPalletPage draws a single pallet on the current PDF page.
func renderPalletPage(pdf *fpdf.Fpdf, pallet model.PalletResult, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Pallet %d/%d (%d x %d)", pallet.Index, total, pallet.Width, pallet.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Shapes: %d | Used area: %d | Total area: %d | Efficiency: %.1f%% | Padding: %d",
		len(pallet.Placements), pallet.UsedArea(), pallet.TotalArea(), pallet.Efficiency(), pallet.Padding)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/float64(pallet.Width), drawHeight/float64(pallet.Height))
	canvasW := float64(pallet.Width) * scale
	canvasH := float64(pallet.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(int(PalletColor.R), int(PalletColor.G), int(PalletColor.B))
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range pallet.Placements {
		col := placementColors[i%len(placementColors)]
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Placement number at the center, like the viewer
		num := fmt.Sprintf("%d", i+1)
		pdf.SetFont("Helvetica", "B", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)
		numW := pdf.GetStringWidth(num)
		if numW < pw-1 && ph > 4 {
			pdf.SetXY(px+(pw-numW)/2, py+ph/2-2)
			pdf.CellFormat(numW, 4, num, "", 0, "C", false, 0, "")
		}

		if pw > 15 && ph > 14 {
			dims := fmt.Sprintf("%dx%d", p.PlacedWidth(), p.PlacedHeight())
			pdf.SetFont("Helvetica", "", 6)
			dimsW := pdf.GetStringWidth(dims)
			if dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2+2)
				pdf.CellFormat(dimsW, 3, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, pallet, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, pallet, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the pallet.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, pallet model.PalletResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", pallet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", pallet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists the placements below the pallet drawing.
func drawLegend(pdf *fpdf.Fpdf, pallet model.PalletResult, startY float64) {
	if len(pallet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range pallet.Placements {
		col := placementColors[i%len(placementColors)]
		label := fmt.Sprintf("%d. %s (%dx%d) @ %d,%d", i+1, shapeName(p.Shape), p.Shape.Width, p.Shape.Height, p.X, p.Y)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.PackSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Pallet Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	y = drawKeyValues(pdf, y, 10, [][2]string{
		{"Algorithm", string(result.Algorithm)},
		{"Pallets Used", fmt.Sprintf("%d", len(result.Pallets))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Shapes Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Shapes", fmt.Sprintf("%d", len(result.Unplaced))},
	})

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pallet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 50, 35, 35, 60}
	headers := []string{"Pallet", "Dimensions", "Shapes", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, pallet := range result.Pallets {
		// Long results continue on a fresh page
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		row := []string{
			fmt.Sprintf("%d", pallet.Index),
			fmt.Sprintf("%d x %d", pallet.Width, pallet.Height),
			fmt.Sprintf("%d", len(pallet.Placements)),
			fmt.Sprintf("%.1f%%", pallet.Efficiency()),
			fmt.Sprintf("%d / %d", pallet.UsedArea(), pallet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Shapes", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, s := range result.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %d x %d", shapeName(s), s.Width, s.Height), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	items := [][2]string{
		{"Pallet", fmt.Sprintf("%d x %d", settings.PalletWidth, settings.PalletHeight)},
		{"Padding", fmt.Sprintf("%d", settings.Padding)},
		{"Waste Metric", string(settings.Waste)},
		{"Seed", fmt.Sprintf("%d", settings.Seed)},
	}
	if result.Algorithm == model.AlgorithmGenetic {
		g := settings.Genetic
		items = append(items,
			[2]string{"Population", fmt.Sprintf("%d", g.PopulationSize)},
			[2]string{"Generations", fmt.Sprintf("%d", g.Generations)},
			[2]string{"Mutation", string(g.Mutation)},
		)
	}
	drawKeyValues(pdf, y, 9, items)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PalletPack", "", 0, "C", false, 0, "")
}

// drawKeyValues prints label/value rows and returns the next free y.
func drawKeyValues(pdf *fpdf.Fpdf, y, size float64, items [][2]string) float64 {
	pdf.SetFont("Helvetica", "", size)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", size)
		pdf.CellFormat(40, 6, item[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", size)
		y += 7
	}
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}

// shapeName falls back to the dimensions for unlabeled shapes.
func shapeName(s model.Shape) string {
	if s.Label != "" {
		return s.Label
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
