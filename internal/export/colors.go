// Package export writes packing results as PDF reports, QR label sheets,
// PNG images, HTML charts and fitness plots.
package export

import "image/color"

// placementColor represents an RGB color for a placed shape.
type placementColor struct {
	R, G, B int
}

// placementColors is the palette shared by every renderer. The viewer uses
// the same order so exported files match the screen.
var placementColors = []placementColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// PlacementColor returns the palette color for the i-th placement on a pallet.
func PlacementColor(i int) color.NRGBA {
	c := placementColors[i%len(placementColors)]
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// PalletColor is the background of an empty pallet surface.
var PalletColor = color.NRGBA{R: 210, G: 180, B: 140, A: 255}
