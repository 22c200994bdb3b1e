// PalletPack: 2D pallet packing optimizer.
//
// Packs rectangular shapes onto fixed-size pallets with a greedy best-fit
// packer or a genetic search, and exports the layouts as PDF, labels, PNG
// images and charts.
//
// Build:
//   go build -o palletpack ./cmd/palletpack
//
// Examples:
//   palletpack pack --shapes "10x20, 15x15:3, 5*5" --pallet-width 120 --pallet-height 80 --pdf out.pdf
//   palletpack pack --input shapes.xlsx --algorithm genetic --fitness-plot fitness.png --view
//   palletpack compare --input shapes.csv
//   palletpack serve --addr :8080
//   palletpack gui

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
