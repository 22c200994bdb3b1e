// Package ui provides the PalletPack desktop application and pallet viewer.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PalletPackTheme is the default Fyne theme with a wood-toned primary color
// and compact sizing.
type PalletPackTheme struct {
	base fyne.Theme
}

func NewPalletPackTheme() *PalletPackTheme {
	return &PalletPackTheme{base: theme.DefaultTheme()}
}

func (t *PalletPackTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return color.NRGBA{R: 160, G: 110, B: 60, A: 255}
	}
	return t.base.Color(name, variant)
}

func (t *PalletPackTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PalletPackTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *PalletPackTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
