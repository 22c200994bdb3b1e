package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/palletpack/internal/ui"
)

func newGUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop application",
		Run: func(cmd *cobra.Command, args []string) {
			application := app.NewWithID("com.piwi3910.palletpack")
			application.Settings().SetTheme(ui.NewPalletPackTheme())
			window := application.NewWindow("PalletPack: 2D Pallet Packing Optimizer")

			appUI := ui.NewApp(application, window, c.logger)
			appUI.SetupMenus()
			window.SetContent(appUI.Build())
			window.Resize(fyne.NewSize(1100, 750))
			window.CenterOnScreen()
			window.ShowAndRun()
		},
	}
}
