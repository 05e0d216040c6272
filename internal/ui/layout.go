package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewHeader is the title row with the light/dark switch.
func NewHeader(app fyne.App, title string) fyne.CanvasObject {
	variant := app.Settings().ThemeVariant()
	toggle := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		variant = toggleVariant(variant)
		app.Settings().SetTheme(newVariantTheme(variant))
	})

	name := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	heading := widget.NewLabelWithStyle("Canvas Drawing", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	heading.SizeName = theme.SizeNameSubHeadingText

	return container.NewVBox(
		container.NewHBox(name, layout.NewSpacer(), toggle),
		heading,
	)
}

// NewFooter shows the credit line plus share or connection details.
func NewFooter(board *BoardWidget, detail string) fyne.CanvasObject {
	credit := widget.NewLabelWithStyle("Square Board, a small canvas drawing project", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	items := []fyne.CanvasObject{
		widget.NewSeparator(),
		container.NewHBox(board.Caption(), layout.NewSpacer(), board.StatusBar()),
	}
	if detail != "" {
		share := widget.NewLabel(detail)
		share.Selectable = true
		share.Alignment = fyne.TextAlignCenter
		items = append(items, share)
	}
	return container.NewVBox(append(items, credit)...)
}
