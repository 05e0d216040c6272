package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Options describe the window around the board.
type Options struct {
	Title     string
	Detail    string // share link on the host, connection info on a viewer
	ExportDir string
}

// NewWindow lays out header, toolbar, board and footer in a new window.
// The board must have been created after the app.
func NewWindow(a fyne.App, board *BoardWidget, opts Options) fyne.Window {
	win := a.NewWindow(opts.Title)
	win.Resize(fyne.NewSize(1024, 860))

	top := container.NewVBox(
		NewHeader(a, opts.Title),
		NewToolbar(board, win, opts.ExportDir),
	)
	bottom := NewFooter(board, opts.Detail)

	win.SetContent(container.NewBorder(top, bottom, nil, nil, container.NewPadded(board)))
	return win
}

func RunApp(a fyne.App, board *BoardWidget, opts Options) {
	NewWindow(a, board, opts).ShowAndRun()
}
