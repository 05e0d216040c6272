package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"SquareBoard/internal/export"
	"SquareBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const (
	labelDeleteMode     = "Delete Mode"
	labelExitDeleteMode = "Exit Delete Mode"
)

// paletteSwatch is a small non-interactive square showing one fill color.
func paletteSwatch(c color.Color) fyne.CanvasObject {
	rect := canvas.NewRectangle(c)
	rect.SetMinSize(fyne.NewSize(16, 16))
	rect.StrokeColor = color.Gray{Y: 150}
	rect.StrokeWidth = 1
	return rect
}

// NewToolbar builds the button row for board. Viewers only get save and export.
func NewToolbar(board *BoardWidget, win fyne.Window, exportDir string) fyne.CanvasObject {
	save := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		ShowSaveDialog(board, win)
	})
	pdf := widget.NewButtonWithIcon("Export PDF", theme.DownloadIcon(), func() {
		path := filepath.Join(exportDir, fmt.Sprintf("squareboard-%s.pdf", time.Now().Format("20060102-150405")))
		if err := export.ExportPDF(path, board.Snapshot()); err != nil {
			logrus.WithError(err).Error("PDF export failed")
			board.SetStatus("Export failed: " + err.Error())
			return
		}
		logrus.WithField("path", path).Info("Exported board")
		board.SetStatus("Exported " + path)
	})

	if board.ReadOnly() {
		return container.NewHBox(layout.NewSpacer(), save, pdf, layout.NewSpacer())
	}

	draw := widget.NewButtonWithIcon("Draw Square", theme.ContentAddIcon(), board.AddSquare)
	draw.Importance = widget.HighImportance

	var deleteMode *widget.Button
	deleteMode = widget.NewButtonWithIcon(labelDeleteMode, theme.DeleteIcon(), func() {
		if board.ToggleDeleteMode() == state.ModeDelete {
			deleteMode.SetText(labelExitDeleteMode)
			deleteMode.Importance = widget.WarningImportance
		} else {
			deleteMode.SetText(labelDeleteMode)
			deleteMode.Importance = widget.MediumImportance
		}
		deleteMode.Refresh()
	})

	clearCanvas := widget.NewButtonWithIcon("Clear Canvas", theme.ContentClearIcon(), board.ClearSquares)
	clearCanvas.Importance = widget.DangerImportance

	open := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() {
		ShowOpenDialog(board, win)
	})

	swatches := container.NewHBox()
	for _, hex := range state.Palette {
		swatches.Add(paletteSwatch(state.ColorOf(hex)))
	}

	return container.NewHBox(
		layout.NewSpacer(),
		draw,
		deleteMode,
		clearCanvas,
		widget.NewSeparator(),
		open,
		save,
		pdf,
		widget.NewSeparator(),
		swatches,
		layout.NewSpacer(),
	)
}
