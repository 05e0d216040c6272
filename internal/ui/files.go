package ui

import (
	"fmt"
	"io"

	"SquareBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"
)

var boardFilter = storage.NewExtensionFileFilter([]string{".json"})

// SaveTo writes the current board to w as snapshot JSON.
func (b *BoardWidget) SaveTo(w io.Writer) error {
	snap := b.Snapshot()
	if err := state.WriteSnapshot(w, snap); err != nil {
		return err
	}
	logrus.WithField("squares", len(snap.Squares)).Info("Saved board")
	b.SetStatus(fmt.Sprintf("Saved %d squares", len(snap.Squares)))
	return nil
}

// LoadFrom replaces the board with a snapshot read from r. The board is left
// untouched if the file is not a valid board.
func (b *BoardWidget) LoadFrom(r io.Reader) error {
	if b.readOnly {
		return nil
	}
	snap, err := state.ReadSnapshot(r)
	if err != nil {
		return err
	}
	b.ApplySnapshot(snap)
	logrus.WithField("squares", len(snap.Squares)).Info("Loaded board")
	b.SetStatus(fmt.Sprintf("Loaded %d squares", len(snap.Squares)))
	return nil
}

func ShowSaveDialog(b *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logrus.WithError(err).Warn("Error closing board file")
			}
		}()
		if err := b.SaveTo(writer); err != nil {
			logrus.WithError(err).WithField("uri", writer.URI().String()).Error("Save failed")
			b.SetStatus("Error saving file")
		}
	}, win)
	d.SetFileName("board.json")
	d.SetFilter(boardFilter)
	d.Show()
}

func ShowOpenDialog(b *BoardWidget, win fyne.Window) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				logrus.WithError(err).Warn("Error closing board file")
			}
		}()
		if err := b.LoadFrom(reader); err != nil {
			logrus.WithError(err).WithField("uri", reader.URI().String()).Error("Load failed")
			b.SetStatus("Error reading file: invalid board")
		}
	}, win)
	d.SetFilter(boardFilter)
	d.Show()
}
