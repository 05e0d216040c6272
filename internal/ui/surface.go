package ui

import (
	"image/color"

	"SquareBoard/internal/state"

	"fyne.io/fyne/v2"
)

type opKind int

const (
	opClear opKind = iota
	opFill
	opStroke
)

type drawOp struct {
	kind       opKind
	x, y, w, h float64
	color      color.Color
	lineWidth  float64
}

// recorder is the board's draw context. Calls are kept as a display list in
// surface-space and replayed by the renderer at the widget's current size.
type recorder struct {
	w, h float64
	ops  []drawOp
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= r.w && y+h >= r.h {
		// everything underneath is gone
		r.ops = r.ops[:0]
		return
	}
	r.ops = append(r.ops, drawOp{kind: opClear, x: x, y: y, w: w, h: h})
}

func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: opFill, x: x, y: y, w: w, h: h, color: c})
}

func (r *recorder) StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64) {
	r.ops = append(r.ops, drawOp{kind: opStroke, x: x, y: y, w: w, h: h, color: c, lineWidth: lineWidth})
}

// boardSurface exposes a BoardWidget to the controller. It is a separate
// type because fyne widgets already have a Size method.
type boardSurface struct {
	board *BoardWidget
}

func (s boardSurface) Size() (float64, float64) {
	return s.board.rec.w, s.board.rec.h
}

func (s boardSurface) Bounds() state.Rect {
	size := s.board.BaseWidget.Size()
	var pos fyne.Position
	if app := fyne.CurrentApp(); app != nil && app.Driver() != nil {
		pos = app.Driver().AbsolutePositionForObject(s.board)
	}
	return state.Rect{
		X:      float64(pos.X),
		Y:      float64(pos.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

func (s boardSurface) Context() state.DrawContext {
	if s.board.rec == nil {
		return nil
	}
	return s.board.rec
}
