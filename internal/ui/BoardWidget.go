package ui

import (
	"fmt"
	"image/color"

	"SquareBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget is the canvas area. It feeds pointer events to a
// state.Controller and paints whatever the controller draws.
type BoardWidget struct {
	widget.BaseWidget
	ctrl     *state.Controller
	rec      *recorder
	readOnly bool

	caption   *widget.Label
	statusBar *widget.Label

	// OnChange receives every new board snapshot. The host hooks sharing here.
	OnChange func(state.Snapshot)
	// OnModeChange fires after delete mode is toggled.
	OnModeChange func(state.Mode)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(opts ...state.Option) *BoardWidget {
	b := &BoardWidget{
		rec:       &recorder{w: state.SurfaceWidth, h: state.SurfaceHeight},
		caption:   widget.NewLabel(""),
		statusBar: widget.NewLabel("Ready"),
	}
	b.ctrl = state.NewController(boardSurface{board: b}, opts...)
	b.ctrl.OnChange = b.changed
	b.ExtendBaseWidget(b)
	b.updateCaption()
	return b
}

// SetReadOnly stops pointer input from editing the board. Viewers use it.
func (b *BoardWidget) SetReadOnly(ro bool) {
	b.readOnly = ro
	if ro {
		b.ctrl.Release()
	}
	b.updateCaption()
}

func (b *BoardWidget) ReadOnly() bool { return b.readOnly }

func (b *BoardWidget) AddSquare() {
	if b.readOnly {
		return
	}
	b.ctrl.Add()
}

func (b *BoardWidget) ClearSquares() {
	if b.readOnly {
		return
	}
	b.ctrl.Clear()
}

func (b *BoardWidget) ToggleDeleteMode() state.Mode {
	m := b.ctrl.ToggleDeleteMode()
	b.updateCaption()
	if b.OnModeChange != nil {
		b.OnModeChange(m)
	}
	return m
}

func (b *BoardWidget) Mode() state.Mode { return b.ctrl.Mode() }

func (b *BoardWidget) Squares() []state.Square { return b.ctrl.Squares() }

func (b *BoardWidget) Snapshot() state.Snapshot { return b.ctrl.Snapshot() }

// ApplySnapshot replaces the board contents. Call it on the UI goroutine.
func (b *BoardWidget) ApplySnapshot(s state.Snapshot) {
	b.ctrl.Load(s)
}

// Caption describes the current mode for the user.
func (b *BoardWidget) Caption() *widget.Label { return b.caption }

// StatusBar shows connection and file messages.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus can be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) changed(s state.Snapshot) {
	b.updateCaption()
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange(s)
	}
}

func (b *BoardWidget) updateCaption() {
	n := b.ctrl.Len()
	switch {
	case b.readOnly:
		b.caption.SetText(fmt.Sprintf("Viewing a shared board. Squares: %d", n))
	case b.ctrl.Mode() == state.ModeDelete:
		b.caption.SetText(fmt.Sprintf("Delete mode: click a square to remove it. Squares: %d", n))
	default:
		b.caption.SetText(fmt.Sprintf("Drag squares to move them. Squares: %d", n))
	}
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.ctrl.Press(toPoint(e.AbsolutePosition))
}

func (b *BoardWidget) MouseUp(*desktop.MouseEvent) {
	b.ctrl.Release()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.readOnly {
		return
	}
	b.ctrl.Move(toPoint(e.AbsolutePosition))
}

func (b *BoardWidget) MouseOut() {
	b.ctrl.Leave()
}

// Dragged also watches for the pointer leaving the board, since the desktop
// driver does not send MouseOut to the widget being dragged.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.readOnly {
		return
	}
	if !b.inside(e.Position) {
		b.ctrl.Leave()
		return
	}
	b.ctrl.Move(toPoint(e.AbsolutePosition))
}

func (b *BoardWidget) inside(p fyne.Position) bool {
	size := b.BaseWidget.Size()
	return p.X >= 0 && p.Y >= 0 && p.X <= size.Width && p.Y <= size.Height
}

func (b *BoardWidget) DragEnd() {
	b.ctrl.Release()
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	switch b.ctrl.Cursor() {
	case state.CursorGrab, state.CursorGrabbing:
		return desktop.PointerCursor
	case state.CursorCrosshair:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.background.StrokeColor = color.NRGBA{R: 0xCB, G: 0xD5, B: 0xE0, A: 0xFF}
	r.background.StrokeWidth = 2
	r.background.CornerRadius = 8
	r.rebuild(b.BaseWidget.Size())
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	shapes     []fyne.CanvasObject
}

// rebuild replays the display list scaled from surface-space to size.
func (r *boardWidgetRenderer) rebuild(size fyne.Size) {
	rec := r.board.rec
	sx := float64(size.Width) / rec.w
	sy := float64(size.Height) / rec.h

	shapes := make([]fyne.CanvasObject, 0, len(rec.ops))
	for _, op := range rec.ops {
		var rect *canvas.Rectangle
		switch op.kind {
		case opClear:
			rect = canvas.NewRectangle(color.White)
		case opFill:
			rect = canvas.NewRectangle(op.color)
		case opStroke:
			rect = canvas.NewRectangle(color.Transparent)
			rect.StrokeColor = op.color
			rect.StrokeWidth = float32(op.lineWidth * (sx + sy) / 2)
		}
		rect.Move(fyne.NewPos(float32(op.x*sx), float32(op.y*sy)))
		rect.Resize(fyne.NewSize(float32(op.w*sx), float32(op.h*sy)))
		shapes = append(shapes, rect)
	}
	r.shapes = shapes
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return append([]fyne.CanvasObject{r.background}, r.shapes...)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild(size)
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild(r.board.BaseWidget.Size())
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(state.SurfaceWidth/2, state.SurfaceHeight/2)
}

func (r *boardWidgetRenderer) Destroy() {}
