package state

import (
	"image/color"
	"math"
	"math/rand"
)

// DrawContext is the immediate-mode drawing API of a surface.
type DrawContext interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64)
}

// Surface is what the controller draws on and maps pointer positions against.
type Surface interface {
	// Size is the intrinsic resolution in surface-space.
	Size() (w, h float64)
	// Bounds is where the surface is displayed, in client-space.
	Bounds() Rect
	// Context returns nil when the surface cannot be drawn on.
	Context() DrawContext
}

type dragSession struct {
	id     string
	offset Point
}

// Controller owns the square collection and turns pointer input into edits.
// It is not safe for concurrent use; call it from the UI goroutine only.
type Controller struct {
	surface Surface
	squares []Square
	mode    Mode
	cursor  Cursor
	drag    *dragSession

	random func() float64
	newID  func() string
	clock  Clock

	// OnChange is called after every mutation of the collection.
	OnChange func(Snapshot)
}

type Option func(*Controller)

// WithRandom replaces the source of uniform values in [0,1).
func WithRandom(f func() float64) Option {
	return func(c *Controller) { c.random = f }
}

// WithIDSource replaces the generator used for new square ids.
func WithIDSource(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

func NewController(s Surface, opts ...Option) *Controller {
	c := &Controller{
		surface: s,
		random:  rand.Float64,
		newID:   NewID,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Mode() Mode     { return c.mode }
func (c *Controller) Cursor() Cursor { return c.cursor }
func (c *Controller) Len() int       { return len(c.squares) }

// Squares returns a copy of the collection, bottom first.
func (c *Controller) Squares() []Square {
	out := make([]Square, len(c.squares))
	copy(out, c.squares)
	return out
}

// Dragging returns the id of the square being dragged, if any.
func (c *Controller) Dragging() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.id, true
}

func (c *Controller) Snapshot() Snapshot {
	w, h := float64(SurfaceWidth), float64(SurfaceHeight)
	if c.surface != nil {
		w, h = c.surface.Size()
	}
	return Snapshot{
		Revision: c.clock.Now(),
		Width:    w,
		Height:   h,
		Squares:  c.Squares(),
	}
}

// Add places a new square at a random spot where it fits entirely and gives
// it a random palette color. It does nothing without a drawable surface.
func (c *Controller) Add() (Square, bool) {
	if c.surface == nil || c.surface.Context() == nil {
		return Square{}, false
	}
	w, h := c.surface.Size()
	sq := Square{
		ID:     c.newID(),
		X:      c.random() * (w - SquareSize),
		Y:      c.random() * (h - SquareSize),
		Width:  SquareSize,
		Height: SquareSize,
	}
	idx := int(math.Floor(c.random() * float64(len(Palette))))
	if idx >= len(Palette) {
		idx = len(Palette) - 1
	}
	sq.Color = Palette[idx]

	c.squares = append(c.squares, sq)
	c.changed()
	return sq, true
}

func (c *Controller) Clear() {
	c.squares = nil
	c.drag = nil
	c.cursor = CursorDefault
	c.changed()
}

func (c *Controller) ToggleDeleteMode() Mode {
	if c.mode == ModeNormal {
		c.mode = ModeDelete
	} else {
		c.mode = ModeNormal
	}
	return c.mode
}

// HitTest returns the topmost square containing p, which is in surface-space.
func (c *Controller) HitTest(p Point) (Square, bool) {
	if i := c.hit(p); i >= 0 {
		return c.squares[i], true
	}
	return Square{}, false
}

func (c *Controller) hit(p Point) int {
	for i := len(c.squares) - 1; i >= 0; i-- {
		if c.squares[i].Bounds().Contains(p) {
			return i
		}
	}
	return -1
}

// Remove deletes the square with the given id.
func (c *Controller) Remove(id string) bool {
	for i := range c.squares {
		if c.squares[i].ID != id {
			continue
		}
		c.squares = append(c.squares[:i], c.squares[i+1:]...)
		if c.drag != nil && c.drag.id == id {
			c.drag = nil
		}
		c.changed()
		return true
	}
	return false
}

// ToSurface maps a client-space pointer position onto the surface.
func (c *Controller) ToSurface(client Point) Point {
	if c.surface == nil {
		return client
	}
	w, h := c.surface.Size()
	return ToSurface(client, c.surface.Bounds(), w, h)
}

// Press handles a pointer press at a client-space position.
func (c *Controller) Press(client Point) {
	if c.surface == nil {
		return
	}
	p := c.ToSurface(client)
	i := c.hit(p)
	if i < 0 {
		return
	}
	sq := c.squares[i]
	if c.mode == ModeDelete {
		c.Remove(sq.ID)
		return
	}
	c.drag = &dragSession{
		id:     sq.ID,
		offset: p.Sub(Point{X: sq.X, Y: sq.Y}),
	}
	c.cursor = CursorGrabbing
}

// Move handles pointer motion at a client-space position: it either drags
// the active square or updates hover feedback.
func (c *Controller) Move(client Point) {
	if c.surface == nil {
		return
	}
	p := c.ToSurface(client)

	if c.drag != nil && c.mode == ModeNormal {
		for i := range c.squares {
			if c.squares[i].ID != c.drag.id {
				continue
			}
			w, h := c.surface.Size()
			sq := &c.squares[i]
			sq.X = clamp(p.X-c.drag.offset.X, w-sq.Width)
			sq.Y = clamp(p.Y-c.drag.offset.Y, h-sq.Height)
			c.changed()
			return
		}
		// the dragged square is gone
		c.drag = nil
	}

	switch {
	case c.hit(p) < 0:
		c.cursor = CursorDefault
	case c.mode == ModeDelete:
		c.cursor = CursorCrosshair
	default:
		c.cursor = CursorGrab
	}
}

// Release ends the drag session, if there is one.
func (c *Controller) Release() {
	if c.drag == nil {
		return
	}
	c.drag = nil
	c.cursor = CursorDefault
}

// Leave is called when the pointer exits the surface.
func (c *Controller) Leave() {
	c.Release()
}

// Load replaces the collection with the squares of s. Squares are clamped
// onto this surface and repeated ids are dropped.
func (c *Controller) Load(s Snapshot) {
	w, h := float64(SurfaceWidth), float64(SurfaceHeight)
	if c.surface != nil {
		w, h = c.surface.Size()
	}
	seen := make(map[string]bool, len(s.Squares))
	squares := make([]Square, 0, len(s.Squares))
	for _, sq := range s.Squares {
		if seen[sq.ID] {
			continue
		}
		seen[sq.ID] = true
		sq.X = clamp(sq.X, w-sq.Width)
		sq.Y = clamp(sq.Y, h-sq.Height)
		squares = append(squares, sq)
	}
	c.squares = squares
	c.drag = nil
	c.cursor = CursorDefault
	c.clock.Observe(s.Revision)
	c.changed()
}

func (c *Controller) changed() {
	c.clock.Tick()
	c.Redraw()
	if c.OnChange != nil {
		c.OnChange(c.Snapshot())
	}
}

// Redraw erases the surface and paints every square, bottom first.
func (c *Controller) Redraw() {
	if c.surface == nil {
		return
	}
	ctx := c.surface.Context()
	if ctx == nil {
		return
	}
	w, h := c.surface.Size()
	ctx.ClearRect(0, 0, w, h)
	outline := ColorOf(OutlineColor)
	for _, sq := range c.squares {
		ctx.FillRect(sq.X, sq.Y, sq.Width, sq.Height, ColorOf(sq.Color))
		ctx.StrokeRect(sq.X, sq.Y, sq.Width, sq.Height, outline, OutlineWidth)
	}
}
