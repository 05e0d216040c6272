package state

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	SurfaceWidth  = 800
	SurfaceHeight = 600

	SquareSize = 100

	OutlineColor = "#2D3748"
	OutlineWidth = 2
)

// Palette is the fixed set of fill colors a new square can get.
var Palette = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#98D8C8",
	"#F7DC6F",
}

// Square is one shape on the board. X and Y are in surface-space.
type Square struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

func (s Square) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeDelete
)

func (m Mode) String() string {
	if m == ModeDelete {
		return "delete"
	}
	return "normal"
}

// Cursor is the pointer feedback the controller asks the UI to show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorCrosshair
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorCrosshair:
		return "crosshair"
	}
	return "default"
}

// ParseColor converts a "#RRGGBB" palette entry into a color.Color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ColorOf is ParseColor for values known to be valid, such as palette entries.
// Anything unparsable renders black.
func ColorOf(hex string) color.Color {
	c, err := ParseColor(hex)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}

func inPalette(hex string) bool {
	for _, p := range Palette {
		if p == hex {
			return true
		}
	}
	return false
}
