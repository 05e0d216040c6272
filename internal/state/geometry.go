package state

// Point is a position on the board, in whichever space the caller says.
type Point struct {
	X float64
	Y float64
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r. All four edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// clamp keeps v inside [0, max]. A negative max pins to 0.
func clamp(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ToSurface maps a client-space point into surface-space. bounds is where the
// surface is displayed on screen; w and h are its intrinsic size. Each axis is
// scaled on its own so a stretched display still maps correctly.
func ToSurface(client Point, bounds Rect, w, h float64) Point {
	sx, sy := 1.0, 1.0
	if bounds.Width > 0 {
		sx = w / bounds.Width
	}
	if bounds.Height > 0 {
		sy = h / bounds.Height
	}
	return Point{
		X: (client.X - bounds.X) * sx,
		Y: (client.Y - bounds.Y) * sy,
	}
}
