package state

// Default drawing surface, in surface-local units.
const (
	DefaultWidth    = 400
	DefaultHeight   = 530
	DefaultDeadZone = 10
)

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Bounds is the accepted region of the drawing surface. A point is accepted
// when it lies inside [0,Width]x[0,Height] and outside the dead-zone square
// [0,DeadZone)x[0,DeadZone) at the origin.
type Bounds struct {
	Width    float64
	Height   float64
	DeadZone float64
}

func DefaultBounds() Bounds {
	return Bounds{Width: DefaultWidth, Height: DefaultHeight, DeadZone: DefaultDeadZone}
}

// Contains reports whether p lies on the surface, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// InDeadZone reports whether p is a near-origin mis-touch.
func (b Bounds) InDeadZone(p Point) bool {
	return p.X < b.DeadZone && p.Y < b.DeadZone
}

// Accepts reports whether p may start or extend a stroke.
func (b Bounds) Accepts(p Point) bool {
	return b.Contains(p) && !b.InDeadZone(p)
}
