package state

import (
	"log"
	"sync"
)

// Canvas captures touch gestures as strokes on a bounded surface.
//
// A gesture opens on BeginStroke and closes on EndStroke. Points outside
// the surface or inside the dead-zone are dropped silently. While a gesture
// is open, the first accepted point starts the path with a MoveTo and every
// later one appends a LineTo. Releasing commits the path, if any, in the
// color the caller holds at release time.
type Canvas struct {
	mu          sync.RWMutex
	bounds      Bounds
	strokeWidth float64
	gesture     bool
	current     PathState
	strokes     []Stroke
	clock       *Clock

	// OnOp, if set, receives every commit and reset after it is applied.
	OnOp func(Op)
}

func NewCanvas(bounds Bounds, strokeWidth float64) *Canvas {
	if strokeWidth <= 0 {
		strokeWidth = DefaultStrokeWidth
	}
	return &Canvas{
		bounds:      bounds,
		strokeWidth: strokeWidth,
		strokes:     make([]Stroke, 0),
		clock:       NewClock(),
	}
}

func (c *Canvas) Bounds() Bounds {
	return c.bounds
}

func (c *Canvas) StrokeWidth() float64 {
	return c.strokeWidth
}

func (c *Canvas) Clock() *Clock {
	return c.clock
}

// BeginStroke handles touch-down. The current color is accepted for symmetry
// with the other gesture calls; it does not bind to the stroke.
func (c *Canvas) BeginStroke(p Point, _ Color) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gesture = true
	if c.bounds.Accepts(p) {
		c.current = startPath(p)
	}
	return c.snapshotLocked()
}

// ExtendStroke handles touch-move.
func (c *Canvas) ExtendStroke(p Point, _ Color) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gesture && c.bounds.Accepts(p) {
		c.current = c.current.extend(p)
	}
	return c.snapshotLocked()
}

// EndStroke handles touch-release. A path with a single MoveTo is still
// committed.
func (c *Canvas) EndStroke(current Color) Snapshot {
	c.mu.Lock()
	var op *Op
	if c.current.IsActive() {
		s := newStroke(c.current.path, current, c.strokeWidth)
		c.strokes = append(c.strokes, s)
		stamped := c.clock.stamp(Op{Type: OpCommit, Stroke: &s})
		op = &stamped
	}
	c.gesture = false
	c.current = PathState{}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if op != nil {
		log.Printf("[capture] committed stroke %s (%d commands, %s)", op.Stroke.ID, len(op.Stroke.Path), op.Stroke.Color)
		c.emit(*op)
	}
	return snap
}

// Reset drops every stroke and any path in progress.
func (c *Canvas) Reset() Snapshot {
	c.mu.Lock()
	c.strokes = make([]Stroke, 0)
	c.current = PathState{}
	c.gesture = false
	op := c.clock.stamp(Op{Type: OpReset})
	snap := c.snapshotLocked()
	c.mu.Unlock()

	log.Println("[capture] canvas reset")
	c.emit(op)
	return snap
}

// Drawing reports whether a path is in progress.
func (c *Canvas) Drawing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.IsActive()
}

func (c *Canvas) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Strokes returns a copy of the committed strokes in commit order.
func (c *Canvas) Strokes() []Stroke {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneStrokes(c.strokes)
}

func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strokes)
}

// Load replaces the committed strokes with those of a board file. Any path
// in progress is discarded. The new stroke list goes out as a single load op.
func (c *Canvas) Load(strokes []Stroke) {
	c.mu.Lock()
	c.replaceLocked(strokes)
	op := c.clock.stamp(Op{Type: OpLoad, Strokes: cloneStrokes(c.strokes)})
	c.mu.Unlock()

	log.Printf("[capture] loaded %d strokes", len(strokes))
	c.emit(op)
}

func (c *Canvas) replaceLocked(strokes []Stroke) {
	c.strokes = cloneStrokes(strokes)
	c.current = PathState{}
	c.gesture = false
}

// Apply replays an op from another site. Commits already present are
// ignored.
func (c *Canvas) Apply(op Op) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.Witness(op.Lamport)

	switch op.Type {
	case OpCommit:
		if op.Stroke == nil {
			return false
		}
		for _, s := range c.strokes {
			if s.ID == op.Stroke.ID {
				log.Printf("[capture] stroke %s already present, ignoring", s.ID)
				return false
			}
		}
		c.strokes = append(c.strokes, op.Stroke.clone())
		return true
	case OpReset:
		c.replaceLocked(nil)
		return true
	case OpLoad:
		c.replaceLocked(op.Strokes)
		return true
	}
	log.Printf("[capture] unknown op type %q from site %s", op.Type, op.Site)
	return false
}

func (c *Canvas) emit(op Op) {
	if c.OnOp != nil {
		c.OnOp(op)
	}
}

func (c *Canvas) snapshotLocked() Snapshot {
	return Snapshot{
		InProgress: c.current.Path(),
		Strokes:    cloneStrokes(c.strokes),
	}
}

func cloneStrokes(in []Stroke) []Stroke {
	out := make([]Stroke, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}
	return out
}
