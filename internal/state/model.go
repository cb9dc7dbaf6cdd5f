package state

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStrokeWidth is the uniform width every stroke renders with.
const DefaultStrokeWidth = 5

// Stroke is a completed stroke. It is never modified after commit.
type Stroke struct {
	ID    string    `json:"id"`
	Path  Path      `json:"path"`
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Time  time.Time `json:"time"`
}

func newStroke(path Path, c Color, width float64) Stroke {
	return Stroke{
		ID:    uuid.NewString(),
		Path:  path,
		Color: c,
		Width: width,
		Time:  time.Now(),
	}
}

func (s Stroke) clone() Stroke {
	s.Path = s.Path.clone()
	return s
}

// Snapshot is the canvas state handed to the display layer. It shares no
// memory with the canvas.
type Snapshot struct {
	InProgress Path
	Strokes    []Stroke
}

type OpType string

const (
	OpCommit OpType = "commit"
	OpReset  OpType = "reset"
	OpLoad   OpType = "load"
)

// Op records one change to the stroke list so it can be replayed elsewhere.
type Op struct {
	Type    OpType   `json:"type"`
	Stroke  *Stroke  `json:"stroke,omitempty"`
	Strokes []Stroke `json:"strokes,omitempty"`
	Lamport uint64   `json:"lamport"`
	Site    string   `json:"site"`
}

// MarshalText writes the path as SVG path data.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(b []byte) error {
	parsed, err := ParsePath(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
