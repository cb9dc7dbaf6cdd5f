package state

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

type CommandKind int

const (
	MoveTo CommandKind = iota
	LineTo
)

func (k CommandKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	}
	return "?"
}

// Command is one step of a path.
type Command struct {
	Kind CommandKind
	Point
}

// Path is an open polyline: exactly one MoveTo followed by zero or more LineTo.
type Path []Command

// String renders the path in SVG path data form, e.g. "M 50 50 L 60 60".
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Kind.String())
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(c.X))
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(c.Y))
	}
	return sb.String()
}

// Points returns the vertices of the path in order.
func (p Path) Points() []Point {
	pts := make([]Point, len(p))
	for i, c := range p {
		pts[i] = c.Point
	}
	return pts
}

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParsePath reads path data written by Path.String. Only absolute M and L
// commands are accepted and the path must start with its only M.
func ParsePath(d string) (Path, error) {
	fields := strings.Fields(strings.ReplaceAll(d, ",", " "))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}

	var path Path
	kind := CommandKind(-1)
	for i := 0; i < len(fields); {
		switch fields[i] {
		case "M":
			if len(path) > 0 {
				return nil, fmt.Errorf("%w: second move at field %d", ErrInvalidPath, i)
			}
			kind = MoveTo
			i++
		case "L":
			if len(path) == 0 {
				return nil, fmt.Errorf("%w: line before move", ErrInvalidPath)
			}
			kind = LineTo
			i++
		}
		if kind < 0 {
			return nil, fmt.Errorf("%w: must start with M", ErrInvalidPath)
		}
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("%w: missing coordinate", ErrInvalidPath)
		}
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("%w: non-finite point %s %s", ErrInvalidPath, fields[i], fields[i+1])
		}
		path = append(path, Command{Kind: kind, Point: Pt(x, y)})
		// implicit repeats of M are line segments, as in SVG
		if kind == MoveTo {
			kind = LineTo
		}
		i += 2
	}
	return path, nil
}

// PathState is the in-progress path: either empty or an active path that
// always begins with a single MoveTo. The zero value is empty.
type PathState struct {
	path Path
}

func startPath(p Point) PathState {
	return PathState{path: Path{{Kind: MoveTo, Point: p}}}
}

// IsActive reports whether a path is being drawn.
func (s PathState) IsActive() bool {
	return len(s.path) > 0
}

// Path returns a copy of the active path, or nil when empty.
func (s PathState) Path() Path {
	return s.path.clone()
}

// extend appends a segment to an active path or starts one when empty.
func (s PathState) extend(p Point) PathState {
	if !s.IsActive() {
		return startPath(p)
	}
	return PathState{path: append(s.path, Command{Kind: LineTo, Point: p})}
}
