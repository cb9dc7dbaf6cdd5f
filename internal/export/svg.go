package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"PaintBoard/internal/state"
)

// WriteSVG writes the strokes of b as open, unfilled SVG paths. A template
// href, if given, is placed beneath them.
func WriteSVG(w io.Writer, b Board, templateHref string) {
	width := int(math.Ceil(b.Width))
	height := int(math.Ceil(b.Height))
	s := svg.New(w)
	s.Start(width, height)
	if templateHref != "" {
		s.Image(0, 0, width, height, templateHref, `preserveAspectRatio="xMidYMid meet"`)
	}
	for _, st := range b.Strokes {
		s.Path(pathData(st.Path), strokeStyle(st))
	}
	s.End()
}

func pathData(p state.Path) string {
	if len(p) == 1 {
		// a lone moveto draws nothing; repeat the point so the cap shows
		p = state.Path{p[0], {Kind: state.LineTo, Point: p[0].Point}}
	}
	return p.String()
}

func strokeStyle(st state.Stroke) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round", st.Color, st.Width)
}
