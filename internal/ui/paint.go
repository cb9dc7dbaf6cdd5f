package ui

import (
	"image/color"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/state"
)

// PaintWidget is the drawing surface. Pointer and touch events are passed to
// the capture canvas in widget-local coordinates, which are the surface
// coordinates.
type PaintWidget struct {
	widget.BaseWidget
	canvas   *state.Canvas
	selector *state.Selector
	readOnly bool
	template string

	// OnChange runs after every gesture that may have changed the board.
	OnChange func()
}

var _ fyne.Widget = (*PaintWidget)(nil)
var _ fyne.Draggable = (*PaintWidget)(nil)
var _ desktop.Mouseable = (*PaintWidget)(nil)
var _ mobile.Touchable = (*PaintWidget)(nil)

func NewPaintWidget(c *state.Canvas, sel *state.Selector) *PaintWidget {
	p := &PaintWidget{canvas: c, selector: sel}
	p.ExtendBaseWidget(p)
	return p
}

// NewViewerWidget shows a board without accepting input.
func NewViewerWidget(c *state.Canvas) *PaintWidget {
	p := NewPaintWidget(c, state.NewSelector(nil))
	p.readOnly = true
	return p
}

func (p *PaintWidget) Canvas() *state.Canvas { return p.canvas }

// SetTemplate shows the image at path beneath the strokes. An empty path
// clears it.
func (p *PaintWidget) SetTemplate(path string) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			log.Printf("[ui] template %s: %v", path, err)
			path = ""
		}
	}
	p.template = path
	p.Refresh()
}

func (p *PaintWidget) Template() string { return p.template }

// Clear is the reset control.
func (p *PaintWidget) Clear() {
	if p.readOnly {
		return
	}
	p.canvas.Reset()
	p.changed()
}

func (p *PaintWidget) begin(pos fyne.Position) {
	if p.readOnly {
		return
	}
	p.canvas.BeginStroke(toPoint(pos), p.selector.Current())
	p.Refresh()
}

func (p *PaintWidget) extend(pos fyne.Position) {
	if p.readOnly {
		return
	}
	p.canvas.ExtendStroke(toPoint(pos), p.selector.Current())
	p.Refresh()
}

func (p *PaintWidget) end() {
	if p.readOnly {
		return
	}
	before := p.canvas.Len()
	p.canvas.EndStroke(p.selector.Current())
	if p.canvas.Len() != before {
		p.changed()
		return
	}
	p.Refresh()
}

func (p *PaintWidget) changed() {
	p.Refresh()
	if p.OnChange != nil {
		p.OnChange()
	}
}

func toPoint(pos fyne.Position) state.Point {
	return state.Pt(float64(pos.X), float64(pos.Y))
}

func (p *PaintWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.begin(e.Position)
	}
}

func (p *PaintWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.end()
	}
}

func (p *PaintWidget) Dragged(e *fyne.DragEvent) { p.extend(e.Position) }
func (p *PaintWidget) DragEnd()                  { p.end() }

func (p *PaintWidget) TouchDown(e *mobile.TouchEvent) { p.begin(e.Position) }
func (p *PaintWidget) TouchUp(*mobile.TouchEvent)     { p.end() }
func (p *PaintWidget) TouchCancel(*mobile.TouchEvent) { p.end() }

func (p *PaintWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &paintRenderer{paint: p}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type paintRenderer struct {
	paint      *PaintWidget
	background *canvas.Rectangle
	image      *canvas.Image
	imagePath  string
	objects    []fyne.CanvasObject
}

func (r *paintRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *paintRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.paint.Size())
	canvas.Refresh(r.paint)
}

// rebuild recreates the stroke objects: each stroke is an open polyline of
// uniform width in its own color, and the path in progress uses the
// selected color.
func (r *paintRenderer) rebuild() {
	p := r.paint
	if r.imagePath != p.template {
		r.imagePath = p.template
		r.image = nil
		if p.template != "" {
			r.image = canvas.NewImageFromFile(p.template)
			r.image.FillMode = canvas.ImageFillContain
		}
	}

	snap := p.canvas.Snapshot()
	width := float32(p.canvas.StrokeWidth())
	objects := []fyne.CanvasObject{r.background}
	if r.image != nil {
		objects = append(objects, r.image)
	}
	for _, s := range snap.Strokes {
		objects = append(objects, polyline(s.Path, s.Color, float32(s.Width))...)
	}
	if len(snap.InProgress) > 0 {
		objects = append(objects, polyline(snap.InProgress, p.selector.Current(), width)...)
	}
	r.objects = objects
}

func polyline(path state.Path, c state.Color, width float32) []fyne.CanvasObject {
	col := c.NRGBA()
	if len(path) == 1 {
		dot := canvas.NewCircle(col)
		half := width / 2
		pt := path[0]
		dot.Move(fyne.NewPos(float32(pt.X)-half, float32(pt.Y)-half))
		dot.Resize(fyne.NewSize(width, width))
		return []fyne.CanvasObject{dot}
	}

	segments := make([]fyne.CanvasObject, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		seg := canvas.NewLine(col)
		seg.StrokeWidth = width
		seg.Position1 = fyne.NewPos(float32(path[i-1].X), float32(path[i-1].Y))
		seg.Position2 = fyne.NewPos(float32(path[i].X), float32(path[i].Y))
		segments = append(segments, seg)
	}
	return segments
}

func (r *paintRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	if r.image != nil {
		r.image.Resize(size)
	}
}

func (r *paintRenderer) MinSize() fyne.Size {
	b := r.paint.canvas.Bounds()
	return fyne.NewSize(float32(b.Width), float32(b.Height))
}

func (r *paintRenderer) Destroy() {}

func (p *PaintWidget) MouseIn(*desktop.MouseEvent)    {}
func (p *PaintWidget) MouseOut()                      {}
func (p *PaintWidget) MouseMoved(*desktop.MouseEvent) {}
