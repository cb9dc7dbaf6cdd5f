package ui

import (
	"bytes"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/state"
)

func newTestBoard(t *testing.T) (*PaintWidget, *state.Selector) {
	t.Helper()
	test.NewTempApp(t)
	c := state.NewCanvas(state.DefaultBounds(), state.DefaultStrokeWidth)
	sel := state.NewSelector(nil)
	return NewPaintWidget(c, sel), sel
}

func press(p *PaintWidget, x, y float32) {
	p.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func drag(p *PaintWidget, x, y float32) {
	p.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func release(p *PaintWidget) {
	p.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	p.DragEnd()
}

func TestPaintWidgetGesture(t *testing.T) {
	p, sel := newTestBoard(t)
	changes := 0
	p.OnChange = func() { changes++ }

	require.NoError(t, sel.Set(state.Red))
	press(p, 50, 50)
	drag(p, 60, 60)
	drag(p, 70, 80)
	assert.True(t, p.Canvas().Drawing())
	release(p)

	strokes := p.Canvas().Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, "M 50 50 L 60 60 L 70 80", strokes[0].Path.String())
	assert.Equal(t, state.Red, strokes[0].Color)
	assert.Equal(t, 1, changes)
}

func TestPaintWidgetSecondaryButtonIgnored(t *testing.T) {
	p, _ := newTestBoard(t)
	p.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)},
		Button:     desktop.MouseButtonSecondary,
	})
	drag(p, 60, 60)
	release(p)
	assert.Zero(t, p.Canvas().Len())
}

func TestPaintWidgetClear(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	release(p)
	require.Equal(t, 1, p.Canvas().Len())
	p.Clear()
	assert.Zero(t, p.Canvas().Len())
}

func TestViewerWidgetReadOnly(t *testing.T) {
	test.NewTempApp(t)
	c := state.NewCanvas(state.DefaultBounds(), state.DefaultStrokeWidth)
	v := NewViewerWidget(c)
	press(v, 50, 50)
	drag(v, 60, 60)
	release(v)
	v.Clear()
	assert.Zero(t, c.Len())
}

func TestPaintRendererObjects(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	drag(p, 60, 60)
	drag(p, 70, 80)
	release(p)
	press(p, 200, 200)

	r := test.TempWidgetRenderer(t, p)
	objs := r.Objects()
	// background, two segments, one in-progress dot
	require.Len(t, objs, 4)
	line, ok := objs[1].(*canvas.Line)
	require.True(t, ok)
	assert.Equal(t, float32(state.DefaultStrokeWidth), line.StrokeWidth)
	assert.Equal(t, fyne.NewPos(50, 50), line.Position1)
	_, ok = objs[3].(*canvas.Circle)
	assert.True(t, ok)

	assert.Equal(t, fyne.NewSize(state.DefaultWidth, state.DefaultHeight), r.MinSize())
}

type nopCloser struct{ io.ReadWriter }

func (nopCloser) Close() error { return nil }

func TestFileActionsRoundTrip(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	drag(p, 60, 60)
	release(p)

	files := NewFileActions(p, nil, NewStatus(""))
	var buf bytes.Buffer
	files.SaveTo(nopCloser{&buf})

	other, _ := newTestBoard(t)
	NewFileActions(other, nil, NewStatus("")).LoadFrom(nopCloser{&buf})
	require.Equal(t, 1, other.Canvas().Len())
	assert.Equal(t, p.Canvas().Strokes()[0].ID, other.Canvas().Strokes()[0].ID)
}

func TestFileActionsLoadInvalidKeepsBoard(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	release(p)
	NewFileActions(p, nil, NewStatus("")).LoadFrom(nopCloser{bytes.NewBufferString("{nope")})
	assert.Equal(t, 1, p.Canvas().Len())
}

func TestFileActionsLoadOversizedKeepsBoard(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	release(p)
	big := `{"width":800,"height":900,"strokes":[{"path":"M 700 800","color":"#000"}]}`
	NewFileActions(p, nil, NewStatus("")).LoadFrom(nopCloser{bytes.NewBufferString(big)})
	assert.Equal(t, 1, p.Canvas().Len())
}

func TestFileActionsExport(t *testing.T) {
	p, _ := newTestBoard(t)
	press(p, 50, 50)
	drag(p, 60, 60)
	release(p)
	files := NewFileActions(p, nil, NewStatus(""))

	formats := map[string][]byte{
		".png": []byte("\x89PNG"),
		".pdf": []byte("%PDF-"),
		".svg": []byte("<?xml"),
	}
	for ext, magic := range formats {
		var buf bytes.Buffer
		files.ExportTo(nopCloser{&buf}, ext)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), magic), ext)
	}
}
