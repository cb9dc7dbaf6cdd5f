package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/config"
	"PaintBoard/internal/state"
)

const appID = "io.paintboard.app"

// Status is the one-line message bar under the board. Set is safe to call
// from any goroutine.
type Status struct {
	label *widget.Label
}

func NewStatus(text string) *Status {
	return &Status{label: widget.NewLabel(text)}
}

func (s *Status) Set(text string) {
	fyne.Do(func() {
		s.label.SetText(text)
	})
}

func (s *Status) Text() string {
	return s.label.Text
}

func NewApp() fyne.App {
	return app.NewWithID(appID)
}

// RunPaint shows the paint board and blocks until the window closes. The
// selected color and template persist in the app preferences.
func RunPaint(a fyne.App, cfg config.Config, c *state.Canvas, shareLink string) {
	w := a.NewWindow("PaintBoard")
	prefs := a.Preferences()
	sel := state.NewSelector(prefs)

	board := NewPaintWidget(c, sel)
	status := NewStatus("Ready")
	if shareLink != "" {
		status.Set("Sharing at " + shareLink)
	}
	files := NewFileActions(board, w, status)
	toolbar := NewToolbar(board, cfg, sel, prefs, files)

	w.SetContent(container.NewBorder(toolbar, status.label, nil, nil, container.NewCenter(board)))
	w.Resize(fyne.NewSize(float32(cfg.Surface.Width)+40, float32(cfg.Surface.Height)+120))
	w.ShowAndRun()
}

// RunViewer shows a read-only board. connect runs in the background with a
// refresh callback that redraws the board from any goroutine.
func RunViewer(a fyne.App, c *state.Canvas, connect func(refresh func(), status *Status)) {
	w := a.NewWindow("PaintBoard (viewing)")
	board := NewViewerWidget(c)
	status := NewStatus("Connecting...")

	refresh := func() { fyne.Do(board.Refresh) }
	go connect(refresh, status)

	w.SetContent(container.NewBorder(nil, status.label, nil, nil, container.NewCenter(board)))
	b := c.Bounds()
	w.Resize(fyne.NewSize(float32(b.Width)+40, float32(b.Height)+80))
	w.ShowAndRun()
}
