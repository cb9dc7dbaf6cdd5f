package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/config"
	"PaintBoard/internal/state"
)

const templateKey = "paint.template"

// --- Color swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	Selected func(state.Color) bool
	OnTapped func(state.Color)
}

func newColorSwatch(c state.Color, selected func(state.Color) bool, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, Selected: selected, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewCircle(s.Color.NRGBA())
	border := canvas.NewCircle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 0xcc}
	border.StrokeWidth = 1
	r := &swatchRenderer{swatch: s, border: border}
	r.WidgetRenderer = widget.NewSimpleRenderer(container.NewStack(rect, border))
	r.Refresh()
	return r
}

type swatchRenderer struct {
	fyne.WidgetRenderer
	swatch *colorSwatch
	border *canvas.Circle
}

func (r *swatchRenderer) MinSize() fyne.Size { return fyne.NewSize(30, 30) }

func (r *swatchRenderer) Refresh() {
	if r.swatch.Selected != nil && r.swatch.Selected(r.swatch.Color) {
		r.border.StrokeColor = color.Gray{Y: 0x33}
		r.border.StrokeWidth = 2
	} else {
		r.border.StrokeColor = color.Gray{Y: 0xcc}
		r.border.StrokeWidth = 1
	}
	r.border.Refresh()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewPalette builds one swatch per color. Tapping a swatch selects its color.
func NewPalette(colors []state.Color, sel *state.Selector) *fyne.Container {
	box := container.NewHBox()
	selected := func(c state.Color) bool { return sel.Current() == c }
	onTapped := func(c state.Color) {
		if err := sel.Set(c); err != nil {
			return
		}
		for _, o := range box.Objects {
			o.Refresh()
		}
	}
	for _, c := range colors {
		box.Add(newColorSwatch(c, selected, onTapped))
	}
	return box
}

// NewTemplateSelect picks the template image shown under the strokes and
// remembers the choice.
func NewTemplateSelect(templates []config.Template, board *PaintWidget, prefs state.Store) *widget.Select {
	labels := make([]string, len(templates))
	for i, t := range templates {
		labels[i] = t.Label
	}
	sel := widget.NewSelect(labels, func(label string) {
		for _, t := range templates {
			if t.Label == label {
				board.SetTemplate(t.Path)
				if prefs != nil {
					prefs.SetString(templateKey, t.ID)
				}
				return
			}
		}
	})

	if len(templates) > 0 {
		initial := templates[0]
		if prefs != nil {
			for _, t := range templates {
				if t.ID == prefs.String(templateKey) {
					initial = t
				}
			}
		}
		sel.SetSelected(initial.Label)
	}
	return sel
}

// NewToolbar assembles the palette, the clear control, the template picker
// and the file actions.
func NewToolbar(board *PaintWidget, cfg config.Config, sel *state.Selector, prefs state.Store, files *FileActions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentClearIcon(), board.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), files.Save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), files.Open),
		widget.NewToolbarAction(theme.UploadIcon(), files.Export),
	)

	return container.NewHBox(
		NewPalette(cfg.Colors(), sel),
		widget.NewSeparator(),
		NewTemplateSelect(cfg.Templates, board, prefs),
		layout.NewSpacer(),
		tb,
	)
}
