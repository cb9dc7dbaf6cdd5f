package ui

import (
	"fmt"
	"image"
	"io"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"PaintBoard/internal/export"
)

// exportScale is pixels per surface unit for PNG export.
const exportScale = 2

// FileActions saves, opens and exports the board through file dialogs.
type FileActions struct {
	board  *PaintWidget
	window fyne.Window
	status *Status
}

func NewFileActions(board *PaintWidget, window fyne.Window, status *Status) *FileActions {
	return &FileActions{board: board, window: window, status: status}
}

func (f *FileActions) Save() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, f.window)
			return
		}
		if w == nil {
			return
		}
		f.SaveTo(w)
	}, f.window)
	d.SetFileName("board.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (f *FileActions) Open() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, f.window)
			return
		}
		if r == nil {
			return
		}
		f.LoadFrom(r)
	}, f.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (f *FileActions) Export() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, f.window)
			return
		}
		if w == nil {
			return
		}
		f.ExportTo(w, w.URI().Extension())
	}, f.window)
	d.SetFileName("board.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".svg", ".pdf"}))
	d.Show()
}

func (f *FileActions) SaveTo(w io.WriteCloser) {
	defer closeLogged(w)
	b := export.NewBoard(f.board.Canvas(), f.board.Template())
	if err := export.Save(w, b); err != nil {
		log.Printf("[ui] save: %v", err)
		f.status.Set("Error saving file")
		return
	}
	f.status.Set(fmt.Sprintf("Saved %d strokes", len(b.Strokes)))
}

// LoadFrom replaces the board with a saved one. The template is kept.
func (f *FileActions) LoadFrom(r io.ReadCloser) {
	defer closeLogged(r)
	b, err := export.Load(r)
	if err != nil {
		log.Printf("[ui] load: %v", err)
		f.status.Set("Error parsing file - invalid format")
		return
	}
	if bounds := f.board.Canvas().Bounds(); !b.Fits(bounds) {
		log.Printf("[ui] load: board is %gx%g, canvas is %gx%g", b.Width, b.Height, bounds.Width, bounds.Height)
		f.status.Set(fmt.Sprintf("Board is %gx%g, too large for this canvas", b.Width, b.Height))
		return
	}
	f.board.Canvas().Load(b.Strokes)
	f.board.Refresh()
	f.status.Set(fmt.Sprintf("Loaded %d strokes", len(b.Strokes)))
}

// ExportTo renders the board in the format named by ext.
func (f *FileActions) ExportTo(w io.WriteCloser, ext string) {
	defer closeLogged(w)
	b := export.NewBoard(f.board.Canvas(), f.board.Template())

	var err error
	switch strings.ToLower(ext) {
	case ".pdf":
		err = export.WritePDF(w, b)
	case ".svg":
		export.WriteSVG(w, b, b.Template)
	default:
		var tmpl image.Image
		if b.Template != "" {
			if tmpl, err = export.LoadTemplate(b.Template); err != nil {
				log.Printf("[ui] exporting without template: %v", err)
			}
		}
		err = export.WritePNG(w, b, exportScale, tmpl)
	}
	if err != nil {
		log.Printf("[ui] export: %v", err)
		f.status.Set("Error exporting board")
		return
	}
	f.status.Set(fmt.Sprintf("Exported %d strokes", len(b.Strokes)))
}

func closeLogged(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("[ui] closing file: %v", err)
	}
}
