package export

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// RenderFile writes b to path in the format named by its extension: .png,
// .svg or .pdf. The template, if set, is drawn beneath the strokes of PNG
// and SVG output. Nothing is left at path when rendering fails.
func RenderFile(path string, b Board, scale float64, template string) error {
	render, err := renderer(strings.ToLower(filepath.Ext(path)), b, scale, template)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return err
	}
	log.Printf("[export] wrote %d strokes to %s", len(b.Strokes), path)
	return nil
}

func renderer(ext string, b Board, scale float64, template string) (func(io.Writer) error, error) {
	switch ext {
	case ".pdf":
		return func(w io.Writer) error { return WritePDF(w, b) }, nil
	case ".svg":
		return func(w io.Writer) error {
			WriteSVG(w, b, template)
			return nil
		}, nil
	case ".png":
		return func(w io.Writer) error {
			if template == "" {
				return WritePNG(w, b, scale, nil)
			}
			img, err := LoadTemplate(template)
			if err != nil {
				return err
			}
			return WritePNG(w, b, scale, img)
		}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", ext)
}
