// Package export reads and writes boards: JSON board files for save/load
// and PDF, PNG and SVG renderings of the strokes.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/google/uuid"

	"PaintBoard/internal/state"
)

// Board is a saved drawing: the surface it was drawn on, the template under
// it and its strokes in commit order.
type Board struct {
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Template string         `json:"template,omitempty"`
	Strokes  []state.Stroke `json:"strokes"`
}

// NewBoard captures the committed strokes of c.
func NewBoard(c *state.Canvas, template string) Board {
	b := c.Bounds()
	return Board{Width: b.Width, Height: b.Height, Template: template, Strokes: c.Strokes()}
}

func Save(w io.Writer, b Board) error {
	if b.Strokes == nil {
		b.Strokes = []state.Stroke{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return nil
}

// Load decodes a board file. Every stroke path and color is validated while
// decoding, and every point must lie on the board's surface. Strokes saved
// without an id get a fresh one.
func Load(r io.Reader) (Board, error) {
	var b Board
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Board{}, fmt.Errorf("decode board: %w", err)
	}
	if !(b.Width > 0 && b.Height > 0) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return Board{}, fmt.Errorf("decode board: bad surface %gx%g", b.Width, b.Height)
	}
	surface := state.Bounds{Width: b.Width, Height: b.Height}
	for i, s := range b.Strokes {
		if len(s.Path) == 0 {
			return Board{}, fmt.Errorf("decode board: stroke %d: %w", i, state.ErrInvalidPath)
		}
		for _, p := range s.Path.Points() {
			if !surface.Contains(p) {
				return Board{}, fmt.Errorf("decode board: stroke %d: %w: point %g,%g off the %gx%g surface",
					i, state.ErrInvalidPath, p.X, p.Y, b.Width, b.Height)
			}
		}
		if s.ID == "" {
			b.Strokes[i].ID = uuid.NewString()
		}
		if s.Width <= 0 {
			b.Strokes[i].Width = state.DefaultStrokeWidth
		}
	}
	return b, nil
}

// Fits reports whether the board's surface fits inside bounds, so every
// stroke lands on the canvas it is loaded into.
func (b Board) Fits(bounds state.Bounds) bool {
	return b.Width <= bounds.Width && b.Height <= bounds.Height
}

func SaveFile(path string, b Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, b); err != nil {
		f.Close()
		return err
	}
	log.Printf("[export] saved %d strokes to %s", len(b.Strokes), path)
	return f.Close()
}

func LoadFile(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, err
	}
	defer f.Close()
	b, err := Load(f)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[export] loaded %d strokes from %s", len(b.Strokes), path)
	return b, nil
}
