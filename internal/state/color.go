package state

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid color")

// Color is a stroke color as a normalized "#RRGGBB" string.
type Color string

const (
	Black   Color = "#000000"
	Red     Color = "#FF0000"
	Green   Color = "#00FF00"
	Blue    Color = "#0000FF"
	Yellow  Color = "#FFFF00"
	Magenta Color = "#FF00FF"
	Cyan    Color = "#00FFFF"
	White   Color = "#FFFFFF"
)

// Palette is the fixed set of colors offered by the color selector.
var Palette = []Color{Black, Red, Green, Blue, Yellow, Magenta, Cyan, White}

// ParseColor accepts "#rgb" or "#rrggbb" in any case, with or without the
// leading '#', and returns the normalized form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(strings.ToUpper(c.Hex())), nil
}

// NRGBA converts c for drawing. Unparsable values draw black.
func (c Color) NRGBA() color.NRGBA {
	cf, err := colorful.Hex(strings.ToLower(string(c)))
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Store persists small string preferences. fyne.Preferences satisfies it.
type Store interface {
	String(key string) string
	SetString(key string, value string)
}

const colorKey = "paint.color"

// Selector holds the globally selected stroke color. Path capture reads it
// when a stroke is released.
type Selector struct {
	mu      sync.RWMutex
	current Color
	store   Store
}

// NewSelector restores the last persisted color from store, if any, and
// falls back to black. store may be nil.
func NewSelector(store Store) *Selector {
	s := &Selector{current: Black, store: store}
	if store != nil {
		if c, err := ParseColor(store.String(colorKey)); err == nil {
			s.current = c
		}
	}
	return s
}

func (s *Selector) Current() Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set changes the selected color and persists it.
func (s *Selector) Set(c Color) error {
	parsed, err := ParseColor(string(c))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = parsed
	s.mu.Unlock()
	if s.store != nil {
		s.store.SetString(colorKey, string(parsed))
	}
	return nil
}
