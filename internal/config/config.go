// Package config loads PaintBoard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"PaintBoard/internal/state"
)

type Template struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Path  string `toml:"path"`
}

type Surface struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	DeadZone    float64 `toml:"dead_zone"`
	StrokeWidth float64 `toml:"stroke_width"`
}

type Share struct {
	Enabled   bool   `toml:"enabled"`
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Name      string `toml:"name"`
}

type Config struct {
	Surface   Surface    `toml:"surface"`
	Palette   []string   `toml:"palette"`
	Templates []Template `toml:"templates"`
	Share     Share      `toml:"share"`
}

func Default() Config {
	palette := make([]string, len(state.Palette))
	for i, c := range state.Palette {
		palette[i] = string(c)
	}
	return Config{
		Surface: Surface{
			Width:       state.DefaultWidth,
			Height:      state.DefaultHeight,
			DeadZone:    state.DefaultDeadZone,
			StrokeWidth: state.DefaultStrokeWidth,
		},
		Palette:   palette,
		Templates: defaultTemplates(),
		Share:     Share{Port: 8888, Advertise: true, Name: "PaintBoard"},
	}
}

func defaultTemplates() []Template {
	return []Template{
		{ID: "duck", Label: "Duck", Path: "assets/paint/duck.jpg"},
		{ID: "mario", Label: "Mario", Path: "assets/paint/mario.jpg"},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	// lists in the file replace the defaults rather than extend them
	cfg.Palette = nil
	cfg.Templates = nil
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Palette == nil {
		cfg.Palette = Default().Palette
	}
	if len(cfg.Templates) == 0 {
		cfg.Templates = defaultTemplates()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface must be positive, got %gx%g", c.Surface.Width, c.Surface.Height))
	}
	if c.Surface.DeadZone < 0 {
		errs = append(errs, fmt.Errorf("dead_zone must not be negative, got %g", c.Surface.DeadZone))
	}
	if c.Surface.StrokeWidth <= 0 {
		errs = append(errs, fmt.Errorf("stroke_width must be positive, got %g", c.Surface.StrokeWidth))
	}
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette is empty"))
	}
	for _, p := range c.Palette {
		if _, err := state.ParseColor(p); err != nil {
			errs = append(errs, fmt.Errorf("palette: %w", err))
		}
	}
	seen := map[string]bool{}
	for _, t := range c.Templates {
		if t.ID == "" {
			errs = append(errs, errors.New("template without id"))
		} else if seen[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate template %q", t.ID))
		}
		seen[t.ID] = true
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		errs = append(errs, fmt.Errorf("share.port out of range: %d", c.Share.Port))
	}
	return errors.Join(errs...)
}

func (c Config) Bounds() state.Bounds {
	return state.Bounds{Width: c.Surface.Width, Height: c.Surface.Height, DeadZone: c.Surface.DeadZone}
}

// Colors returns the palette normalized. Invalid entries are skipped; Validate
// reports them.
func (c Config) Colors() []state.Color {
	colors := make([]state.Color, 0, len(c.Palette))
	for _, p := range c.Palette {
		if col, err := state.ParseColor(p); err == nil {
			colors = append(colors, col)
		}
	}
	return colors
}

func (c Config) Template(id string) (Template, bool) {
	for _, t := range c.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
