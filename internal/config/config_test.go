package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paintboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, state.DefaultBounds(), cfg.Bounds())
	assert.Equal(t, state.Palette, cfg.Colors())
	_, ok := cfg.Template("duck")
	assert.True(t, ok)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
palette = ["#000", "#ff0000"]

[surface]
width = 800
stroke_width = 3

[share]
enabled = true
port = 9000

[[templates]]
id = "cat"
label = "Cat"
path = "cat.png"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800.0, cfg.Surface.Width)
	assert.Equal(t, float64(state.DefaultHeight), cfg.Surface.Height)
	assert.Equal(t, 3.0, cfg.Surface.StrokeWidth)
	assert.Equal(t, []state.Color{state.Black, state.Red}, cfg.Colors())
	assert.True(t, cfg.Share.Enabled)
	assert.Equal(t, 9000, cfg.Share.Port)
	require.Len(t, cfg.Templates, 1)
	assert.Equal(t, "cat", cfg.Templates[0].ID)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"size":     "[surface]\nwidth = -1\n",
		"stroke":   "[surface]\nstroke_width = 0\n",
		"palette":  "palette = [\"mauve\"]\n",
		"template": "[[templates]]\nid = \"a\"\n[[templates]]\nid = \"a\"\n",
		"port":     "[share]\nport = 70000\n",
		"syntax":   "[surface\n",
	}
	for name, body := range tests {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, name)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Palette = nil
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Surface.DeadZone = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Templates = append(cfg.Templates, Template{Label: "no id"})
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
