package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	p := Path{move(50, 50), line(60.5, 60), line(70, 80.25)}
	assert.Equal(t, "M 50 50 L 60.5 60 L 70 80.25", p.String())
	assert.Equal(t, "", Path(nil).String())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		d    string
		want Path
	}{
		{"M 50 50", Path{move(50, 50)}},
		{"M 50 50 L 60 60 L 70 80", Path{move(50, 50), line(60, 60), line(70, 80)}},
		{"M 1,2 L 3,4 5,6", Path{move(1, 2), line(3, 4), line(5, 6)}},
		{"M 1 2 3 4", Path{move(1, 2), line(3, 4)}},
		{"  M 0.5 1e1  ", Path{move(0.5, 10)}},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.d)
		require.NoError(t, err, tt.d)
		assert.Equal(t, tt.want, got, tt.d)
	}

	bad := []string{"", "L 1 2", "M 1", "M 1 2 M 3 4", "M a b", "1 2", "M 1 2 L 3", "M NaN 1", "M 1 Inf", "M 1 2 L -Inf 3"}
	for _, d := range bad {
		_, err := ParsePath(d)
		assert.ErrorIs(t, err, ErrInvalidPath, d)
	}
}

func TestPathRoundTrip(t *testing.T) {
	p := Path{move(12.75, 400), line(13, 401.125), line(0, 10)}
	got, err := ParsePath(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestStrokeJSON(t *testing.T) {
	s := newStroke(Path{move(50, 50), line(60, 60)}, Red, 5)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"path":"M 50 50 L 60 60"`)
	assert.Contains(t, string(b), `"color":"#FF0000"`)

	var got Stroke
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, s.Path, got.Path)
	assert.Equal(t, s.Color, got.Color)
	assert.Equal(t, s.ID, got.ID)

	err = json.Unmarshal([]byte(`{"path":"L 1 2","color":"#000000"}`), &got)
	assert.ErrorIs(t, err, ErrInvalidPath)
	err = json.Unmarshal([]byte(`{"path":"M 1 2","color":"chartreuse"}`), &got)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestPathStateExtend(t *testing.T) {
	var s PathState
	assert.False(t, s.IsActive())
	assert.Nil(t, s.Path())

	s = s.extend(Pt(1, 2))
	assert.Equal(t, Path{move(1, 2)}, s.Path())
	s = s.extend(Pt(3, 4))
	assert.Equal(t, Path{move(1, 2), line(3, 4)}, s.Path())
}
