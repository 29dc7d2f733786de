package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	tests := []struct {
		mode      Mode
		fill      float64
		icons     bool
		icon      float64
		border    float64
		weight    int
		highlight float64
	}{
		{Icons, 0.28, true, 1.0, 0.70, 1, 0.53},
		{Solid, 0.75, true, 0.90, 0.60, 1, 1.0},
		{Outline, 0, false, 0, 0.90, 2, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := NewEngine(tt.mode, DefaultOptions())
			p := e.Params()
			assert.Equal(t, tt.fill, p.FillOpacity)
			assert.Equal(t, tt.icons, p.IconsVisible)
			assert.Equal(t, tt.icon, p.IconOpacity)
			assert.Equal(t, tt.border, p.BorderOpacity)
			assert.Equal(t, tt.weight, p.BorderWeight)
			assert.InDelta(t, tt.highlight, e.HighlightOpacity(), 1e-12)
			assert.Greater(t, e.HighlightOpacity(), p.FillOpacity)
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Icons, Solid, Outline} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode(" OUTLINE ")
	require.NoError(t, err)
	assert.Equal(t, Outline, got)

	_, err = ParseMode("neon")
	assert.Error(t, err)

	assert.Equal(t, Solid, Icons.Next())
	assert.Equal(t, Icons, Outline.Next())
}

type fill struct {
	key           string
	base, current float64
}

func (f *fill) Key() string { return f.key }
func (f *fill) SetOpacity(base, current float64) { f.base, f.current = base, current }

func TestApply(t *testing.T) {
	e := NewEngine(Icons, DefaultOptions())
	fills := []*fill{{key: "A"}, {key: "B"}, {key: "C"}}

	Apply(e, fills, "B", true)
	assert.Equal(t, 0.28, fills[0].current)
	assert.InDelta(t, 0.53, fills[1].current, 1e-12)
	assert.Equal(t, 0.28, fills[1].base)

	e.SetMode(Solid)
	Apply(e, fills, "C", true)
	assert.Equal(t, 0.75, fills[1].current, "previous highlight cleared")
	assert.Equal(t, 1.0, fills[2].current)

	assert.False(t, e.SetMode(Solid))
	Apply(e, fills, "", false)
	for _, f := range fills {
		assert.Equal(t, f.base, f.current)
	}
}
