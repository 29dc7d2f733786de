package scene

import (
	"image"
	"image/color"
	"testing"
	"time"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/icon"
	"choromap/internal/interact"
	"choromap/internal/meta"
	"choromap/internal/raster"
	"choromap/internal/style"
	"choromap/internal/view"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func rect(lon0, lat0, lon1, lat1 float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{{lon0, lat0}, {lon1, lat0}, {lon1, lat1}, {lon0, lat1}, {lon0, lat0}}}}
}

// threeRegions lays A, B and C side by side east of 19°E.
func threeRegions() []geom.Region {
	return []geom.Region{
		{Key: "A", Name: "A", Cluster: 0, Boundary: rect(19.0, 47.0, 19.5, 47.25)},
		{Key: "B", Name: "B", Cluster: 1, Boundary: rect(19.5, 47.0, 20.0, 47.25)},
		{Key: "C", Name: "C", Cluster: 2, Boundary: rect(20.0, 47.0, 20.5, 47.25)},
	}
}

func newScene(t *testing.T, assets Assets) *Scene {
	t.Helper()
	s := New(threeRegions(), config.DefaultConfig(), assets)
	s.Resize(120, 60)
	return s
}

// pointerAt returns the frame pixel showing lon/lat on the fill plane.
func pointerAt(t *testing.T, s *Scene, lon, lat float64) Input {
	t.Helper()
	p := s.builder.Projector.Project(lon, lat, geom.FillZ)
	x, y, _, ok := s.Camera().Project(p)
	require.True(t, ok)
	return Input{X: x, Y: y, Has: true}
}

// settle ticks until no camera transition is running.
func settle(t *testing.T, s *Scene, in Input) {
	t.Helper()
	for i := 0; i < 500; i++ {
		s.Tick(frame, in)
		if s.View() != view.Transitioning {
			return
		}
	}
	t.Fatal("camera never settled")
}

func TestNewStartsIdleInNationView(t *testing.T) {
	s := newScene(t, Assets{})

	assert.Equal(t, interact.State{}, s.State())
	assert.Equal(t, view.NationView, s.View())
	assert.Equal(t, style.Icons, s.Mode())
	for _, key := range []string{"A", "B", "C"} {
		op, ok := s.Opacity(key)
		require.True(t, ok)
		assert.InDelta(t, 0.28, op, 1e-12, key)
		assert.True(t, s.FillVisible(key))
		assert.True(t, s.IconVisible(key))
	}
	_, ok := s.Opacity("missing")
	assert.False(t, ok)
}

func TestHoverHighlightsAndGrows(t *testing.T) {
	s := newScene(t, Assets{})
	in := pointerAt(t, s, 19.75, 47.125)

	assert.True(t, s.Tick(frame, in))
	assert.Equal(t, interact.State{Kind: interact.Hovering, Key: "B"}, s.State())

	hi, _ := s.Opacity("B")
	lo, _ := s.Opacity("A")
	assert.InDelta(t, 0.53, hi, 1e-12)
	assert.InDelta(t, 0.28, lo, 1e-12)

	tip, ok := s.Tooltip()
	require.True(t, ok)
	assert.Equal(t, "B · C1", tip)

	for i := 0; i < 200; i++ {
		s.Tick(frame, in)
	}
	assert.Equal(t, 1.35, s.IconScale("B"))
	assert.Equal(t, 1.0, s.IconScale("A"))

	s.Tick(frame, Input{})
	assert.Equal(t, interact.State{}, s.State())
	_, ok = s.Tooltip()
	assert.False(t, ok)
}

func TestClickFliesAndEscapeRestores(t *testing.T) {
	s := newScene(t, Assets{})
	start := s.Camera().Position
	d0 := s.Camera().Distance()

	in := pointerAt(t, s, 19.75, 47.125)
	s.Click(in)
	assert.Equal(t, interact.State{Kind: interact.Locked, Key: "B"}, s.State())
	assert.Equal(t, view.Transitioning, s.View())
	hi, _ := s.Opacity("B")
	assert.InDelta(t, 0.53, hi, 1e-12)

	settle(t, s, in)
	assert.Equal(t, view.DetailView, s.View())
	assert.Less(t, s.Camera().Distance(), d0)
	assert.Equal(t, icon.Volumetric, s.IconVariant("B"))
	assert.InDelta(t, 1.35, s.IconScale("B"), 0.01)
	assert.Equal(t, interact.Locked, s.State().Kind, "hover does not steal the lock")

	_, ok := s.Tooltip()
	assert.False(t, ok)
	d, ok := s.Detail()
	require.True(t, ok)
	assert.Equal(t, "B", d.Name)
	assert.Equal(t, "C1", d.ClusterLabel)
	assert.Equal(t, "#bdbdbd", d.Color)
	assert.Equal(t, []string{"–"}, d.Features)

	s.Close()
	assert.Equal(t, interact.State{}, s.State())
	settle(t, s, Input{})
	assert.Equal(t, view.NationView, s.View())
	assert.InDelta(t, d0, s.Camera().Distance(), 1e-9)
	assert.InDelta(t, start.X, s.Camera().Position.X, 1e-9)
	assert.InDelta(t, start.Y, s.Camera().Position.Y, 1e-9)
	assert.Equal(t, icon.Flat, s.IconVariant("B"))

	_, ok = s.Detail()
	assert.False(t, ok)
}

func TestClickMissAndPick(t *testing.T) {
	s := newScene(t, Assets{})

	s.Click(Input{X: 0, Y: 0, Has: true})
	assert.Equal(t, interact.State{}, s.State())
	assert.Equal(t, view.NationView, s.View())

	in := pointerAt(t, s, 20.25, 47.1)
	key, ok := s.Pick(in.X, in.Y)
	require.True(t, ok)
	assert.Equal(t, "C", key)

	s.Toggle(2)
	_, ok = s.Pick(in.X, in.Y)
	assert.False(t, ok, "hidden fills are not pickable")
}

func TestFilterUnlocksHiddenRegion(t *testing.T) {
	s := newScene(t, Assets{})
	s.Click(pointerAt(t, s, 19.75, 47.125))
	require.Equal(t, interact.Locked, s.State().Kind)

	s.Toggle(0)
	assert.Equal(t, interact.Locked, s.State().Kind)
	assert.False(t, s.FillVisible("A"))

	s.Toggle(1)
	assert.Equal(t, interact.State{}, s.State())
	assert.Equal(t, view.Transitioning, s.View())
	k, _ := s.ctrl.Target()
	assert.Equal(t, view.NationView, k)

	s.SetAll(true)
	assert.True(t, s.FillVisible("A"))
	assert.True(t, s.FillVisible("B"))
}

func TestModes(t *testing.T) {
	s := newScene(t, Assets{})

	s.SetMode(style.Solid)
	op, _ := s.Opacity("A")
	assert.InDelta(t, 0.75, op, 1e-12)

	s.SetMode(style.Outline)
	op, _ = s.Opacity("A")
	assert.Equal(t, 0.0, op)
	assert.False(t, s.IconVisible("A"))
	assert.True(t, s.FillVisible("A"))
}

func TestDetailWithMetrics(t *testing.T) {
	score := 0.5
	s := newScene(t, Assets{
		Metrics: meta.Metrics{"B": {Score: &score, Features: []string{"road_density"}}},
		Aliases: meta.Aliases{},
	})
	s.Click(pointerAt(t, s, 19.75, 47.125))

	d, ok := s.Detail()
	require.True(t, ok)
	require.NotNil(t, d.Score)
	assert.Equal(t, 0.5, *d.Score)
	assert.InDelta(t, 0.75, d.Bar, 1e-12)
	assert.Equal(t, []string{"road density"}, d.Features)
}

func TestRender(t *testing.T) {
	s := New(threeRegions(), config.DefaultConfig(), Assets{})
	f := raster.NewFrame(120, 60, colorful.Color{})
	s.Render(f)

	assert.Equal(t, 120, s.Camera().W)
	bg := s.Background()
	assert.Equal(t, bg, f.At(0, 0), "outside the map stays background")

	in := pointerAt(t, s, 19.25, 47.05)
	assert.NotEqual(t, bg, f.At(int(in.X), int(in.Y)), "fill drawn")

	s.SetMode(style.Outline)
	s.Render(f)
	assert.Equal(t, bg, f.At(int(in.X), int(in.Y)), "outline draws no fill")
	ink := 0
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if _, ok := f.InkAt(x, y); ok {
				ink++
			}
		}
	}
	assert.Positive(t, ink)
}

func TestRenderClipsIconsToRegion(t *testing.T) {
	tex := icon.Placeholder()
	s := New(threeRegions(), config.DefaultConfig(), Assets{Textures: map[int]*icon.Texture{0: tex, 1: tex, 2: tex}})
	f := raster.NewFrame(120, 60, colorful.Color{})
	s.Render(f)

	centre := pointerAt(t, s, 19.75, 47.125)
	assert.Equal(t, uint8(2), f.Stencil.At(int(centre.X), int(centre.Y)), "B carries the second reference")
	assert.Equal(t, uint8(0), f.Stencil.At(0, 0))
}

func TestAddRegion(t *testing.T) {
	s := newScene(t, Assets{})
	r, err := geom.ParseWKTRegion("B", 7, "POLYGON((20.5 47, 21 47, 21 47.25, 20.5 47.25, 20.5 47))")
	require.NoError(t, err)

	key := s.Add(r)
	assert.Equal(t, "B#2", key)
	assert.True(t, s.FillVisible(key))
	assert.Contains(t, s.Filter().IDs(), 7)
	assert.Len(t, s.Regions(), 4)

	settle(t, s, Input{})
	in := pointerAt(t, s, 20.75, 47.125)
	got, ok := s.Pick(in.X, in.Y)
	require.True(t, ok)
	assert.Equal(t, key, got)

	r, err = geom.ParseWKTRegion("B#2", 7, "POLYGON((21 47, 21.5 47, 21.5 47.25, 21 47.25, 21 47))")
	require.NoError(t, err)
	again := s.Add(r)
	assert.NotEqual(t, key, again, "a name that looks like a suffix still gets its own key")
	assert.Equal(t, "B#2#2", again)
	assert.Equal(t, "B#2", s.byKey[key].Region.Key)
}

// solidTexture is a one-pixel opaque texture of c.
func solidTexture(c color.Color) *icon.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	return icon.Decode(img)
}

func TestRenderKeepsIconsOutOfHoles(t *testing.T) {
	hole := orb.Ring{{19.3, 47.15}, {19.3, 47.35}, {19.7, 47.35}, {19.7, 47.15}, {19.3, 47.15}}
	donut := rect(19.0, 47.0, 20.0, 47.5)
	donut[0] = append(donut[0], hole)
	regions := []geom.Region{
		{Key: "D", Name: "D", Cluster: 0, Boundary: donut},
		{Key: "E", Name: "E", Cluster: 1, Boundary: rect(20.0, 47.0, 20.5, 47.5)},
	}
	blue := solidTexture(color.RGBA{B: 255, A: 255})
	s := New(regions, config.DefaultConfig(), Assets{Textures: map[int]*icon.Texture{0: blue, 1: blue}})
	f := raster.NewFrame(120, 60, colorful.Color{})
	s.Render(f)

	d, ok := s.layer.Node("D")
	require.True(t, ok)
	e, ok := s.layer.Node("E")
	require.True(t, ok)

	iconPixels := 0
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			isIcon := f.At(x, y).Clamped().Hex() == "#0000ff"
			ref := f.Stencil.At(x, y)
			if isIcon {
				iconPixels++
				assert.Contains(t, []uint8{d.Ref, e.Ref}, ref, "icon pixel %d,%d outside every mask", x, y)
			}
			lon, lat, ok := s.PointerLonLat(float64(x)+0.5, float64(y)+0.5)
			if ok && lon > 19.33 && lon < 19.67 && lat > 47.18 && lat < 47.32 {
				assert.False(t, isIcon, "icon pixel %d,%d inside the hole", x, y)
				assert.NotEqual(t, d.Ref, ref, "mask stamped inside the hole at %d,%d", x, y)
			}
		}
	}
	assert.Positive(t, iconPixels)

	centre := pointerAt(t, s, 19.5, 47.25)
	assert.Zero(t, f.Stencil.At(int(centre.X), int(centre.Y)))
}

func TestDegenerateRegionFollowsFilter(t *testing.T) {
	regions := append(threeRegions(), geom.Region{
		Key: "P", Name: "P", Cluster: 3,
		Boundary: orb.MultiPolygon{{{{19.2, 47.1}}}},
	})
	s := New(regions, config.DefaultConfig(), Assets{})
	s.Resize(120, 60)

	require.True(t, s.FillVisible("P"))
	assert.True(t, s.IconVisible("P"))
	op, ok := s.Opacity("P")
	require.True(t, ok)
	assert.Equal(t, 0.28, op)

	s.Toggle(3)
	assert.False(t, s.FillVisible("P"))
	assert.False(t, s.IconVisible("P"))
	assert.True(t, s.FillVisible("A"), "other clusters untouched")

	s.Toggle(3)
	assert.True(t, s.FillVisible("P"))

	assert.NotPanics(t, func() { s.Render(raster.NewFrame(120, 60, colorful.Color{})) })
}

func TestPointerLonLat(t *testing.T) {
	s := newScene(t, Assets{})
	in := pointerAt(t, s, 19.75, 47.125)
	lon, lat, ok := s.PointerLonLat(in.X, in.Y)
	require.True(t, ok)
	assert.InDelta(t, 19.75, lon, 0.01)
	assert.InDelta(t, 47.125, lat, 0.01)
}

func TestEmptyScene(t *testing.T) {
	s := New(nil, config.DefaultConfig(), Assets{})
	s.Resize(40, 20)
	assert.True(t, geom.Finite(s.Camera().Position))
	_, ok := s.Pick(20, 10)
	assert.False(t, ok)
	f := raster.NewFrame(40, 20, colorful.Color{})
	s.Render(f)
	assert.Equal(t, s.Background(), f.At(10, 10))
}
