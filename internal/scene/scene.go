// Package scene wires the region meshes, icon layer, camera controller,
// interaction state and style engine into one per-frame pipeline.
package scene

import (
	"log/slog"
	"math"
	"time"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/icon"
	"choromap/internal/interact"
	"choromap/internal/meta"
	"choromap/internal/style"
	"choromap/internal/view"

	"github.com/lucasb-eyer/go-colorful"
)

// Input is the pointer position in frame pixels.
type Input = interact.Pointer

// Fill is one region's filled surface.
type Fill struct {
	Region  geom.Region
	Color   colorful.Color
	Mesh    geom.Mesh
	Bound   geom.Box3
	Base    float64
	Opacity float64
}

func (f *Fill) Key() string { return f.Region.Key }

func (f *Fill) SetOpacity(base, current float64) {
	f.Base, f.Opacity = base, current
}

type Scene struct {
	cfg     *config.Config
	assets  Assets
	builder geom.Builder

	regions []geom.Region
	fills   []*Fill
	byKey   map[string]*Fill
	borders []geom.Segment
	layer   *icon.Layer

	ctrl  *view.Controller
	coord *interact.Coordinator
	style *style.Engine

	background colorful.Color
	border     colorful.Color
}

// New builds the scene for regions. It starts idle with every cluster on
// and the camera framing the whole map.
func New(regions []geom.Region, cfg *config.Config, assets Assets) *Scene {
	mode, err := style.ParseMode(cfg.Style.Mode)
	if err != nil {
		slog.Warn("unknown style mode, using icons", "mode", cfg.Style.Mode)
		mode = style.Icons
	}
	p := cfg.Projection
	s := &Scene{
		cfg:     cfg,
		assets:  assets,
		builder: geom.Builder{Projector: geom.Projector{OriginLon: p.OriginLon, OriginLat: p.OriginLat, ScaleX: p.ScaleX, ScaleY: p.ScaleY}},
		byKey:   map[string]*Fill{},
		layer: icon.NewLayer(icon.Options{
			Padding:       cfg.Icons.Padding,
			GrowScale:     cfg.Icons.GrowScale,
			GrowRate:      cfg.Icons.GrowRate,
			ExtrudeRatio:  cfg.Icons.ExtrudeRatio,
			LODDistance:   cfg.Icons.LODDistance,
			LODHysteresis: cfg.Icons.LODHysteresis,
		}),
		style: style.NewEngine(mode, style.Options{
			WeakOpacity:    cfg.Style.WeakOpacity,
			StrongOpacity:  cfg.Style.StrongOpacity,
			HighlightBoost: cfg.Style.HighlightBoost,
		}),
		background: config.HexOr(cfg.Style.Background, "#ffffff"),
		border:     config.HexOr(cfg.Style.Border, "#777777"),
	}
	s.ctrl = view.NewController(view.NewCamera(cfg.Camera.FovDeg, cfg.Camera.Near), view.Options{
		NationPadding:  cfg.Camera.NationPadding,
		DetailPadding:  cfg.Camera.DetailPadding,
		MinDistance:    cfg.Camera.MinDistance,
		MaxTiltDeg:     cfg.Camera.MaxTiltDeg,
		NationDuration: cfg.Camera.NationDuration.D(),
		DetailDuration: cfg.Camera.DetailDuration.D(),
	})

	geom.AssignKeys(regions)
	clusterOf := map[string]int{}
	var clusters []int
	for _, r := range regions {
		s.add(r)
		clusterOf[r.Key] = r.Cluster
		clusters = append(clusters, r.Cluster)
	}
	s.coord = interact.NewCoordinator(s, clusterOf, clusters)

	s.ctrl.FitNation(s.contentBounds(), true)
	s.applyStyle()
	slog.Info("scene built", "regions", len(s.fills), "borders", len(s.borders), "mode", mode.String())
	return s
}

func (s *Scene) add(r geom.Region) {
	lon, lat := s.builder.Projector.RegionAnchor(r)
	anchor := s.builder.Projector.Project(lon, lat, 0)
	g := s.builder.Build(r, anchor)

	f := &Fill{Region: r, Color: s.cfg.Color(r.Cluster), Mesh: g.Fill, Bound: g.Fill.Bound()}
	s.regions = append(s.regions, r)
	s.fills = append(s.fills, f)
	s.byKey[r.Key] = f
	s.borders = append(s.borders, g.Border...)
	s.layer.Add(r.Key, r.Cluster, anchor, g.Mask, s.assets.texture(r.Cluster), f.Color)
}

// Add inserts a region into a running scene, for example one pasted as
// WKT. Its key is made unique against the existing regions.
func (s *Scene) Add(r geom.Region) string {
	all := append(append([]geom.Region(nil), s.regions...), r)
	geom.AssignKeys(all)
	r = all[len(all)-1]
	s.add(r)
	s.coord.Register(r.Key, r.Cluster)
	if k, _ := s.ctrl.Target(); k == view.NationView {
		s.ctrl.FitNation(s.contentBounds(), false)
	}
	s.applyStyle()
	slog.Info("region added", "key", r.Key, "cluster", r.Cluster)
	return r.Key
}

// Tick advances one frame: camera tween, hover pick, style, icon grow and
// LOD. It reports whether anything visible may have changed.
func (s *Scene) Tick(dt time.Duration, in Input) bool {
	moved := s.ctrl.Tick(dt)
	changed := s.coord.Tick(in)
	s.applyStyle()
	key, ok := s.coord.State().Highlight()
	s.layer.Grow(key, ok, dt)
	s.layer.UpdateLOD(s.ctrl.Camera().Distance())
	return moved || changed || s.growing()
}

// growing reports whether any icon is still easing toward its scale.
func (s *Scene) growing() bool {
	key, ok := s.coord.State().Highlight()
	for _, n := range s.layer.Nodes() {
		want := 1.0
		if ok && n.Key == key {
			want = s.cfg.Icons.GrowScale
		}
		if n.Scale != want {
			return true
		}
	}
	return false
}

// Click picks under the pointer; a hit locks the region and flies to it.
func (s *Scene) Click(in Input) {
	s.effect(s.coord.Click(in))
}

// Close leaves the detail view.
func (s *Scene) Close() {
	s.effect(s.coord.Close())
}

func (s *Scene) Toggle(cluster int) {
	s.effect(s.coord.Toggle(cluster))
}

func (s *Scene) SetAll(on bool) {
	s.effect(s.coord.SetAll(on))
}

func (s *Scene) SetMode(m style.Mode) {
	if s.style.SetMode(m) {
		slog.Debug("style mode", "mode", m.String())
		s.applyStyle()
	}
}

// Resize sets the frame size in pixels.
func (s *Scene) Resize(w, h int) {
	s.ctrl.Resize(w, h, s.contentBounds())
}

func (s *Scene) Zoom(factor float64) bool { return s.ctrl.Zoom(factor) }

// Orbit turns the detail view by the given angles in radians.
func (s *Scene) Orbit(dAz, dTilt float64) bool { return s.ctrl.Orbit(dAz, dTilt) }

func (s *Scene) effect(e interact.Effect) {
	switch e {
	case interact.EffectFlyTo:
		key := s.coord.State().Key
		if f, ok := s.byKey[key]; ok {
			s.ctrl.FlyToRegion(key, f.Bound)
		}
	case interact.EffectFitNation:
		s.ctrl.FitNation(s.contentBounds(), false)
	}
	s.applyStyle()
}

func (s *Scene) applyStyle() {
	key, ok := s.coord.State().Highlight()
	style.Apply(s.style, s.fills, key, ok)
}

// contentBounds covers the visible fills, all fills when none is visible,
// and the origin for an empty scene.
func (s *Scene) contentBounds() geom.Box3 {
	b := geom.EmptyBox()
	for _, f := range s.fills {
		if s.coord == nil || s.coord.Visible(f.Region.Cluster) {
			b = b.Union(f.Bound)
		}
	}
	if b.IsEmpty() {
		for _, f := range s.fills {
			b = b.Union(f.Bound)
		}
	}
	if b.IsEmpty() {
		b = b.Extend(geom.Vec3{})
	}
	return b
}

// Pick returns the nearest visible fill under frame pixel (x, y).
func (s *Scene) Pick(x, y float64) (string, bool) {
	cam := s.ctrl.Camera()
	o, d := cam.Ray(x, y)
	best, key := math.Inf(1), ""
	for _, f := range s.fills {
		if !s.coord.Visible(f.Region.Cluster) {
			continue
		}
		for i := 0; i < f.Mesh.Len(); i++ {
			a, b, c := f.Mesh.Triangle(i)
			if t, ok := view.IntersectTriangle(o, d, a, b, c); ok && t < best {
				best, key = t, f.Region.Key
			}
		}
	}
	return key, key != ""
}

func (s *Scene) State() interact.State { return s.coord.State() }
func (s *Scene) Filter() interact.Filter { return s.coord.Filter() }
func (s *Scene) Mode() style.Mode { return s.style.Mode() }
func (s *Scene) Camera() *view.Camera { return s.ctrl.Camera() }
func (s *Scene) View() view.Kind { return s.ctrl.State() }
func (s *Scene) Regions() []geom.Region { return s.regions }
func (s *Scene) Background() colorful.Color {
	return s.background
}

// Opacity is the current fill opacity of a region.
func (s *Scene) Opacity(key string) (float64, bool) {
	f, ok := s.byKey[key]
	if !ok {
		return 0, false
	}
	return f.Opacity, true
}

func (s *Scene) FillVisible(key string) bool {
	f, ok := s.byKey[key]
	return ok && s.coord.Visible(f.Region.Cluster)
}

// IconVisible requires the fill to be visible and the mode to show icons.
func (s *Scene) IconVisible(key string) bool {
	return s.FillVisible(key) && s.style.Params().IconsVisible
}

// IconScale is the current grow factor of a region's icon.
func (s *Scene) IconScale(key string) float64 {
	if n, ok := s.layer.Node(key); ok {
		return n.Scale
	}
	return 0
}

// IconVariant is the level of detail a region's icon is drawn with.
func (s *Scene) IconVariant(key string) icon.Variant {
	if n, ok := s.layer.Node(key); ok {
		return n.LOD.Variant()
	}
	return icon.Flat
}

// Tooltip is "<name> · <cluster label>" for the hovered region.
func (s *Scene) Tooltip() (string, bool) {
	st := s.coord.State()
	if st.Kind != interact.Hovering {
		return "", false
	}
	f, ok := s.byKey[st.Key]
	if !ok {
		return st.Key, true
	}
	name := f.Region.Name
	if name == "" {
		name = f.Region.Key
	}
	return name + " · " + s.cfg.Label(f.Region.Cluster), true
}

// Detail describes the locked region.
func (s *Scene) Detail() (meta.Detail, bool) {
	st := s.coord.State()
	if st.Kind != interact.Locked {
		return meta.Detail{}, false
	}
	f, ok := s.byKey[st.Key]
	if !ok {
		return meta.Detail{}, false
	}
	r := f.Region
	return meta.BuildDetail(r.Key, r.Name, r.Cluster, s.cfg.Label(r.Cluster), s.cfg.ColorHex(r.Cluster), s.assets.Metrics, s.assets.Aliases), true
}

// PointerLonLat maps a frame pixel to the map plane.
func (s *Scene) PointerLonLat(x, y float64) (lon, lat float64, ok bool) {
	p, ok := s.ctrl.Camera().PlaneHit(x, y, 0)
	if !ok {
		return 0, 0, false
	}
	lon, lat = s.builder.Projector.Unproject(p.X, p.Y)
	return lon, lat, true
}
