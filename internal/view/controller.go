package view

import (
	"log/slog"
	"math"
	"time"

	"choromap/internal/geom"
)

type Kind int

const (
	NationView Kind = iota
	Transitioning
	DetailView
)

func (k Kind) String() string {
	switch k {
	case Transitioning:
		return "transitioning"
	case DetailView:
		return "detail"
	}
	return "nation"
}

// Pose is where the camera sits and what it looks at.
type Pose struct {
	Position geom.Vec3
	Target   geom.Vec3
}

type Options struct {
	NationPadding  float64
	DetailPadding  float64
	MinDistance    float64
	MaxTiltDeg     float64
	NationDuration time.Duration
	DetailDuration time.Duration
}

func DefaultOptions() Options {
	return Options{
		NationPadding:  1.01,
		DetailPadding:  1.05,
		MinDistance:    0.05,
		MaxTiltDeg:     21.6,
		NationDuration: 700 * time.Millisecond,
		DetailDuration: 900 * time.Millisecond,
	}
}

func EaseOutQuad(t float64) float64 { return t * (2 - t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

type tween struct {
	from, to Pose
	elapsed  time.Duration
	dur      time.Duration
	ease     func(float64) float64
}

// Controller moves the camera between the nation view and a region's
// detail view. Requests never block: Tick advances the active tween and a
// new request replaces it, starting from wherever the camera is.
type Controller struct {
	cam    *Camera
	opts   Options
	state  Kind
	target Kind
	key    string
	tween  *tween
	locked bool
}

func NewController(cam *Camera, opts Options) *Controller {
	return &Controller{cam: cam, opts: opts, state: NationView, target: NationView, locked: true}
}

func (c *Controller) Camera() *Camera { return c.cam }
func (c *Controller) State() Kind { return c.state }

// Target is the view the controller is in or heading to, with the region
// key for the detail view.
func (c *Controller) Target() (Kind, string) { return c.target, c.key }

// TiltLocked is true in the nation view, where the camera looks straight
// down and cannot orbit.
func (c *Controller) TiltLocked() bool { return c.locked }

func (c *Controller) Busy() bool { return c.tween != nil }

func (c *Controller) maxTilt() float64 { return c.opts.MaxTiltDeg * math.Pi / 180 }

// fitDistance is the distance at which the largest box dimension fills the
// vertical field of view, times pad. It never returns less than
// MinDistance, NaN or Inf.
func (c *Controller) fitDistance(b geom.Box3, pad float64) float64 {
	s := b.Size()
	maxDim := max(s.X, s.Y, max(1e-4, s.Z))
	d := maxDim / (2 * c.cam.halfTan()) * pad
	if math.IsNaN(d) || math.IsInf(d, 0) || d < c.opts.MinDistance {
		return c.opts.MinDistance
	}
	return d
}

func center(b geom.Box3) geom.Vec3 {
	ctr := b.Center()
	if !geom.Finite(ctr) {
		return geom.Vec3{}
	}
	return ctr
}

func (c *Controller) NationPose(b geom.Box3) Pose {
	ctr := center(b)
	d := c.fitDistance(b, c.opts.NationPadding)
	return Pose{Position: ctr.Add(geom.Vec3{Z: d}), Target: ctr}
}

// DetailPose starts from a 45° view from the south and clamps it into the
// allowed tilt range at the same distance.
func (c *Controller) DetailPose(b geom.Box3) Pose {
	ctr := center(b)
	d := c.fitDistance(b, c.opts.DetailPadding)
	v := clampTilt(geom.Vec3{Y: -d, Z: d}, c.maxTilt())
	return Pose{Position: ctr.Add(v), Target: ctr}
}

func clampTilt(v geom.Vec3, maxTilt float64) geom.Vec3 {
	dist := v.Norm()
	if dist == 0 {
		return v
	}
	tilt := math.Acos(math.Max(-1, math.Min(1, v.Z/dist)))
	if tilt <= maxTilt {
		return v
	}
	h := geom.Vec3{X: v.X, Y: v.Y}.Normalize()
	if h == (geom.Vec3{}) {
		h = geom.Vec3{Y: -1}
	}
	return h.Mul(dist * math.Sin(maxTilt)).Add(geom.Vec3{Z: dist * math.Cos(maxTilt)})
}

// FitNation frames b from straight above and locks the tilt.
func (c *Controller) FitNation(b geom.Box3, immediate bool) {
	c.target, c.key, c.locked = NationView, "", true
	c.start(c.NationPose(b), c.opts.NationDuration, EaseOutQuad, immediate)
}

// FlyToRegion frames one region's bounds and unlocks a limited tilt.
func (c *Controller) FlyToRegion(key string, b geom.Box3) {
	c.target, c.key, c.locked = DetailView, key, false
	c.start(c.DetailPose(b), c.opts.DetailDuration, EaseInOutQuad, false)
}

func (c *Controller) pose() Pose { return Pose{Position: c.cam.Position, Target: c.cam.Target} }

func (c *Controller) apply(p Pose) {
	c.cam.Position = p.Position
	c.cam.Target = p.Target
}

func (c *Controller) start(to Pose, dur time.Duration, ease func(float64) float64, immediate bool) {
	if immediate || dur <= 0 {
		c.apply(to)
		c.tween = nil
		c.state = c.target
		return
	}
	c.tween = &tween{from: c.pose(), to: to, dur: dur, ease: ease}
	c.state = Transitioning
	slog.Debug("camera transition", "to", c.target.String(), "region", c.key, "duration", dur)
}

// Tick advances the active tween by dt and reports whether the camera moved.
func (c *Controller) Tick(dt time.Duration) bool {
	tw := c.tween
	if tw == nil {
		return false
	}
	if dt > 0 {
		tw.elapsed += dt
	}
	a := min(1, float64(tw.elapsed)/float64(tw.dur))
	k := tw.ease(a)
	c.apply(Pose{
		Position: geom.Lerp(tw.from.Position, tw.to.Position, k),
		Target:   geom.Lerp(tw.from.Target, tw.to.Target, k),
	})
	if a >= 1 {
		c.tween = nil
		c.state = c.target
	}
	return true
}

// Resize updates the frame size. The nation view is re-fitted at once;
// a detail view keeps its framing.
func (c *Controller) Resize(w, h int, b geom.Box3) {
	c.cam.W, c.cam.H = max(w, 1), max(h, 1)
	if c.target == NationView {
		c.FitNation(b, true)
	}
}

// Zoom dollies toward the target by factor (>1 moves closer). It is
// ignored while a transition runs.
func (c *Controller) Zoom(factor float64) bool {
	if c.tween != nil || !(factor > 0) {
		return false
	}
	v := c.cam.Position.Sub(c.cam.Target)
	d := max(v.Norm()/factor, c.opts.MinDistance)
	dir := v.Normalize()
	if dir == (geom.Vec3{}) {
		dir = geom.Vec3{Z: 1}
	}
	c.cam.Position = c.cam.Target.Add(dir.Mul(d))
	return true
}

// Orbit rotates the detail view within the tilt range. The nation view
// is locked top-down.
func (c *Controller) Orbit(dAz, dTilt float64) bool {
	if c.locked || c.tween != nil {
		return false
	}
	c.cam.Orbit(dAz, dTilt, c.maxTilt())
	return true
}
