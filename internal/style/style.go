// Package style derives fill, icon and border treatment from the global
// presentation mode.
package style

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Icons Mode = iota
	Solid
	Outline
)

var modeNames = [...]string{"icons", "solid", "outline"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles icons → solid → outline → icons.
func (m Mode) Next() Mode { return (m + 1) % Mode(len(modeNames)) }

func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Mode(i), nil
		}
	}
	return Icons, fmt.Errorf("unknown style mode %q", s)
}

// Params is what a mode means for drawing.
type Params struct {
	FillOpacity   float64
	IconsVisible  bool
	IconOpacity   float64
	BorderOpacity float64
	BorderWeight  int
}

type Options struct {
	WeakOpacity    float64
	StrongOpacity  float64
	HighlightBoost float64
}

func DefaultOptions() Options {
	return Options{WeakOpacity: 0.28, StrongOpacity: 0.75, HighlightBoost: 0.25}
}

type Engine struct {
	mode Mode
	opts Options
}

func NewEngine(m Mode, opts Options) *Engine {
	return &Engine{mode: m, opts: opts}
}

func (e *Engine) Mode() Mode { return e.mode }

// SetMode reports whether the mode changed.
func (e *Engine) SetMode(m Mode) bool {
	if m == e.mode {
		return false
	}
	e.mode = m
	return true
}

func (e *Engine) Params() Params {
	switch e.mode {
	case Solid:
		return Params{FillOpacity: e.opts.StrongOpacity, IconsVisible: true, IconOpacity: 0.90, BorderOpacity: 0.60, BorderWeight: 1}
	case Outline:
		return Params{FillOpacity: 0, IconsVisible: false, IconOpacity: 0, BorderOpacity: 0.90, BorderWeight: 2}
	}
	return Params{FillOpacity: e.opts.WeakOpacity, IconsVisible: true, IconOpacity: 1.0, BorderOpacity: 0.70, BorderWeight: 1}
}

// HighlightOpacity always beats the base opacity of the current mode.
func (e *Engine) HighlightOpacity() float64 {
	return min(1, e.Params().FillOpacity+e.opts.HighlightBoost)
}

// Target is a fill whose opacity the engine drives.
type Target interface {
	Key() string
	SetOpacity(base, current float64)
}

// Apply resets every target to the mode's base opacity and raises the
// highlighted one, so at most one fill is ever highlighted.
func Apply[T Target](e *Engine, targets []T, highlight string, ok bool) {
	base, hi := e.Params().FillOpacity, e.HighlightOpacity()
	for _, t := range targets {
		if ok && t.Key() == highlight {
			t.SetOpacity(base, hi)
		} else {
			t.SetOpacity(base, base)
		}
	}
}
