// Package stencil holds the per-pixel clip-mask buffer and the reference
// allocator that stamps one region per value.
package stencil

// MaxRef is the largest reference an 8-bit stencil can hold. Zero means
// "no mask" and is never handed out.
const MaxRef = 255

type Func uint8

const (
	Always Func = iota
	Equal
)

type Op uint8

const (
	Keep Op = iota
	Replace
)

// State is the stencil configuration of one draw call.
type State struct {
	Enabled    bool
	Func       Func
	Op         Op
	Ref        uint8
	ColorWrite bool
}

// Off draws colour without testing or touching the stencil.
var Off = State{ColorWrite: true}

// Mask stamps ref everywhere the geometry covers and writes no colour.
func Mask(ref uint8) State {
	return State{Enabled: true, Func: Always, Op: Replace, Ref: ref}
}

// Clip draws colour only where the stencil already holds ref.
func Clip(ref uint8) State {
	return State{Enabled: true, Func: Equal, Op: Keep, Ref: ref, ColorWrite: true}
}

// Buffer is a W×H grid of stencil values.
type Buffer struct {
	W, H int
	px   []uint8
}

func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

func (b *Buffer) Resize(w, h int) {
	b.W, b.H = max(w, 0), max(h, 0)
	b.px = make([]uint8, b.W*b.H)
}

func (b *Buffer) Clear() {
	clear(b.px)
}

func (b *Buffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return 0
	}
	return b.px[y*b.W+x]
}

// Test runs s against pixel (x, y), applies the op when the test passes
// and reports whether the fragment survives.
func (b *Buffer) Test(x, y int, s State) bool {
	if !s.Enabled {
		return true
	}
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	i := y*b.W + x
	v := b.px[i]
	var pass bool
	switch s.Func {
	case Always:
		pass = true
	case Equal:
		pass = v == s.Ref
	}
	if !pass {
		return false
	}
	if s.Op == Replace {
		b.px[i] = s.Ref
	}
	return true
}

// Allocator issues references 1..MaxRef cyclically. Two regions share a
// reference once more than MaxRef have been issued; the later mask wins
// wherever both are drawn.
type Allocator struct {
	n int
}

func (a *Allocator) Next() uint8 {
	ref := uint8(a.n%MaxRef + 1)
	a.n++
	return ref
}

func (a *Allocator) Issued() int { return a.n }

func (a *Allocator) Reset() { a.n = 0 }
