// Package interact tracks what the pointer hovers and which region is
// locked, and which clusters the filter lets through.
package interact

type Kind int

const (
	Idle Kind = iota
	Hovering
	Locked
)

func (k Kind) String() string {
	switch k {
	case Hovering:
		return "hovering"
	case Locked:
		return "locked"
	}
	return "idle"
}

// State is the single interaction value. Key is empty when Idle.
type State struct {
	Kind Kind
	Key  string
}

// Effect asks the caller to move the camera.
type Effect int

const (
	EffectNone Effect = iota
	EffectFlyTo
	EffectFitNation
)

func (e Effect) String() string {
	switch e {
	case EffectFlyTo:
		return "fly-to"
	case EffectFitNation:
		return "fit-nation"
	}
	return "none"
}

// Hover follows the pointer. A lock ignores it.
func (s State) Hover(key string, hit bool) State {
	switch {
	case s.Kind == Locked:
		return s
	case hit:
		return State{Kind: Hovering, Key: key}
	}
	return State{}
}

// Click locks the region under the pointer, switching the lock if another
// region is already locked. A click on nothing changes nothing.
func (s State) Click(key string, hit bool) (State, Effect) {
	if !hit {
		return s, EffectNone
	}
	if s.Kind == Locked && s.Key == key {
		return s, EffectNone
	}
	return State{Kind: Locked, Key: key}, EffectFlyTo
}

// Close releases a lock.
func (s State) Close() (State, Effect) {
	if s.Kind != Locked {
		return s, EffectNone
	}
	return State{}, EffectFitNation
}

// Reconcile drops a hover or lock whose region is no longer visible.
func (s State) Reconcile(visible func(key string) bool) (State, Effect) {
	if s.Kind == Idle || visible(s.Key) {
		return s, EffectNone
	}
	if s.Kind == Locked {
		return State{}, EffectFitNation
	}
	return State{}, EffectNone
}

// Highlight is the region drawn highlighted: the lock, else the hover.
func (s State) Highlight() (string, bool) {
	if s.Kind == Idle {
		return "", false
	}
	return s.Key, true
}
