package levelset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a flattened scalar field sampled over a grid.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

// SchemeFunc approximates the right-hand side of the semi-discrete PDE at
// time t. The bundle is rotated so that the function's own subsystem is at
// position 0; sibling subsystems are reachable at positions 1..Len()-1 for
// coupling terms. The returned step bound must be strictly positive and
// finite, and the derivative must have the same length as the subsystem's
// field. Context updates go through [Bundle.SetContext].
type SchemeFunc func(t float64, y *Bundle) (ydot State, stepBound float64, err error)

// Bundle carries the K coupled subsystem fields together with their opaque
// per-subsystem contexts. The two slices are kept in one-to-one
// correspondence at all times and rotate together; rotation is a ring
// offset, never a reconstruction.
type Bundle struct {
	states []State
	ctxs   []any
	off    int
}

// NewBundle builds a bundle from K fields and K contexts. A nil context
// slice stands for "no context" and is expanded to K nil entries; a non-nil
// slice must match the state slice in length.
func NewBundle(states []State, ctxs []any) (*Bundle, error) {
	if len(states) == 0 {
		return nil, ErrEmptyBundle
	}
	if ctxs == nil {
		ctxs = make([]any, len(states))
	} else if len(ctxs) != len(states) {
		return nil, fmt.Errorf("%w: %d contexts for %d states", ErrContextMismatch, len(ctxs), len(states))
	}
	return &Bundle{states: states, ctxs: ctxs}, nil
}

// Single wraps one field and its context as a K=1 bundle.
func Single(s State, ctx any) *Bundle {
	return &Bundle{states: []State{s}, ctxs: []any{ctx}}
}

func (b *Bundle) Len() int { return len(b.states) }

func (b *Bundle) idx(i int) int {
	k := len(b.states)
	return ((b.off+i)%k + k) % k
}

// State returns subsystem i relative to the current rotation; position 0 is
// the subsystem whose scheme function is being evaluated.
func (b *Bundle) State(i int) State { return b.states[b.idx(i)] }

func (b *Bundle) SetState(i int, s State) { b.states[b.idx(i)] = s }

// Context returns the opaque context paired with subsystem i.
func (b *Bundle) Context(i int) any { return b.ctxs[b.idx(i)] }

func (b *Bundle) SetContext(i int, v any) { b.ctxs[b.idx(i)] = v }

// Rotate cyclically left-rotates state and context together by one
// position. K rotations restore the original order. O(1).
func (b *Bundle) Rotate() { b.off = b.idx(1) }

// Aligned reports whether the ring is in its original order. Evaluation
// passes must leave the bundle aligned.
func (b *Bundle) Aligned() bool { return b.off == 0 }

// CloneStates deep-copies all fields in canonical (unrotated) order. The
// rotation offset is a view; the backing order never moves.
func (b *Bundle) CloneStates() []State {
	out := make([]State, len(b.states))
	for i, s := range b.states {
		out[i] = s.Clone()
	}
	return out
}

// RestoreStates overwrites all fields with the given canonical-order
// snapshot, e.g. a post-step hook swapping in reinitialized fields.
func (b *Bundle) RestoreStates(states []State) error {
	if len(states) != len(b.states) {
		return fmt.Errorf("%w: %d states for %d subsystems", ErrContextMismatch, len(states), len(b.states))
	}
	copy(b.states, states)
	return nil
}
