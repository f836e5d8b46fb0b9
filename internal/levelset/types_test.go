package levelset

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	if got := (State{3, 4}).Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
	if got := (State{}).Norm(); got != 0 {
		t.Errorf("Norm() of empty state = %v, want 0", got)
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] == 99 {
		t.Error("Clone did not create an independent copy")
	}
}

func TestNewBundle_Validation(t *testing.T) {
	if _, err := NewBundle(nil, nil); err == nil {
		t.Error("expected error for empty bundle")
	}
	if _, err := NewBundle([]State{{1}}, []any{"a", "b"}); err == nil {
		t.Error("expected error for mismatched context list")
	}
	b, err := NewBundle([]State{{1}, {2}}, nil)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if b.Context(0) != nil || b.Context(1) != nil {
		t.Error("nil context slice should expand to nil entries")
	}
}

func TestBundle_RotationClosure(t *testing.T) {
	states := []State{{1}, {2}, {3}}
	ctxs := []any{"a", "b", "c"}
	b, err := NewBundle(states, ctxs)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}

	wantStates := []float64{1, 2, 3}
	wantCtxs := []string{"a", "b", "c"}
	for i := 0; i < 3; i++ {
		if got := b.State(0)[0]; got != wantStates[i] {
			t.Errorf("rotation %d: State(0) = %v, want %v", i, got, wantStates[i])
		}
		if got := b.Context(0); got != wantCtxs[i] {
			t.Errorf("rotation %d: Context(0) = %v, want %v", i, got, wantCtxs[i])
		}
		b.Rotate()
	}

	// A full pass of K rotations restores the original order exactly.
	if !b.Aligned() {
		t.Error("bundle not aligned after K rotations")
	}
	if b.State(0)[0] != 1 || b.Context(0) != "a" {
		t.Error("rotation closure violated")
	}
}

func TestBundle_StateContextRotateTogether(t *testing.T) {
	b, _ := NewBundle([]State{{1}, {2}}, []any{"a", "b"})
	b.Rotate()
	if b.State(0)[0] != 2 || b.Context(0) != "b" {
		t.Errorf("state and context rotated independently: %v / %v", b.State(0), b.Context(0))
	}
	if b.State(1)[0] != 1 || b.Context(1) != "a" {
		t.Errorf("sibling view wrong after rotation: %v / %v", b.State(1), b.Context(1))
	}
}

func TestBundle_CloneStatesCanonicalOrder(t *testing.T) {
	b, _ := NewBundle([]State{{1}, {2}, {3}}, nil)
	b.Rotate()
	snap := b.CloneStates()
	for i, want := range []float64{1, 2, 3} {
		if snap[i][0] != want {
			t.Errorf("CloneStates[%d] = %v, want %v", i, snap[i][0], want)
		}
	}
	snap[0][0] = 99
	b.Rotate()
	b.Rotate()
	if b.State(0)[0] == 99 {
		t.Error("CloneStates did not deep-copy")
	}
}

func TestBundle_RestoreStates(t *testing.T) {
	b, _ := NewBundle([]State{{1}, {2}}, nil)
	if err := b.RestoreStates([]State{{7}, {8}}); err != nil {
		t.Fatalf("RestoreStates: %v", err)
	}
	if b.State(0)[0] != 7 || b.State(1)[0] != 8 {
		t.Errorf("RestoreStates wrote %v, %v", b.State(0), b.State(1))
	}
	if err := b.RestoreStates([]State{{1}}); err == nil {
		t.Error("expected error for mismatched snapshot length")
	}
}
