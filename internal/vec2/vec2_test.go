package vec2

import (
	"math"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(1, 2)
	b := New(3, -1)

	if got := a.Add(b); got != (Vec2{4, 1}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 3}) {
		t.Errorf("Sub: got %v", got)
	}
}

func TestScaleDiv(t *testing.T) {
	a := New(2, 4)
	if got := a.Scale(0.5); got != (Vec2{1, 2}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Div(2); got != (Vec2{1, 2}) {
		t.Errorf("Div: got %v", got)
	}
}

func TestDotAndNorm(t *testing.T) {
	a := New(3, 4)
	if got := a.NormSquared(); got != 25 {
		t.Errorf("NormSquared: got %v", got)
	}
	if got := a.Norm(); got != 5 {
		t.Errorf("Norm: got %v", got)
	}
	if got := a.Dot(New(1, 0)); got != 3 {
		t.Errorf("Dot: got %v", got)
	}
}

func TestNormalizedOr(t *testing.T) {
	a := New(0, 5)
	got := a.NormalizedOr(New(1, 0))
	if got != (Vec2{0, 1}) {
		t.Errorf("expected unit vector, got %v", got)
	}

	zero := Zero
	got = zero.NormalizedOr(New(1, 0))
	if got != (Vec2{1, 0}) {
		t.Errorf("expected fallback, got %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, 2).IsFinite() {
		t.Error("expected finite")
	}
	if New(math.NaN(), 0).IsFinite() {
		t.Error("expected non-finite for NaN")
	}
	if New(math.Inf(1), 0).IsFinite() {
		t.Error("expected non-finite for Inf")
	}
}
