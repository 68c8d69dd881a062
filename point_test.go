package lattice

import (
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 4).Sub(Pt(1, 7)), Vec(2, -3))
	diff(t, Pt(-3, 4).Midpoint(Pt(0, 1)), Pt(-1, 2))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.DistanceSquared(p4); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
	if d := p3.DistanceL1(p4); d != 7 {
		t.Errorf("got L1 distance %v, want 7", d)
	}
	if d := p3.DistanceLinf(p4); d != 4 {
		t.Errorf("got L∞ distance %v, want 4", d)
	}
}

func TestVec2(t *testing.T) {
	v := Vec(3, -4)
	if got := v.Hypot2(); got != 25 {
		t.Errorf("got %d, want 25", got)
	}
	if got := v.Dot(Vec(2, 1)); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := Vec(1, 0).Cross(Vec(0, 1)); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	diff(t, Vec(-3, 4), v.Negate())
	diff(t, Vec(6, -8), v.Mul(2))
	diff(t, "⟨3, -4⟩", v.String())
}
