package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	sum := a.Add(b)
	if sum != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v, expected {5 7 9}", sum)
	}

	diff := b.Subtract(a)
	if diff != NewVec3(3, 3, 3) {
		t.Errorf("Subtract: got %v, expected {3 3 3}", diff)
	}

	scaled := a.Multiply(2)
	if scaled != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: got %v, expected {2 4 6}", scaled)
	}

	dot := a.Dot(b)
	if dot != 32 {
		t.Errorf("Dot: got %f, expected 32", dot)
	}

	neg := a.Negate()
	if neg != NewVec3(-1, -2, -3) {
		t.Errorf("Negate: got %v, expected {-1 -2 -3}", neg)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := x.Cross(y)
	if z != NewVec3(0, 0, 1) {
		t.Errorf("Cross: got %v, expected {0 0 1}", z)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	n := v.Normalize()
	if math.Abs(n.Length()-1.0) > 1e-12 {
		t.Errorf("Normalize: length %f, expected 1", n.Length())
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if zero != NewVec3(0, 0, 0) {
		t.Errorf("Normalize of zero vector: got %v, expected zero", zero)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	p := ray.At(2.5)
	if p != NewVec3(1, 2.5, 0) {
		t.Errorf("Ray.At: got %v, expected {1 2.5 0}", p)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0); got != 2 {
		t.Errorf("Lerp(2,4,0): got %f, expected 2", got)
	}
	if got := Lerp(2, 4, 1); got != 4 {
		t.Errorf("Lerp(2,4,1): got %f, expected 4", got)
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2,4,0.5): got %f, expected 3", got)
	}
}
