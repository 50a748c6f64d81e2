package geometry

import (
	"math"
	"testing"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

func TestSlab_TraceDownward(t *testing.T) {
	slab := NewSlab(-1, 0)
	ray := core.NewRay(core.NewVec3(0, 0, -0.25), core.NewVec3(0, 0, -1))

	hit, ok := slab.Trace(ray, 1e-9, math.Inf(1))
	if !ok {
		t.Fatal("downward interior ray should reach the lower plane")
	}
	if math.Abs(hit.Distance-0.75) > 1e-12 {
		t.Errorf("distance %f, expected 0.75", hit.Distance)
	}
	if hit.GeometricNormal.Dot(ray.Direction) >= 0 {
		t.Errorf("normal %v should oppose the ray direction", hit.GeometricNormal)
	}
}

func TestSlab_TracePicksNearestPlane(t *testing.T) {
	slab := NewSlab(-1, 0)
	ray := core.NewRay(core.NewVec3(0, 0, -0.1), core.NewVec3(0, 0, 1))

	hit, ok := slab.Trace(ray, 1e-9, math.Inf(1))
	if !ok {
		t.Fatal("upward interior ray should reach the upper plane")
	}
	if math.Abs(hit.Distance-0.1) > 1e-12 {
		t.Errorf("distance %f, expected 0.1", hit.Distance)
	}
	if math.Abs(hit.Position.Z) > 1e-12 {
		t.Errorf("hit should lie on z=0, got z=%f", hit.Position.Z)
	}
}

func TestSlab_TraceParallelMisses(t *testing.T) {
	slab := NewSlab(-1, 0)
	ray := core.NewRay(core.NewVec3(0, 0, -0.5), core.NewVec3(1, 0, 0))

	if _, ok := slab.Trace(ray, 1e-9, math.Inf(1)); ok {
		t.Error("ray parallel to the planes should never hit")
	}
}

func TestSlab_TraceRespectsTMax(t *testing.T) {
	slab := NewSlab(-1, 0)
	ray := core.NewRay(core.NewVec3(0, 0, -0.5), core.NewVec3(0, 0, -1))

	if _, ok := slab.Trace(ray, 1e-9, 0.25); ok {
		t.Error("crossing beyond tMax should not be reported")
	}
}

func TestSlab_TopEntryPoint(t *testing.T) {
	slab := NewSlab(-2, 0.5)
	entry := slab.TopEntryPoint(3, 4)

	if entry.Position != core.NewVec3(3, 4, 0.5) {
		t.Errorf("entry position %v", entry.Position)
	}
	if entry.GeometricNormal != core.NewVec3(0, 0, 1) {
		t.Errorf("entry normal %v should point up", entry.GeometricNormal)
	}
}
