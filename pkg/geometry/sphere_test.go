package geometry

import (
	"math"
	"testing"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

func TestSphere_TraceFromOutside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	hit, ok := sphere.Trace(ray, 1e-9, math.Inf(1))
	if !ok {
		t.Fatal("ray toward the sphere should hit")
	}
	if math.Abs(hit.Distance-2.0) > 1e-12 {
		t.Errorf("distance %f, expected 2", hit.Distance)
	}
	// Normal faces the ray origin
	if hit.GeometricNormal.Dot(core.NewVec3(0, 0, 1)) < 0.999 {
		t.Errorf("normal %v should face the origin side", hit.GeometricNormal)
	}
}

func TestSphere_TraceFromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, ok := sphere.Trace(ray, 1e-9, math.Inf(1))
	if !ok {
		t.Fatal("interior ray should reach the boundary")
	}
	if math.Abs(hit.Distance-1.0) > 1e-12 {
		t.Errorf("distance %f, expected 1", hit.Distance)
	}
	// From inside the normal still faces the ray origin, so inward
	if hit.GeometricNormal.Dot(ray.Direction) >= 0 {
		t.Errorf("normal %v should oppose the ray direction", hit.GeometricNormal)
	}
}

func TestSphere_TraceRespectsTMax(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if _, ok := sphere.Trace(ray, 1e-9, 0.5); ok {
		t.Error("crossing beyond tMax should not be reported")
	}
	if _, ok := sphere.Trace(ray, 1e-9, 1.5); !ok {
		t.Error("crossing within tMax should be reported")
	}
}

func TestSphere_TraceMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, 0, 1))

	if _, ok := sphere.Trace(ray, 1e-9, math.Inf(1)); ok {
		t.Error("ray missing the sphere should not hit")
	}
}

func TestSphere_EntryPoint(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0)
	entry := sphere.EntryPoint(core.NewVec3(0, 0, 1))

	expected := core.NewVec3(1, 2, 5)
	if entry.Position.Subtract(expected).Length() > 1e-12 {
		t.Errorf("entry position %v, expected %v", entry.Position, expected)
	}
	if entry.GeometricNormal.Dot(core.NewVec3(0, 0, 1)) < 0.999 {
		t.Errorf("entry normal %v should point outward", entry.GeometricNormal)
	}
	if entry.GeometricNormal != entry.ShadingNormal {
		t.Error("geometric and shading normals should agree on a sphere")
	}
}
