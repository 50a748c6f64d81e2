// Package geometry provides concrete boundary shapes implementing the
// core.Intersector interface used by the walk.
package geometry

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// Sphere is a spherical medium boundary
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Trace tests if a ray crosses the sphere boundary within [tMin, tMax].
// Works from both sides: rays starting inside report the far crossing.
func (s *Sphere) Trace(ray core.Ray, tMin, tMax float64) (core.SurfacePoint, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.SurfacePoint{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer crossing first, then the farther one
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return core.SurfacePoint{}, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	// Orient the normal toward the ray origin side
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return core.SurfacePoint{
		Position:        point,
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Distance:        root,
	}, true
}

// EntryPoint returns a surface point on the sphere with normals facing
// outward, suitable as the starting point of a walk.
func (s *Sphere) EntryPoint(direction core.Vec3) core.SurfacePoint {
	outward := direction.Normalize()
	return core.SurfacePoint{
		Position:        s.Center.Add(outward.Multiply(s.Radius)),
		GeometricNormal: outward,
		ShadingNormal:   outward,
	}
}
