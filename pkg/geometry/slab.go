package geometry

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// Slab is a medium bounded by the two horizontal planes z=ZMin and z=ZMax,
// infinite in x and y. Useful for validating the biased sampling regime,
// which is derived for slab-like geometry.
type Slab struct {
	ZMin, ZMax float64
}

// NewSlab creates a slab between the two z planes
func NewSlab(zMin, zMax float64) *Slab {
	return &Slab{ZMin: zMin, ZMax: zMax}
}

// Trace tests if a ray crosses either bounding plane within [tMin, tMax]
func (s *Slab) Trace(ray core.Ray, tMin, tMax float64) (core.SurfacePoint, bool) {
	best := math.Inf(1)
	bestZ := 0.0
	for _, z := range [2]float64{s.ZMin, s.ZMax} {
		if ray.Direction.Z == 0 {
			continue // parallel to the planes
		}
		t := (z - ray.Origin.Z) / ray.Direction.Z
		if t >= tMin && t <= tMax && t < best {
			best = t
			bestZ = z
		}
	}
	if math.IsInf(best, 1) {
		return core.SurfacePoint{}, false
	}

	// Plane normals point away from the slab interior; orient toward the
	// ray origin side.
	normal := core.NewVec3(0, 0, 1)
	if bestZ == s.ZMin {
		normal = core.NewVec3(0, 0, -1)
	}
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return core.SurfacePoint{
		Position:        ray.At(best),
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Distance:        best,
	}, true
}

// TopEntryPoint returns a walk entry point on the upper plane at (x, y)
func (s *Slab) TopEntryPoint(x, y float64) core.SurfacePoint {
	up := core.NewVec3(0, 0, 1)
	return core.SurfacePoint{
		Position:        core.NewVec3(x, y, s.ZMax),
		GeometricNormal: up,
		ShadingNormal:   up,
	}
}
