package core

// RayEpsilon is the minimum hit distance used to avoid self-intersection
// when a ray starts on the boundary surface. It must stay far below the
// shortest free flight the walk can sample, or near-boundary crossings in
// dense media become invisible; 1e-9 leaves ample float64 headroom.
const RayEpsilon = 1e-9

// SurfacePoint describes a point on the boundary of a participating medium
type SurfacePoint struct {
	Position        Vec3
	GeometricNormal Vec3    // faces the ray origin side
	ShadingNormal   Vec3    // interpolated normal, same orientation convention
	Distance        float64 // hit distance along the query ray
	Time            float64
	Depth           int // ray depth, incremented per walk segment
}

// FlipSide switches the point's orientation between the entry and exit side
func (p *SurfacePoint) FlipSide() {
	p.GeometricNormal = p.GeometricNormal.Negate()
	p.ShadingNormal = p.ShadingNormal.Negate()
}

// Intersector is the scene ray-intersection service consulted by the walk.
// Trace reports the closest boundary crossing with distance in [tMin, tMax];
// a miss means the ray survives the capped query without leaving the medium.
// Implementations must be safe for concurrent use by independent walks.
type Intersector interface {
	Trace(ray Ray, tMin, tMax float64) (SurfacePoint, bool)
}
