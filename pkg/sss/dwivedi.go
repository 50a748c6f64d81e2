package sss

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// DwivediPhaseFunction is an anisotropic phase function oriented relative to
// a slab normal. It skews directions toward the boundary (cosine near +1),
// which shortens the expected escape time of walks in diffusive media.
//
// v0 is the diffusion length of the medium (the reciprocal of kappa) and
// must be > 1, which RcpDiffusionLength's 0.99 bound guarantees.
type DwivediPhaseFunction struct {
	v0   float64
	norm float64 // 1 / (2*pi * ln((v0+1)/(v0-1)))
}

// NewDwivediPhaseFunction builds a phase function for diffusion length v0
func NewDwivediPhaseFunction(v0 float64) DwivediPhaseFunction {
	return DwivediPhaseFunction{
		v0:   v0,
		norm: 1.0 / (2.0 * math.Pi * math.Log((v0+1.0)/(v0-1.0))),
	}
}

// Sample draws a direction from the phase function about the slab normal.
// The polar cosine follows p(cos) ∝ 1/(v0 - cos); azimuth is uniform.
func (p DwivediPhaseFunction) Sample(slabNormal core.Vec3, sample core.Vec2) core.Vec3 {
	cosTheta := p.v0 - (p.v0+1.0)*math.Pow((p.v0-1.0)/(p.v0+1.0), sample.X)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	tangent, bitangent := core.OrthonormalBasis(slabNormal)
	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Add(slabNormal.Multiply(cosTheta))
}

// Evaluate returns the solid-angle density of a direction
func (p DwivediPhaseFunction) Evaluate(slabNormal, direction core.Vec3) float64 {
	cosTheta := slabNormal.Dot(direction)
	return p.norm / (p.v0 - cosTheta)
}
