// Package material provides the diffuse reflection model coupled to the walk
// at the exit point.
package material

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// BRDFSample is a sampled outgoing direction with its value and density
type BRDFSample struct {
	Direction core.Vec3
	Value     core.Spectrum
	PDF       float64
}

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Reflectance core.Spectrum
}

// NewLambertian creates a new lambertian material with the given reflectance
func NewLambertian(reflectance core.Spectrum) *Lambertian {
	return &Lambertian{Reflectance: reflectance}
}

// Sample generates a cosine-weighted outgoing direction about the normal
func (l *Lambertian) Sample(normal core.Vec3, sampler core.Sampler) (BRDFSample, bool) {
	direction := core.SampleCosineHemisphere(normal, sampler.Get2D())

	// PDF: cos(θ) / π where θ is angle from normal
	cosTheta := direction.Normalize().Dot(normal)
	if cosTheta < 0 {
		cosTheta = 0
	}
	pdf := cosTheta / math.Pi
	if pdf <= 0 {
		return BRDFSample{}, false
	}

	// BRDF: reflectance / π (proper energy conservation)
	return BRDFSample{
		Direction: direction,
		Value:     l.Reflectance.Scale(1.0 / math.Pi),
		PDF:       pdf,
	}, true
}

// Evaluate returns the BRDF value for a specific outgoing direction
func (l *Lambertian) Evaluate(normal, outgoing core.Vec3) core.Spectrum {
	if outgoing.Dot(normal) <= 0 {
		return core.Spectrum{} // below surface
	}
	return l.Reflectance.Scale(1.0 / math.Pi)
}

// PDF returns the sampling density for a specific outgoing direction
func (l *Lambertian) PDF(normal, outgoing core.Vec3) float64 {
	cosTheta := outgoing.Dot(normal)
	if cosTheta <= 0 {
		return 0.0
	}
	return cosTheta / math.Pi
}
