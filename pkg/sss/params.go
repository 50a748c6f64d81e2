// Package sss implements a Monte Carlo random-walk subsurface scattering
// sampler: given a ray entering a translucent boundary it computes an
// unbiased exit point, exit direction and spectral throughput.
//
// Reference:
//
//	Path Traced Subsurface Scattering using Anisotropic Phase Functions
//	and Non-Exponential Free Flights, Pixar Technical Memo 17-07
//	https://graphics.pixar.com/library/PathTracedSubsurface/paper.pdf
package sss

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// MaterialInputs holds the user-facing parameters of one material instance.
// Owned by the host material system; the walk treats it as read-only.
type MaterialInputs struct {
	Weight                   float64
	Reflectance              core.Spectrum
	ReflectanceMultiplier    float64
	MeanFreePath             core.Spectrum
	MFPMultiplier            float64
	IOR                      float64
	FresnelWeight            float64
	ZeroScatteringWeight     float64
	SingleScatteringWeight   float64
	MultipleScatteringWeight float64
}

// PrecomputedCoefficients holds the per-channel optical coefficients derived
// from MaterialInputs. Computed once per material evaluation and immutable
// afterward, so concurrent walks may share it.
type PrecomputedCoefficients struct {
	Albedo             core.Spectrum // single-scattering albedo, in (0, 1)
	Extinction         core.Spectrum // reciprocal mean free path, > 0
	Scattering         core.Spectrum // albedo * extinction
	RcpDiffusionLength core.Spectrum // in (0, 0.99], bounded away from 1
}

// Input clamp bounds: reflectance stays inside (0, 1) so the albedo fit is
// well defined, and the mean free path stays strictly positive.
const (
	minReflectance = 0.001
	maxReflectance = 0.999
	minMFP         = 1.0e-6

	maxRcpDiffusionLength = 0.99
)

// Precompute derives the per-channel optical coefficients from the raw
// inputs. It is a pure function: the inputs are not modified and identical
// inputs always produce identical coefficients.
func Precompute(inputs *MaterialInputs) PrecomputedCoefficients {
	var c PrecomputedCoefficients
	for i := 0; i < core.SpectrumSize; i++ {
		r := clamp(inputs.Reflectance[i]*inputs.ReflectanceMultiplier, minReflectance, maxReflectance)
		mfp := math.Max(inputs.MeanFreePath[i]*inputs.MFPMultiplier, minMFP)

		// Compute single-scattering albedo from multiple-scattering albedo.
		albedo := AlbedoFromReflectance(r)

		// Compute extinction coefficient.
		s := normalizedDiffusionShape(r)
		extinction := 1.0 / (mfp * s)

		c.Albedo[i] = albedo
		c.Extinction[i] = extinction
		c.Scattering[i] = albedo * extinction

		// Compute diffusion length, required by Dwivedi sampling.
		c.RcpDiffusionLength[i] = math.Min(RcpDiffusionLength(albedo), maxRcpDiffusionLength)
	}
	return c
}

// AlbedoFromReflectance maps diffuse surface reflectance to the
// single-scattering albedo of the medium via a closed-form fit.
func AlbedoFromReflectance(r float64) float64 {
	return 1.0 - math.Exp(r*(-5.09406+r*(2.61188-4.31805*r)))
}

// normalizedDiffusionShape is the scaling factor s such that the medium's
// extinction is 1/(mfp*s), fitted against the searchlight configuration.
func normalizedDiffusionShape(r float64) float64 {
	d := r - 0.8
	return 1.9 - r + 3.5*d*d
}

// rcpDiffusionLengthLowAlbedo expands the reciprocal diffusion length in
// powers of 1/albedo with an exp(-2/albedo) decay term. Accurate for
// strongly absorbing media.
func rcpDiffusionLengthLowAlbedo(albedo float64) float64 {
	a := 1.0 / albedo
	b := math.Exp(-2.0 * a)

	x0 := 1.0
	x1 := a*4.0 - 1.0
	x2 := a*(a*24.0-12.0) + 1.0
	x3 := a*(a*(a*512.0-384.0)+72.0) - 3.0

	return 1.0 - 2.0*b*(x0+b*(x1+b*(x2+b*x3)))
}

// rcpDiffusionLengthHighAlbedo expands the reciprocal diffusion length in
// powers of (1-albedo), scaled by sqrt(3(1-albedo)). Accurate for weakly
// absorbing media.
func rcpDiffusionLengthHighAlbedo(albedo float64) float64 {
	a := 1.0 - albedo
	b := math.Sqrt(3.0 * a)

	x0 := +1.0
	x1 := -0.4
	x2 := -0.0685714286
	x3 := -0.016
	x4 := -0.0024638218

	return b * (x0 + a*(x1+a*(x2+a*(x3+a*x4))))
}

// rcpDiffusionAlbedoSplit is the albedo at which the two expansions cross;
// they agree there to within ~1e-7, so the combined function is continuous.
const rcpDiffusionAlbedoSplit = 0.5414

// RcpDiffusionLength computes the reciprocal diffusion length kappa of a
// medium with the given single-scattering albedo. The result lies in (0, 1).
func RcpDiffusionLength(albedo float64) float64 {
	a := clamp(albedo, 0.0, 0.999)
	if a < rcpDiffusionAlbedoSplit {
		return rcpDiffusionLengthLowAlbedo(a)
	}
	return rcpDiffusionLengthHighAlbedo(a)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
