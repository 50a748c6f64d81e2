package sss

import (
	"math"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// classicalDensity computes the per-channel transmittance of a free flight of
// the given length and the combined density of sampling it with classical
// exponential sampling. When the flight terminated inside the medium
// (transmitted=false) the transmittance carries the extinction factor, the
// density of stopping at that exact distance; when the flight reached the
// boundary it is the survival probability alone.
func classicalDensity(
	distance float64,
	c *PrecomputedCoefficients,
	channelPDF core.Spectrum,
	transmitted bool,
) (transmission core.Spectrum, density float64) {
	for i := 0; i < core.SpectrumSize; i++ {
		transmission[i] = math.Exp(-distance * c.Extinction[i])
		if !transmitted {
			transmission[i] *= c.Extinction[i]
		}
		density += transmission[i] * channelPDF[i]
	}
	return transmission, density
}

// dwivediDensity computes the combined density of sampling the same flight
// with Dwivedi sampling oriented along slabNormal. The effective extinction
// and the directional density are both evaluated against slabNormal, and the
// result is scaled by 4*pi so it is commensurable with classicalDensity,
// whose implicit uniform-sphere direction density is 1/(4*pi).
func dwivediDensity(
	distance float64,
	c *PrecomputedCoefficients,
	channelPDF core.Spectrum,
	transmitted bool,
	slabNormal, direction core.Vec3,
) float64 {
	cosine := direction.Dot(slabNormal)
	density := 0.0
	for i := 0; i < core.SpectrumSize; i++ {
		effectiveExtinction := c.Extinction[i] * (1.0 - cosine*c.RcpDiffusionLength[i])
		distanceProb := math.Exp(-distance * effectiveExtinction)
		if !transmitted {
			distanceProb *= effectiveExtinction
		}

		phase := NewDwivediPhaseFunction(1.0 / c.RcpDiffusionLength[i])
		directionProb := phase.Evaluate(slabNormal, direction)

		density += distanceProb * channelPDF[i] * directionProb
	}
	return density * 4.0 * math.Pi
}

// stepMISWeight blends the classical density with the two oriented Dwivedi
// densities into the balance weight the step's throughput is divided by.
// biasBlend is the probability that the walk sampled with the far boundary
// orientation, fixed once per walk.
func stepMISWeight(
	distance float64,
	c *PrecomputedCoefficients,
	channelPDF core.Spectrum,
	transmitted bool,
	nearNormal, farNormal, direction core.Vec3,
	biasBlend float64,
) (transmission core.Spectrum, weight float64) {
	transmission, misClassical := classicalDensity(distance, c, channelPDF, transmitted)
	misDwivediNear := dwivediDensity(distance, c, channelPDF, transmitted, nearNormal, direction)
	misDwivediFar := dwivediDensity(distance, c, channelPDF, transmitted, farNormal, direction)
	misDwivedi := core.Lerp(misDwivediNear, misDwivediFar, biasBlend)
	return transmission, core.Lerp(misDwivedi, misClassical, classicalSamplingProb)
}
