package core

import (
	"math"
)

// SpectrumSize is the number of spectral channels carried through a walk.
const SpectrumSize = 3

// Spectrum holds one value per spectral channel (RGB in this implementation)
type Spectrum [SpectrumSize]float64

// NewSpectrum creates a spectrum from per-channel values
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{r, g, b}
}

// SplatSpectrum creates a spectrum with the same value in every channel
func SplatSpectrum(v float64) Spectrum {
	return Spectrum{v, v, v}
}

// Add returns the component-wise sum of two spectra
func (s Spectrum) Add(other Spectrum) Spectrum {
	for i := range s {
		s[i] += other[i]
	}
	return s
}

// Mul returns the component-wise product of two spectra
func (s Spectrum) Mul(other Spectrum) Spectrum {
	for i := range s {
		s[i] *= other[i]
	}
	return s
}

// Scale returns the spectrum scaled by a scalar
func (s Spectrum) Scale(scalar float64) Spectrum {
	for i := range s {
		s[i] *= scalar
	}
	return s
}

// Clamp returns a spectrum with every channel clamped to [min, max]
func (s Spectrum) Clamp(minVal, maxVal float64) Spectrum {
	for i := range s {
		s[i] = math.Max(minVal, math.Min(maxVal, s[i]))
	}
	return s
}

// MaxComponent returns the largest channel value
func (s Spectrum) MaxComponent() float64 {
	return math.Max(s[0], math.Max(s[1], s[2]))
}

// Sum returns the sum of all channel values
func (s Spectrum) Sum() float64 {
	return s[0] + s[1] + s[2]
}

// IsFinite reports whether every channel is a finite number
func (s Spectrum) IsFinite() bool {
	for i := range s {
		if math.IsNaN(s[i]) || math.IsInf(s[i], 0) {
			return false
		}
	}
	return true
}

// BuildChannelCDF normalizes the spectrum into a channel-selection PDF and
// its cumulative distribution. Returns false when every channel is zero.
func (s Spectrum) BuildChannelCDF() (pdf, cdf Spectrum, ok bool) {
	sum := s.Sum()
	if sum <= 0 {
		return Spectrum{}, Spectrum{}, false
	}
	accum := 0.0
	for i := range s {
		pdf[i] = s[i] / sum
		accum += pdf[i]
		cdf[i] = accum
	}
	cdf[SpectrumSize-1] = 1.0
	return pdf, cdf, true
}

// SampleChannelCDF maps a uniform sample to a channel index using the CDF
func SampleChannelCDF(cdf Spectrum, u float64) int {
	for i := 0; i < SpectrumSize-1; i++ {
		if u < cdf[i] {
			return i
		}
	}
	return SpectrumSize - 1
}
