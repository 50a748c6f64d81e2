package core

import (
	"math"
	"testing"
)

func TestSpectrum_Operations(t *testing.T) {
	s := NewSpectrum(0.5, 1.0, 2.0)

	scaled := s.Scale(2)
	if scaled != NewSpectrum(1.0, 2.0, 4.0) {
		t.Errorf("Scale: got %v", scaled)
	}

	product := s.Mul(NewSpectrum(2, 2, 0.5))
	if product != NewSpectrum(1.0, 2.0, 1.0) {
		t.Errorf("Mul: got %v", product)
	}

	clamped := s.Clamp(0, 1.5)
	if clamped != NewSpectrum(0.5, 1.0, 1.5) {
		t.Errorf("Clamp: got %v", clamped)
	}

	if s.MaxComponent() != 2.0 {
		t.Errorf("MaxComponent: got %f, expected 2", s.MaxComponent())
	}

	if s.Sum() != 3.5 {
		t.Errorf("Sum: got %f, expected 3.5", s.Sum())
	}
}

func TestSpectrum_IsFinite(t *testing.T) {
	if !NewSpectrum(0, 1, 2).IsFinite() {
		t.Error("finite spectrum reported as non-finite")
	}
	if NewSpectrum(0, math.NaN(), 2).IsFinite() {
		t.Error("NaN spectrum reported as finite")
	}
	if NewSpectrum(math.Inf(1), 1, 2).IsFinite() {
		t.Error("Inf spectrum reported as finite")
	}
}

func TestSpectrum_BuildChannelCDF(t *testing.T) {
	s := NewSpectrum(1, 2, 1)
	pdf, cdf, ok := s.BuildChannelCDF()
	if !ok {
		t.Fatal("BuildChannelCDF failed on positive spectrum")
	}

	if math.Abs(pdf[0]-0.25) > 1e-12 || math.Abs(pdf[1]-0.5) > 1e-12 || math.Abs(pdf[2]-0.25) > 1e-12 {
		t.Errorf("pdf incorrect: got %v", pdf)
	}
	if cdf[SpectrumSize-1] != 1.0 {
		t.Errorf("cdf must end at 1: got %v", cdf)
	}

	// Zero spectrum has no valid distribution
	if _, _, ok := NewSpectrum(0, 0, 0).BuildChannelCDF(); ok {
		t.Error("BuildChannelCDF should fail on all-zero spectrum")
	}
}

func TestSampleChannelCDF(t *testing.T) {
	_, cdf, _ := NewSpectrum(1, 2, 1).BuildChannelCDF() // cdf = [0.25, 0.75, 1.0]

	tests := []struct {
		u        float64
		expected int
	}{
		{0.0, 0},
		{0.24, 0},
		{0.25, 1},
		{0.74, 1},
		{0.75, 2},
		{0.999, 2},
	}
	for _, tt := range tests {
		if got := SampleChannelCDF(cdf, tt.u); got != tt.expected {
			t.Errorf("SampleChannelCDF(%f): got %d, expected %d", tt.u, got, tt.expected)
		}
	}
}

func TestSampleChannelCDF_DegenerateChannels(t *testing.T) {
	// A channel with zero weight must never be selected
	_, cdf, ok := NewSpectrum(0, 1, 1).BuildChannelCDF()
	if !ok {
		t.Fatal("BuildChannelCDF failed")
	}
	for u := 0.0; u < 1.0; u += 0.01 {
		if got := SampleChannelCDF(cdf, u); got == 0 {
			t.Fatalf("selected zero-weight channel at u=%f", u)
		}
	}
}
