package sss

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// ParamSpec describes one host-facing input of the model: its label,
// default and hard numeric bounds, if any.
type ParamSpec struct {
	Name     string
	Label    string
	Default  float64
	Min, Max float64
	Bounded  bool
}

// InputMetadata lists the model's inputs in declaration order. Consumed by
// the host material system to build its parameter UI; not used by the walk.
func InputMetadata() []ParamSpec {
	return []ParamSpec{
		{Name: "weight", Label: "Weight", Default: 1.0},
		{Name: "reflectance", Label: "Diffuse Surface Reflectance", Default: 0.5},
		{Name: "reflectance_multiplier", Label: "Diffuse Surface Reflectance Multiplier", Default: 1.0},
		{Name: "mfp", Label: "Mean Free Path", Default: 0.5},
		{Name: "mfp_multiplier", Label: "Mean Free Path Multiplier", Default: 1.0},
		{Name: "ior", Label: "Index of Refraction", Default: 1.3, Min: 1.0, Max: 2.5, Bounded: true},
		{Name: "fresnel_weight", Label: "Fresnel Weight", Default: 1.0, Min: 0.0, Max: 1.0, Bounded: true},
		{Name: "zero_scattering_weight", Label: "Zero Scattering Weight", Default: 1.0, Min: 0.0, Max: 1.0, Bounded: true},
		{Name: "single_scattering_weight", Label: "Single Scattering Weight", Default: 1.0, Min: 0.0, Max: 1.0, Bounded: true},
		{Name: "multiple_scattering_weight", Label: "Multiple Scattering Weight", Default: 1.0, Min: 0.0, Max: 1.0, Bounded: true},
	}
}

// MaterialDescriptor is the serialized form of one material instance's
// parameter values. Spectral inputs are [r, g, b] triples.
type MaterialDescriptor struct {
	Weight                   *float64    `yaml:"weight"`
	Reflectance              *[3]float64 `yaml:"reflectance"`
	ReflectanceMultiplier    *float64    `yaml:"reflectance_multiplier"`
	MFP                      *[3]float64 `yaml:"mfp"`
	MFPMultiplier            *float64    `yaml:"mfp_multiplier"`
	IOR                      *float64    `yaml:"ior"`
	FresnelWeight            *float64    `yaml:"fresnel_weight"`
	ZeroScatteringWeight     *float64    `yaml:"zero_scattering_weight"`
	SingleScatteringWeight   *float64    `yaml:"single_scattering_weight"`
	MultipleScatteringWeight *float64    `yaml:"multiple_scattering_weight"`
}

// DefaultInputs returns MaterialInputs populated from the declared defaults
func DefaultInputs() MaterialInputs {
	return MaterialInputs{
		Weight:                   1.0,
		Reflectance:              core.SplatSpectrum(0.5),
		ReflectanceMultiplier:    1.0,
		MeanFreePath:             core.SplatSpectrum(0.5),
		MFPMultiplier:            1.0,
		IOR:                      1.3,
		FresnelWeight:            1.0,
		ZeroScatteringWeight:     1.0,
		SingleScatteringWeight:   1.0,
		MultipleScatteringWeight: 1.0,
	}
}

// ParseMaterial decodes a YAML material descriptor, applies defaults for
// absent fields and enforces the declared hard bounds.
func ParseMaterial(data []byte) (MaterialInputs, error) {
	var desc MaterialDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return MaterialInputs{}, fmt.Errorf("parsing material descriptor: %w", err)
	}
	return desc.ToInputs()
}

// ToInputs converts the descriptor to MaterialInputs, validating bounds
func (d *MaterialDescriptor) ToInputs() (MaterialInputs, error) {
	inputs := DefaultInputs()

	if d.Weight != nil {
		inputs.Weight = *d.Weight
	}
	if d.Reflectance != nil {
		inputs.Reflectance = core.Spectrum(*d.Reflectance)
	}
	if d.ReflectanceMultiplier != nil {
		inputs.ReflectanceMultiplier = *d.ReflectanceMultiplier
	}
	if d.MFP != nil {
		inputs.MeanFreePath = core.Spectrum(*d.MFP)
	}
	if d.MFPMultiplier != nil {
		inputs.MFPMultiplier = *d.MFPMultiplier
	}
	if d.IOR != nil {
		inputs.IOR = *d.IOR
	}
	if d.FresnelWeight != nil {
		inputs.FresnelWeight = *d.FresnelWeight
	}
	if d.ZeroScatteringWeight != nil {
		inputs.ZeroScatteringWeight = *d.ZeroScatteringWeight
	}
	if d.SingleScatteringWeight != nil {
		inputs.SingleScatteringWeight = *d.SingleScatteringWeight
	}
	if d.MultipleScatteringWeight != nil {
		inputs.MultipleScatteringWeight = *d.MultipleScatteringWeight
	}

	if err := validateBounds(&inputs); err != nil {
		return MaterialInputs{}, err
	}
	return inputs, nil
}

func validateBounds(inputs *MaterialInputs) error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"ior", inputs.IOR, 1.0, 2.5},
		{"fresnel_weight", inputs.FresnelWeight, 0.0, 1.0},
		{"zero_scattering_weight", inputs.ZeroScatteringWeight, 0.0, 1.0},
		{"single_scattering_weight", inputs.SingleScatteringWeight, 0.0, 1.0},
		{"multiple_scattering_weight", inputs.MultipleScatteringWeight, 0.0, 1.0},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("material input %q = %v out of bounds [%v, %v]", c.name, c.value, c.min, c.max)
		}
	}
	return nil
}
