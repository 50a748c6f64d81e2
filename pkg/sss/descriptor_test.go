package sss

import (
	"strings"
	"testing"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

func TestParseMaterial_Defaults(t *testing.T) {
	inputs, err := ParseMaterial([]byte("{}"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if inputs != DefaultInputs() {
		t.Errorf("empty descriptor should yield the defaults, got %+v", inputs)
	}
}

func TestParseMaterial_Overrides(t *testing.T) {
	doc := `
reflectance: [0.9, 0.5, 0.3]
mfp: [0.1, 0.2, 0.3]
ior: 1.5
single_scattering_weight: 0.5
`
	inputs, err := ParseMaterial([]byte(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if inputs.Reflectance != core.NewSpectrum(0.9, 0.5, 0.3) {
		t.Errorf("reflectance %v", inputs.Reflectance)
	}
	if inputs.MeanFreePath != core.NewSpectrum(0.1, 0.2, 0.3) {
		t.Errorf("mean free path %v", inputs.MeanFreePath)
	}
	if inputs.IOR != 1.5 {
		t.Errorf("ior %f", inputs.IOR)
	}
	if inputs.SingleScatteringWeight != 0.5 {
		t.Errorf("single scattering weight %f", inputs.SingleScatteringWeight)
	}
	// Untouched fields keep their defaults
	if inputs.Weight != 1.0 || inputs.FresnelWeight != 1.0 {
		t.Errorf("defaults not preserved: %+v", inputs)
	}
}

func TestParseMaterial_BoundsViolation(t *testing.T) {
	_, err := ParseMaterial([]byte("ior: 3.0"))
	if err == nil {
		t.Fatal("expected a bounds error for ior=3.0")
	}
	if !strings.Contains(err.Error(), "ior") {
		t.Errorf("error should name the offending input: %v", err)
	}
}

func TestParseMaterial_Malformed(t *testing.T) {
	if _, err := ParseMaterial([]byte("reflectance: [not, a, number]")); err == nil {
		t.Fatal("expected an error for a malformed descriptor")
	}
}

func TestInputMetadata_MatchesDefaults(t *testing.T) {
	specs := InputMetadata()
	if len(specs) != 10 {
		t.Fatalf("expected 10 input specs, got %d", len(specs))
	}

	byName := make(map[string]ParamSpec, len(specs))
	for _, s := range specs {
		byName[s.Name] = s
	}

	d := DefaultInputs()
	if byName["weight"].Default != d.Weight {
		t.Error("weight default mismatch")
	}
	if byName["ior"].Default != d.IOR {
		t.Error("ior default mismatch")
	}
	if spec := byName["ior"]; !spec.Bounded || spec.Min != 1.0 || spec.Max != 2.5 {
		t.Errorf("ior bounds incorrect: %+v", spec)
	}
	for _, name := range []string{"zero_scattering_weight", "single_scattering_weight", "multiple_scattering_weight"} {
		if spec := byName[name]; !spec.Bounded || spec.Min != 0.0 || spec.Max != 1.0 {
			t.Errorf("%s bounds incorrect: %+v", name, spec)
		}
	}
}
