package sss

import (
	"errors"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
)

// ModelName identifies the random-walk BSSRDF in the host material registry
const ModelName = "randomwalk_bssrdf"

// ErrUnsupported marks an operation a model deliberately does not implement.
// Callers check it with errors.Is.
var ErrUnsupported = errors.New("sss: operation not supported by this model")

// MaterialModel is the capability surface of one BSSRDF strategy. Multiple
// strategies can coexist behind it without inheritance chains.
type MaterialModel interface {
	// Name returns the registry identifier of the model
	Name() string

	// Prepare derives the per-evaluation coefficients from the raw inputs
	Prepare(inputs MaterialInputs) *Material

	// Sample computes one exit sample for a ray entering at entry
	Sample(mat *Material, entry core.SurfacePoint, scene core.Intersector, sampler core.Sampler) (WalkResult, WalkStatus)

	// Evaluate computes the closed-form BSSRDF value between two boundary
	// points. Models without a closed form return ErrUnsupported.
	Evaluate(mat *Material, outgoing, incoming core.SurfacePoint) (core.Spectrum, error)
}

// RandomWalkModel adapts RandomWalk to the MaterialModel interface
type RandomWalkModel struct {
	walk *RandomWalk
}

// NewRandomWalkModel wraps a walk sampler as a material model
func NewRandomWalkModel(walk *RandomWalk) *RandomWalkModel {
	return &RandomWalkModel{walk: walk}
}

// Name returns the registry identifier of the model
func (m *RandomWalkModel) Name() string {
	return ModelName
}

// Prepare derives the optical coefficients once; the result is immutable and
// may be shared between concurrent Sample calls.
func (m *RandomWalkModel) Prepare(inputs MaterialInputs) *Material {
	return &Material{
		Inputs: inputs,
		Coeffs: Precompute(&inputs),
	}
}

// Sample runs one random walk
func (m *RandomWalkModel) Sample(mat *Material, entry core.SurfacePoint, scene core.Intersector, sampler core.Sampler) (WalkResult, WalkStatus) {
	return m.walk.Sample(mat, entry, scene, sampler)
}

// Evaluate is not provided by the random-walk model: the walk is a sampling
// procedure with no closed-form value between two given points.
func (m *RandomWalkModel) Evaluate(mat *Material, outgoing, incoming core.SurfacePoint) (core.Spectrum, error) {
	return core.Spectrum{}, ErrUnsupported
}
