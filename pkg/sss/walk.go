package sss

import (
	"math"

	"go.uber.org/zap"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
	"github.com/dmelnik/go-randomwalk-sss/pkg/material"
)

const (
	// classicalSamplingProb is the probability of picking classical
	// exponential sampling over Dwivedi sampling for a step. Kept low
	// because the isotropic phase function gains little from it.
	classicalSamplingProb = 0.1

	maxWalkIterations = 64
	minRRIteration    = 8
	maxRRProbability  = 0.99

	// Throughput clamp bound applied at exit; near-singular MIS weights
	// can otherwise spike individual channels.
	maxExitThroughput = 2.0
)

// WalkStatus reports how a walk terminated
type WalkStatus int

const (
	// WalkOK means the walk reached the boundary and produced a sample
	WalkOK WalkStatus = iota
	// WalkNoInitialHit means the entry ray never reached the interior boundary
	WalkNoInitialHit
	// WalkDegenerateChannel means the selected channel had zero scattering
	// or zero throughput, or every sampling strategy assigned zero density
	WalkDegenerateChannel
	// WalkLostInMedium means the iteration cap was exceeded
	WalkLostInMedium
	// WalkRouletteDeath means the walk was terminated stochastically.
	// Not an error: the inverse-probability correction on surviving walks
	// keeps the estimator unbiased.
	WalkRouletteDeath
)

// String returns a short diagnostic name for the status
func (s WalkStatus) String() string {
	switch s {
	case WalkOK:
		return "ok"
	case WalkNoInitialHit:
		return "no-initial-hit"
	case WalkDegenerateChannel:
		return "degenerate-channel"
	case WalkLostInMedium:
		return "lost-in-medium"
	case WalkRouletteDeath:
		return "roulette-death"
	default:
		return "unknown"
	}
}

// Material bundles the raw inputs of one material evaluation with the
// coefficients derived from them. Read-only during walks, so a single
// Material may serve concurrent Sample calls.
type Material struct {
	Inputs MaterialInputs
	Coeffs PrecomputedCoefficients
}

// WalkResult is the outcome of one successful walk. Ownership transfers to
// the caller; the walk keeps no reference to it.
type WalkResult struct {
	Exit       core.SurfacePoint // boundary point, flipped to the outgoing side
	Throughput core.Spectrum     // spectral weight of the exiting light
	Steps      int               // free flights taken, initial flight included
	ExitSample material.BRDFSample
}

// RandomWalk samples exit points on a translucent boundary by tracing a
// stochastic walk through the medium. The zero value is not usable; create
// instances with NewRandomWalk. A RandomWalk is immutable after construction
// and safe for concurrent use.
type RandomWalk struct {
	exitBRDF       *material.Lambertian
	log            *zap.Logger
	rrMinIteration int
}

// Options tunes walk behavior. The zero value selects the defaults.
type Options struct {
	// RRMinIteration is the iteration after which Russian roulette starts.
	// Values past the iteration cap disable roulette entirely; the
	// estimator stays unbiased either way.
	RRMinIteration int
}

// NewRandomWalk creates a walk sampler with default options. The coupled
// exit BRDF uses unit reflectance: the walk itself already encodes the
// material's reflectance.
func NewRandomWalk(log *zap.Logger) *RandomWalk {
	return NewRandomWalkWithOptions(log, Options{})
}

// NewRandomWalkWithOptions creates a walk sampler with explicit options
func NewRandomWalkWithOptions(log *zap.Logger, opts Options) *RandomWalk {
	if log == nil {
		log = zap.NewNop()
	}
	rrMin := opts.RRMinIteration
	if rrMin <= 0 {
		rrMin = minRRIteration
	}
	return &RandomWalk{
		exitBRDF:       material.NewLambertian(core.SplatSpectrum(1.0)),
		log:            log,
		rrMinIteration: rrMin,
	}
}

// Sample walks from the entry point through the medium until the walk exits
// through the boundary or dies. entry carries the surface position with
// normals facing the outside; scene resolves boundary crossings from inside.
// On any status other than WalkOK the result must not be used.
func (w *RandomWalk) Sample(
	mat *Material,
	entry core.SurfacePoint,
	scene core.Intersector,
	sampler core.Sampler,
) (WalkResult, WalkStatus) {
	c := &mat.Coeffs
	throughput := core.SplatSpectrum(1.0)

	// Pick the initial direction cosine-weighted about the inward normal.
	inward := entry.ShadingNormal.Negate()
	ray := core.NewRay(entry.Position, core.SampleCosineHemisphere(inward, sampler.Get2D()))
	depth := entry.Depth + 1

	// Choose the color channel used for distance sampling. Throughput is
	// all-ones here, so the first selection is uniform.
	channelPDF, channelCDF, _ := throughput.BuildChannelCDF()
	channel := core.SampleChannelCDF(channelCDF, sampler.Get1D())

	// The initial flight always uses classical sampling: there is no slab
	// orientation to bias toward until the far boundary is known.
	distance := core.SampleExponential(sampler.Get1D(), c.Extinction[channel])

	// Trace the initial ray until the surface is reached from inside.
	exit, hitBoundary := scene.Trace(ray, core.RayEpsilon, math.Inf(1))
	if !hitBoundary {
		w.log.Debug("walk failed", zap.String("status", WalkNoInitialHit.String()))
		return WalkResult{}, WalkNoInitialHit
	}
	exit.Time = entry.Time
	exit.Depth = depth
	rayLength := exit.Distance
	transmitted := rayLength <= distance

	flightLength := distance
	if transmitted {
		flightLength = rayLength
	}
	transmission, density := classicalDensity(flightLength, c, channelPDF, transmitted)
	if density <= 0 {
		return WalkResult{}, WalkDegenerateChannel
	}
	throughput = transmission.Scale(1.0 / density)

	// Fix the slab orientations for the whole walk: the entry surface on the
	// near side, the first crossing on the far side. Dwivedi sampling biases
	// toward whichever boundary the first scattering point is closer to.
	// The event "first flight passed the half-chord" has probability
	// exp(-sigma*L/2), which is exactly the weight the far-oriented density
	// carries in the MIS blend, keeping the mixture consistent with the
	// orientation selection.
	biasBlend := math.Exp(-c.Extinction[channel] * rayLength * 0.5)
	nearNormal := entry.GeometricNormal
	farNormal := exit.GeometricNormal.Negate()
	slabNormal := farNormal
	if distance < 0.5*rayLength {
		slabNormal = nearNormal
	}
	position := ray.At(distance)

	iteration := 0
	for !transmitted {
		iteration++
		if iteration > maxWalkIterations {
			w.log.Debug("walk failed",
				zap.String("status", WalkLostInMedium.String()),
				zap.Int("iterations", iteration))
			return WalkResult{}, WalkLostInMedium
		}

		if iteration > w.rrMinIteration {
			// Russian roulette: survival probability tracks the remaining
			// throughput, surviving walks are compensated to stay unbiased.
			survival := math.Min(throughput.MaxComponent(), maxRRProbability)
			if survival <= 0 || sampler.Get1D() >= survival {
				return WalkResult{}, WalkRouletteDeath
			}
			throughput = throughput.Scale(1.0 / survival)
		}

		// Re-select the channel from the current throughput distribution.
		var ok bool
		channelPDF, channelCDF, ok = throughput.BuildChannelCDF()
		if !ok {
			return WalkResult{}, WalkDegenerateChannel
		}
		channel = core.SampleChannelCDF(channelCDF, sampler.Get1D())
		if c.Scattering[channel] == 0 || throughput[channel] == 0 {
			w.log.Debug("walk failed",
				zap.String("status", WalkDegenerateChannel.String()),
				zap.Int("channel", channel))
			return WalkResult{}, WalkDegenerateChannel
		}

		// Determine whether this step uses Dwivedi (biased) sampling.
		biased := classicalSamplingProb < sampler.Get1D()

		// Find the next walk direction.
		directionSample := sampler.Get2D()
		var direction core.Vec3
		if biased {
			phase := NewDwivediPhaseFunction(1.0 / c.RcpDiffusionLength[channel])
			direction = phase.Sample(slabNormal, directionSample)
		} else {
			direction = core.SampleOnUnitSphere(directionSample)
		}

		// Scattering event: update the throughput by the albedo.
		throughput = throughput.Mul(c.Albedo)

		ray = core.NewRay(position, direction)
		depth++

		// Sample the flight length, assuming an unbounded medium. The
		// effective extinction stays positive for any direction because
		// the reciprocal diffusion length is bounded below 1.
		cosine := direction.Dot(slabNormal)
		sigma := c.Extinction[channel]
		if biased {
			sigma *= 1.0 - cosine*c.RcpDiffusionLength[channel]
		}
		distance = core.SampleExponential(sampler.Get1D(), sigma)

		// Trace up to the sampled distance; a hit means the walk leaves
		// the medium and the realized flight is the true hit distance.
		hit, hitBoundary := scene.Trace(ray, core.RayEpsilon, distance)
		transmitted = hitBoundary
		position = ray.At(distance)
		if transmitted {
			exit = hit
			exit.Time = entry.Time
			exit.Depth = depth
			distance = hit.Distance
		}

		// Correct the throughput by the combined density of all the
		// strategies that could have produced this step.
		transmission, weight := stepMISWeight(
			distance, c, channelPDF, transmitted, nearNormal, farNormal, direction, biasBlend)
		if weight <= 0 {
			return WalkResult{}, WalkDegenerateChannel
		}
		throughput = throughput.Mul(transmission).Scale(1.0 / weight)
	}

	throughput = throughput.Clamp(0.0, maxExitThroughput)

	// Scattering-order weights are mutually exclusive on the step count;
	// the initial flight counts as step one.
	steps := iteration + 1
	switch {
	case steps == 1:
		throughput = throughput.Scale(mat.Inputs.ZeroScatteringWeight)
	case steps == 2:
		throughput = throughput.Scale(mat.Inputs.SingleScatteringWeight)
	default:
		throughput = throughput.Scale(mat.Inputs.MultipleScatteringWeight)
	}

	// Couple the exit point to the diffuse reflection model: flip to the
	// outgoing side and sample an outgoing direction there.
	exit.FlipSide()
	// The exit draw fails only on a zero-pdf grazing direction; the walk
	// then has no usable sample and reports it under the degenerate status.
	exitSample, ok := w.exitBRDF.Sample(exit.ShadingNormal, sampler)
	if !ok {
		return WalkResult{}, WalkDegenerateChannel
	}

	return WalkResult{
		Exit:       exit,
		Throughput: throughput,
		Steps:      steps,
		ExitSample: exitSample,
	}, WalkOK
}
