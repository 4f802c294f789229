package pipeline

import (
	"fmt"
	"math"
	"math/rand"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

const stageDegradation = "degradation"

// Simulation parameter scales. Each damage mode derives its concrete
// parameters from these and the requested intensity.
const (
	thermalMaxBlurRadius   = 3.0
	thermalNoiseSigmaScale = 12.0
	thermalEdgeDarkening   = 0.55

	waterMaxBlurRadius     = 4.0
	waterSpeckleSigmaScale = 0.18

	traumaMaxPatches    = 4
	traumaPatchScale    = 24
	traumaMinPatchSize  = 4
	traumaPatchDarkness = 12
)

// DegradationResult pairs the degraded buffer with the parameters the
// simulation actually applied. It is owned by the pipeline invocation and
// read-only afterward.
type DegradationResult struct {
	Output  *imaging.PixelBuffer
	Applied models.DegradationApplied
}

// Degrade applies the requested damage simulation. The result is fully
// determined by (buffer, spec, seed); all pseudo-random choices draw from an
// RNG built on the explicit seed, never from ambient global state.
func Degrade(buf *imaging.PixelBuffer, spec models.DegradationSpec, seed int64) (*DegradationResult, error) {
	if spec.Intensity < 0 || spec.Intensity > 1 || math.IsNaN(spec.Intensity) {
		return nil, apperrors.NewInvalidIntensityError(stageDegradation, spec.Intensity)
	}

	rng := rand.New(rand.NewSource(seed))
	applied := models.DegradationApplied{
		Kind:      spec.Kind,
		Intensity: spec.Intensity,
		Seed:      seed,
	}

	var out *imaging.PixelBuffer
	switch spec.Kind {
	case models.DegradationThermal:
		out = degradeThermal(buf, spec.Intensity, rng, &applied)
	case models.DegradationWater:
		out = degradeWater(buf, spec.Intensity, rng, &applied)
	case models.DegradationTrauma:
		out = degradeTrauma(buf, spec.Intensity, rng, &applied)
	case models.DegradationNone:
		out = buf.Clone()
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown degradation kind %q", spec.Kind), nil)
	}

	return &DegradationResult{Output: out, Applied: applied}, nil
}

// degradeThermal simulates heat damage: a radial intensity falloff from a
// seeded hotspot (edge pixels darken more than the hotspot), additive grain
// noise, then a low-pass filter.
func degradeThermal(buf *imaging.PixelBuffer, intensity float64, rng *rand.Rand, applied *models.DegradationApplied) *imaging.PixelBuffer {
	w, h := buf.Width, buf.Height

	// Hotspot lands in the central half of the frame.
	cx := float64(w)/4 + rng.Float64()*float64(w)/2
	cy := float64(h)/4 + rng.Float64()*float64(h)/2
	maxDist := math.Hypot(math.Max(cx, float64(w)-cx), math.Max(cy, float64(h)-cy))

	out := buf.Clone()
	if maxDist > 0 && intensity > 0 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
				scale := 1 - intensity*thermalEdgeDarkening*d
				out.Set(x, y, imaging.Clamp(float64(out.At(x, y))*scale))
			}
		}
	}

	// Noise lands before the low-pass filter: heat damage grains the
	// emulsion first and the softened film diffuses the grain.
	sigma := intensity * thermalNoiseSigmaScale
	out = addGaussianNoise(out, sigma, rng)

	// Blur strength scales continuously, so any nonzero intensity smooths
	// at least as much as it grains and quality never rises with damage.
	radius := intensity * thermalMaxBlurRadius
	out = fractionalBlur(out, radius)

	applied.BlurRadius = radius
	applied.NoiseSigma = sigma
	return out
}

// degradeWater simulates moisture diffusion: uniform Gaussian blur plus
// speckle noise, both proportional to intensity.
func degradeWater(buf *imaging.PixelBuffer, intensity float64, rng *rand.Rand, applied *models.DegradationApplied) *imaging.PixelBuffer {
	sigma := intensity * waterSpeckleSigmaScale
	out := addSpeckleNoise(buf, sigma, rng)

	radius := intensity * waterMaxBlurRadius
	out = fractionalBlur(out, radius)

	applied.BlurRadius = radius
	applied.NoiseSigma = sigma
	return out
}

// degradeTrauma simulates physical damage: dark occlusion patches at seeded
// positions, patch count and size proportional to intensity.
func degradeTrauma(buf *imaging.PixelBuffer, intensity float64, rng *rand.Rand, applied *models.DegradationApplied) *imaging.PixelBuffer {
	out := buf.Clone()

	count := int(math.Round(intensity * traumaMaxPatches))
	size := int(intensity * traumaPatchScale)
	if size < traumaMinPatchSize {
		size = traumaMinPatchSize
	}
	if size > out.Width {
		size = out.Width
	}
	if size > out.Height {
		size = out.Height
	}

	for i := 0; i < count; i++ {
		x0 := 0
		if out.Width > size {
			x0 = rng.Intn(out.Width - size)
		}
		y0 := 0
		if out.Height > size {
			y0 = rng.Intn(out.Height - size)
		}
		for y := y0; y < y0+size; y++ {
			for x := x0; x < x0+size; x++ {
				out.Set(x, y, traumaPatchDarkness)
			}
		}
	}

	applied.PatchCount = count
	applied.PatchSize = size
	return out
}
