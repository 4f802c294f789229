// Package strategy selects enhancement correction factors for a buffer,
// either adaptively from its histogram or from caller-fixed values.
package strategy

import (
	"go-dental-forensics/internal/imaging"
)

// Adaptive contrast derivation constants. The factor is inversely
// proportional to the buffer's current standard deviation: flat, washed-out
// evidence gets a stronger stretch.
const (
	// ReferenceStdDev is the spread treated as fully contrasted; the
	// adaptive contrast factor is ReferenceStdDev / currentStdDev.
	ReferenceStdDev = 64.0

	MinContrastFactor = 1.0
	MaxContrastFactor = 3.0

	// DefaultSharpnessGain is the unsharp-mask amount used when the caller
	// does not fix one.
	DefaultSharpnessGain = 1.5
)

// EnhancementStrategy yields the contrast and sharpness factors to apply to
// a buffer.
type EnhancementStrategy interface {
	Factors(buf *imaging.PixelBuffer) (contrast, sharpness float64)
	Name() string
}

// AdaptiveStrategy derives the contrast factor from the buffer's histogram
// standard deviation, clamped to [MinContrastFactor, MaxContrastFactor].
type AdaptiveStrategy struct{}

// NewAdaptiveStrategy creates the histogram-driven strategy.
func NewAdaptiveStrategy() EnhancementStrategy {
	return AdaptiveStrategy{}
}

func (AdaptiveStrategy) Factors(buf *imaging.PixelBuffer) (float64, float64) {
	_, std := buf.Stats()

	contrast := MaxContrastFactor
	if std > 0 {
		contrast = ReferenceStdDev / std
	}
	if contrast < MinContrastFactor {
		contrast = MinContrastFactor
	}
	if contrast > MaxContrastFactor {
		contrast = MaxContrastFactor
	}
	return contrast, DefaultSharpnessGain
}

func (AdaptiveStrategy) Name() string { return "adaptive" }

// FixedStrategy applies caller-chosen factors unchanged.
type FixedStrategy struct {
	Contrast  float64
	Sharpness float64
}

// NewFixedStrategy creates a strategy returning the given factors.
func NewFixedStrategy(contrast, sharpness float64) EnhancementStrategy {
	return FixedStrategy{Contrast: contrast, Sharpness: sharpness}
}

func (s FixedStrategy) Factors(*imaging.PixelBuffer) (float64, float64) {
	return s.Contrast, s.Sharpness
}

func (FixedStrategy) Name() string { return "fixed" }

// MixedStrategy fixes one factor and derives the other adaptively. Covers
// requests like {contrast: 2.0, sharpness: "auto"}.
type MixedStrategy struct {
	ContrastFixed  bool
	Contrast       float64
	SharpnessFixed bool
	Sharpness      float64
}

func (s MixedStrategy) Factors(buf *imaging.PixelBuffer) (float64, float64) {
	contrast, sharpness := AdaptiveStrategy{}.Factors(buf)
	if s.ContrastFixed {
		contrast = s.Contrast
	}
	if s.SharpnessFixed {
		sharpness = s.Sharpness
	}
	return contrast, sharpness
}

func (MixedStrategy) Name() string { return "mixed" }
