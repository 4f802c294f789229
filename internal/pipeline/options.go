package pipeline

import (
	"go-dental-forensics/internal/strategy"
	"go-dental-forensics/pkg/models"
	"go-dental-forensics/pkg/scoring"
)

// Options configures one pipeline run. The zero-value fields of
// DefaultOptions mean: no degradation, adaptive enhancement, seed derived
// from the image fingerprint, default thresholds throughout.
type Options struct {
	// Degradation, when set with a kind other than none, simulates damage
	// before enhancement.
	Degradation *models.DegradationSpec

	// Seed drives degradation randomness. Zero derives the seed from the
	// image fingerprint so runs stay reproducible per image.
	Seed int64

	// Enhancement selects the correction factors; nil means adaptive.
	Enhancement strategy.EnhancementStrategy

	Detector   DetectorConfig
	Classifier ClassifierThresholds
	Scoring    scoring.Thresholds
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{
		Detector:   DefaultDetectorConfig(),
		Classifier: DefaultClassifierThresholds(),
		Scoring:    scoring.DefaultThresholds(),
	}
}

// WithDegradation enables damage simulation for the run.
func (o Options) WithDegradation(kind models.DegradationKind, intensity float64) Options {
	o.Degradation = &models.DegradationSpec{Kind: kind, Intensity: intensity}
	return o
}

// WithSeed fixes the degradation RNG seed.
func (o Options) WithSeed(seed int64) Options {
	o.Seed = seed
	return o
}

// WithEnhancement sets the enhancement strategy.
func (o Options) WithEnhancement(s strategy.EnhancementStrategy) Options {
	o.Enhancement = s
	return o
}

// WithFixedEnhancement fixes both enhancement factors.
func (o Options) WithFixedEnhancement(contrast, sharpness float64) Options {
	o.Enhancement = strategy.NewFixedStrategy(contrast, sharpness)
	return o
}

// WithScoring overrides the scoring thresholds.
func (o Options) WithScoring(t scoring.Thresholds) Options {
	o.Scoring = t
	return o
}

// WithClassifier overrides the classifier boundary table.
func (o Options) WithClassifier(t ClassifierThresholds) Options {
	o.Classifier = t
	return o
}

// WithDetector overrides the detection thresholds.
func (o Options) WithDetector(cfg DetectorConfig) Options {
	o.Detector = cfg
	return o
}
