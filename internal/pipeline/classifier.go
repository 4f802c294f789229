package pipeline

import (
	"math"

	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

// ClassifierThresholds is the named decision boundary table for condition
// classification. Classification is an ordered rule list over local pixel
// statistics, not a trained model; every boundary is a tunable constant so
// tests can target each branch directly.
type ClassifierThresholds struct {
	// BrightDelta above the image baseline mean marks a restoration
	// (metallic/ceramic material is radiopaque); CrownDelta marks the
	// brighter full-coverage crown.
	BrightDelta float64 `yaml:"bright_delta"`
	CrownDelta  float64 `yaml:"crown_delta"`

	// UniformVarianceMax is the most texture a restoration surface shows.
	UniformVarianceMax float64 `yaml:"uniform_variance_max"`

	// MissingVarianceMax and BackgroundDelta identify a socket with no
	// tooth: near-flat pixels at background intensity.
	MissingVarianceMax float64 `yaml:"missing_variance_max"`
	BackgroundDelta    float64 `yaml:"background_delta"`

	// HighVarianceMin marks irregular edge patterns (decay or impaction).
	HighVarianceMin float64 `yaml:"high_variance_min"`

	// JawBoundaryFraction of the image height near the top or bottom edge
	// counts as the jaw boundary; high-variance regions there classify as
	// impacted rather than carious.
	JawBoundaryFraction float64 `yaml:"jaw_boundary_fraction"`

	// Root canal detection: a vertically elongated region whose central
	// column reads brighter than its surroundings by RootCanalStreakDelta.
	RootCanalMinAspect   float64 `yaml:"root_canal_min_aspect"`
	RootCanalStreakDelta float64 `yaml:"root_canal_streak_delta"`

	// ConfidenceBase is the confidence assigned at a decision boundary;
	// margin above the boundary scales linearly toward 100.
	ConfidenceBase float64 `yaml:"confidence_base"`
}

// DefaultClassifierThresholds returns the boundary table used when no
// configuration file overrides it.
func DefaultClassifierThresholds() ClassifierThresholds {
	return ClassifierThresholds{
		BrightDelta:          40,
		CrownDelta:           75,
		UniformVarianceMax:   500,
		MissingVarianceMax:   120,
		BackgroundDelta:      25,
		HighVarianceMin:      1800,
		JawBoundaryFraction:  0.12,
		RootCanalMinAspect:   1.6,
		RootCanalStreakDelta: 25,
		ConfidenceBase:       50,
	}
}

// falsePositiveWeights breaks ties between classes whose margins are equal:
// the class with the smaller historical false-positive weight wins. The
// weights order healthy < filled < crowned < missing < root_canal < carious
// < impacted, reflecting how often each label is asserted wrongly in
// deterministic screening.
var falsePositiveWeights = map[models.ToothCondition]float64{
	models.ConditionHealthy:   0.05,
	models.ConditionFilled:    0.10,
	models.ConditionCrowned:   0.12,
	models.ConditionMissing:   0.15,
	models.ConditionRootCanal: 0.18,
	models.ConditionCarious:   0.20,
	models.ConditionImpacted:  0.25,
}

// Baseline holds whole-image reference statistics the rules compare against.
type Baseline struct {
	Mean       float64
	Std        float64
	Background float64
}

// ComputeBaseline derives the reference statistics from the buffer: global
// mean and spread, plus the background intensity sampled from a two-pixel
// border frame.
func ComputeBaseline(buf *imaging.PixelBuffer) Baseline {
	mean, std := buf.Stats()

	var sum float64
	var count int
	border := 2
	if buf.Height < 2*border || buf.Width < 2*border {
		border = 1
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if y >= border && y < buf.Height-border && x >= border && x < buf.Width-border {
				continue
			}
			sum += float64(buf.At(x, y))
			count++
		}
	}
	background := mean
	if count > 0 {
		background = sum / float64(count)
	}
	return Baseline{Mean: mean, Std: std, Background: background}
}

// Classifier assigns condition labels to detected tooth regions.
type Classifier struct {
	thresholds ClassifierThresholds
}

// NewClassifier creates a classifier with the default boundary table.
func NewClassifier() *Classifier {
	return NewClassifierWithThresholds(DefaultClassifierThresholds())
}

// NewClassifierWithThresholds creates a classifier with a custom table.
func NewClassifierWithThresholds(t ClassifierThresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// candidate is one rule's verdict: the label it would assign and how far the
// region's statistics sit inside the rule's boundary, normalized to [0,1].
type candidate struct {
	condition models.ToothCondition
	margin    float64
}

// Classify runs the decision procedure for one region. Identical region
// statistics always yield the identical (condition, confidence) pair. The
// candidate with the largest boundary margin wins; exact ties resolve by the
// smaller false-positive weight.
func (c *Classifier) Classify(buf *imaging.PixelBuffer, region models.ToothRegion, baseline Baseline) models.ToothAssessment {
	t := c.thresholds
	mean := region.MeanIntensity
	variance := region.Variance

	var candidates []candidate

	// Rule 1: missing — near-flat pixels at background intensity.
	if variance <= t.MissingVarianceMax && math.Abs(mean-baseline.Background) <= t.BackgroundDelta {
		candidates = append(candidates, candidate{
			condition: models.ConditionMissing,
			margin: math.Min(
				(t.MissingVarianceMax-variance)/t.MissingVarianceMax,
				(t.BackgroundDelta-math.Abs(mean-baseline.Background))/t.BackgroundDelta,
			),
		})
	}

	// Rules 2 and 3: bright, uniform restoration — crowned past CrownDelta,
	// filled between BrightDelta and CrownDelta.
	if variance <= t.UniformVarianceMax && mean >= baseline.Mean+t.BrightDelta {
		uniformMargin := (t.UniformVarianceMax - variance) / t.UniformVarianceMax
		if mean >= baseline.Mean+t.CrownDelta {
			candidates = append(candidates, candidate{
				condition: models.ConditionCrowned,
				margin: math.Min(uniformMargin,
					clamp01((mean-baseline.Mean-t.CrownDelta)/t.CrownDelta)),
			})
		} else {
			candidates = append(candidates, candidate{
				condition: models.ConditionFilled,
				margin: math.Min(uniformMargin, math.Min(
					clamp01((mean-baseline.Mean-t.BrightDelta)/t.BrightDelta),
					clamp01((baseline.Mean+t.CrownDelta-mean)/t.BrightDelta))),
			})
		}
	}

	// Rule 4: high variance — impacted near the jaw boundary, carious
	// elsewhere.
	if variance >= t.HighVarianceMin {
		margin := clamp01((variance - t.HighVarianceMin) / t.HighVarianceMin)
		condition := models.ConditionCarious
		if c.nearJawBoundary(buf, region) {
			condition = models.ConditionImpacted
		}
		candidates = append(candidates, candidate{condition: condition, margin: margin})
	}

	// Rule 5: root_canal — an elongated region with a medium-density
	// bright streak down its center.
	aspect := 0.0
	if region.Width > 0 {
		aspect = float64(region.Height) / float64(region.Width)
	}
	if aspect >= t.RootCanalMinAspect {
		if streak := c.centerStreakExcess(buf, region); streak >= t.RootCanalStreakDelta {
			candidates = append(candidates, candidate{
				condition: models.ConditionRootCanal,
				margin: math.Min(
					clamp01((streak-t.RootCanalStreakDelta)/t.RootCanalStreakDelta),
					clamp01((aspect-t.RootCanalMinAspect)/t.RootCanalMinAspect)),
			})
		}
	}

	// Default: healthy when no rule triggered, with margin equal to the
	// normalized distance to the nearest untriggered rule boundary.
	if len(candidates) == 0 {
		candidates = append(candidates, candidate{
			condition: models.ConditionHealthy,
			margin:    c.healthyMargin(mean, variance, baseline),
		})
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.margin > best.margin ||
			(cand.margin == best.margin && falsePositiveWeights[cand.condition] < falsePositiveWeights[best.condition]) {
			best = cand
		}
	}

	return models.ToothAssessment{
		Region:     region,
		Condition:  best.condition,
		Confidence: clampScore(t.ConfidenceBase + (100-t.ConfidenceBase)*best.margin),
	}
}

// nearJawBoundary reports whether the region touches the top or bottom
// JawBoundaryFraction of the frame, the marker that favors impaction over
// decay.
func (c *Classifier) nearJawBoundary(buf *imaging.PixelBuffer, region models.ToothRegion) bool {
	boundary := int(c.thresholds.JawBoundaryFraction * float64(buf.Height))
	return region.Y <= boundary || region.Y+region.Height >= buf.Height-boundary
}

// centerStreakExcess measures how much brighter the region's central column
// band reads than the region as a whole. A root canal filling shows as a
// narrow vertical streak of elevated density.
func (c *Classifier) centerStreakExcess(buf *imaging.PixelBuffer, region models.ToothRegion) float64 {
	if region.Width < 3 || region.Height < 1 {
		return 0
	}
	streakWidth := region.Width / 5
	if streakWidth < 1 {
		streakWidth = 1
	}
	x0 := region.X + (region.Width-streakWidth)/2
	x1 := x0 + streakWidth

	var sum float64
	var count int
	for y := region.Y; y < region.Y+region.Height; y++ {
		for x := x0; x < x1; x++ {
			sum += float64(buf.At(x, y))
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum/float64(count) - region.MeanIntensity
}

// healthyMargin is the normalized distance from the region's statistics to
// the nearest boundary of the non-healthy rules.
func (c *Classifier) healthyMargin(mean, variance float64, baseline Baseline) float64 {
	t := c.thresholds

	distBright := clamp01((baseline.Mean + t.BrightDelta - mean) / t.BrightDelta)
	distHighVar := clamp01((t.HighVarianceMin - variance) / t.HighVarianceMin)

	// Distance to the missing rule is how far the statistics sit outside
	// its closest violated condition.
	distMissing := math.Max(
		clamp01((variance-t.MissingVarianceMax)/t.MissingVarianceMax),
		clamp01((math.Abs(mean-baseline.Background)-t.BackgroundDelta)/t.BackgroundDelta),
	)

	return math.Min(distBright, math.Min(distHighVar, distMissing))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
