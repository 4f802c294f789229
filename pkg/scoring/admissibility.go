// Package scoring aggregates quality metrics and tooth assessments into the
// final forensic report and its admissibility verdict.
package scoring

import (
	"go-dental-forensics/pkg/models"
)

// Verdict strings for the admissibility assessment.
const (
	VerdictAdmissible    = "suitable for legal proceedings"
	VerdictSupplementary = "supplementary evidence only"
)

// Conclusion tiers graded from identification confidence.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierModerate  = "moderate"
)

// Thresholds names every scoring boundary so a test suite can exercise the
// boundary values exactly. None of these appear inline in the rules.
type Thresholds struct {
	// AdmissibilityMin is the bar both forensic utility and identification
	// confidence must meet for the admissible verdict.
	AdmissibilityMin float64 `yaml:"admissibility_min"`

	// ConfidentAssessment is the per-tooth confidence above which an
	// assessment counts toward forensic utility.
	ConfidentAssessment float64 `yaml:"confident_assessment"`

	// ExcellentMin and GoodMin grade the conclusion tier from
	// identification confidence.
	ExcellentMin float64 `yaml:"excellent_min"`
	GoodMin      float64 `yaml:"good_min"`
}

// DefaultThresholds returns the scoring boundaries used when no
// configuration file overrides them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AdmissibilityMin:    70,
		ConfidentAssessment: 60,
		ExcellentMin:        90,
		GoodMin:             75,
	}
}

// Scorer turns metrics and assessments into a forensic report.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with default thresholds.
func NewScorer() *Scorer {
	return NewScorerWithThresholds(DefaultThresholds())
}

// NewScorerWithThresholds creates a scorer with custom thresholds.
func NewScorerWithThresholds(t Thresholds) *Scorer {
	return &Scorer{thresholds: t}
}

// Thresholds returns the scorer's configured boundaries.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Verdict applies the admissibility rule: both forensic utility and
// identification confidence at or above the configured minimum.
func (s *Scorer) Verdict(m models.QualityMetrics) string {
	if m.ForensicUtility >= s.thresholds.AdmissibilityMin &&
		m.IdentificationConfidence >= s.thresholds.AdmissibilityMin {
		return VerdictAdmissible
	}
	return VerdictSupplementary
}

// Summarize aggregates assessment counts and grades the conclusion tier.
func (s *Scorer) Summarize(assessments []models.ToothAssessment, m models.QualityMetrics) models.ReportSummary {
	summary := models.ReportSummary{TotalTeeth: len(assessments)}

	for _, a := range assessments {
		switch a.Condition {
		case models.ConditionHealthy:
			summary.HealthyCount++
		case models.ConditionFilled, models.ConditionCrowned, models.ConditionRootCanal:
			summary.RestoredCount++
		case models.ConditionImpacted, models.ConditionMissing, models.ConditionCarious:
			summary.AnomalyCount++
		}
	}
	summary.DistinctiveFeatures = summary.RestoredCount + summary.AnomalyCount

	if summary.TotalTeeth > 0 {
		summary.DentalHealthScore = float64(summary.HealthyCount) / float64(summary.TotalTeeth) * 100
	}

	switch {
	case m.IdentificationConfidence >= s.thresholds.ExcellentMin:
		summary.ConclusionTier = TierExcellent
	case m.IdentificationConfidence >= s.thresholds.GoodMin:
		summary.ConclusionTier = TierGood
	default:
		summary.ConclusionTier = TierModerate
	}
	return summary
}

// BuildReport assembles the boundary object consumed by reporting
// collaborators. A run flagged insufficient keeps its metrics but carries no
// assessments and never earns the admissible verdict.
func (s *Scorer) BuildReport(
	fingerprint string,
	degradation *models.DegradationApplied,
	enhancement models.EnhancementApplied,
	baseline, final models.QualityMetrics,
	assessments []models.ToothAssessment,
	insufficient bool,
) *models.ForensicReport {
	report := &models.ForensicReport{
		Fingerprint:                   fingerprint,
		Degradation:                   degradation,
		Enhancement:                   enhancement,
		BaselineMetrics:               baseline,
		Metrics:                       final,
		ClarityImprovement:            final.Clarity - baseline.Clarity,
		SharpnessImprovement:          final.Sharpness - baseline.Sharpness,
		Assessments:                   assessments,
		Summary:                       s.Summarize(assessments, final),
		InsufficientForIdentification: insufficient,
	}

	if insufficient {
		report.Verdict = VerdictSupplementary
	} else {
		report.Verdict = s.Verdict(final)
	}
	return report
}
