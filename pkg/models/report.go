package models

import "time"

// DegradationKind identifies one of the simulated damage modes applied to
// evidence images before analysis.
type DegradationKind string

const (
	DegradationNone    DegradationKind = "none"
	DegradationThermal DegradationKind = "thermal"
	DegradationWater   DegradationKind = "water"
	DegradationTrauma  DegradationKind = "trauma"
)

// IsValid reports whether the kind is one of the recognized degradation modes.
func (k DegradationKind) IsValid() bool {
	switch k {
	case DegradationNone, DegradationThermal, DegradationWater, DegradationTrauma:
		return true
	}
	return false
}

// DegradationSpec selects a damage simulation. Intensity must lie in [0,1].
type DegradationSpec struct {
	Kind      DegradationKind `json:"kind" yaml:"kind"`
	Intensity float64         `json:"intensity" yaml:"intensity"`
}

// DegradationApplied records the parameters a simulation actually used,
// so a report reader can reproduce the degraded buffer bit for bit.
type DegradationApplied struct {
	Kind       DegradationKind `json:"kind"`
	Intensity  float64         `json:"intensity"`
	BlurRadius float64         `json:"blur_radius"`
	NoiseSigma float64         `json:"noise_sigma,omitempty"`
	PatchCount int             `json:"patch_count,omitempty"`
	PatchSize  int             `json:"patch_size,omitempty"`
	Seed       int64           `json:"seed"`
}

// EnhancementApplied records the correction factors applied to a buffer.
type EnhancementApplied struct {
	ContrastFactor  float64 `json:"contrast_factor"`
	SharpnessFactor float64 `json:"sharpness_factor"`
	Strategy        string  `json:"strategy"`
}

// QualityMetrics holds the scalar quality scores computed from a pixel
// buffer. All values lie in [0,100]. ForensicUtility is derived from the
// other scores plus tooth-level data and is filled in by the finalize step
// after classification; it is never set independently.
type QualityMetrics struct {
	Clarity                  float64 `json:"clarity"`
	Sharpness                float64 `json:"sharpness"`
	ForensicUtility          float64 `json:"forensic_utility"`
	IdentificationConfidence float64 `json:"identification_confidence"`
}

// ToothCondition is the classification label assigned to a tooth region.
type ToothCondition string

const (
	ConditionHealthy   ToothCondition = "healthy"
	ConditionFilled    ToothCondition = "filled"
	ConditionCrowned   ToothCondition = "crowned"
	ConditionRootCanal ToothCondition = "root_canal"
	ConditionImpacted  ToothCondition = "impacted"
	ConditionMissing   ToothCondition = "missing"
	ConditionCarious   ToothCondition = "carious"
)

// ToothRegion is a detected bounding area believed to contain one tooth.
// Regions are non-overlapping and indexed left to right, matching the
// anatomical numbering convention.
type ToothRegion struct {
	Index         int     `json:"index"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MeanIntensity float64 `json:"mean_intensity"`
	Variance      float64 `json:"variance"`
}

// ToothAssessment pairs a detected region with its condition label. One
// assessment exists per region; the two are created together.
type ToothAssessment struct {
	Region     ToothRegion    `json:"region"`
	FDINumber  string         `json:"fdi_number,omitempty"`
	ToothName  string         `json:"tooth_name,omitempty"`
	ToothType  string         `json:"tooth_type,omitempty"`
	Condition  ToothCondition `json:"condition"`
	Confidence float64        `json:"confidence"`
}

// ReportSummary aggregates assessment counts the way a forensic report
// presents them.
type ReportSummary struct {
	TotalTeeth          int     `json:"total_teeth"`
	HealthyCount        int     `json:"healthy_count"`
	RestoredCount       int     `json:"restored_count"`
	AnomalyCount        int     `json:"anomaly_count"`
	DistinctiveFeatures int     `json:"distinctive_features"`
	DentalHealthScore   float64 `json:"dental_health_score"`
	ConclusionTier      string  `json:"conclusion_tier"`
}

// ForensicReport is the boundary object produced by one pipeline run.
// It is built once and never mutated afterward; rendering into human-readable
// or document form is the caller's concern.
type ForensicReport struct {
	Fingerprint string    `json:"fingerprint"`
	Timestamp   time.Time `json:"timestamp"`

	Degradation *DegradationApplied `json:"degradation,omitempty"`
	Enhancement EnhancementApplied  `json:"enhancement"`

	// BaselineMetrics describe the buffer before enhancement (after any
	// degradation); Metrics describe the enhanced buffer the assessments
	// were computed from.
	BaselineMetrics      QualityMetrics `json:"baseline_metrics"`
	Metrics              QualityMetrics `json:"metrics"`
	ClarityImprovement   float64        `json:"clarity_improvement"`
	SharpnessImprovement float64        `json:"sharpness_improvement"`

	Assessments []ToothAssessment `json:"assessments"`
	Summary     ReportSummary     `json:"summary"`

	Verdict                       string  `json:"verdict"`
	InsufficientForIdentification bool    `json:"insufficient_for_identification"`
	ProcessingTimeSec             float64 `json:"processing_time_sec"`
}
