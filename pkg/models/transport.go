package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Factor is an enhancement factor that is either a fixed value or "auto",
// in which case the pipeline derives it from the buffer's histogram.
type Factor struct {
	Auto  bool
	Value float64
}

// UnmarshalJSON accepts the literal string "auto" or a JSON number.
func (f *Factor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "auto" {
			*f = Factor{Auto: true}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("enhancement factor must be \"auto\" or a number, got %q", s)
		}
		*f = Factor{Value: v}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("enhancement factor must be \"auto\" or a number: %w", err)
	}
	*f = Factor{Value: v}
	return nil
}

// MarshalJSON writes "auto" or the numeric value.
func (f Factor) MarshalJSON() ([]byte, error) {
	if f.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(f.Value)
}

// EnhancementRequest selects enhancement factors for a pipeline run.
// Omitted factors default to auto.
type EnhancementRequest struct {
	Contrast  *Factor `json:"contrast,omitempty"`
	Sharpness *Factor `json:"sharpness,omitempty"`
}

// AnalysisRequest is the input boundary of the analysis service. Exactly one
// of ImageURL, ImageBase64, or Sample selects the input image.
type AnalysisRequest struct {
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Sample      string `json:"sample,omitempty"`

	Degradation *DegradationSpec    `json:"degradation,omitempty"`
	Enhancement *EnhancementRequest `json:"enhancement,omitempty"`

	// Seed drives the degradation simulation's pseudo-random choices.
	// Zero means derive the seed from the image fingerprint.
	Seed int64 `json:"seed,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by the HTTP layer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
