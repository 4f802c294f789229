// Package validation checks analysis requests before they reach the
// pipeline, so malformed input fails with a precise diagnostic instead of a
// plausible-looking score.
package validation

import (
	"encoding/base64"
	"net/url"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/pkg/models"
)

// MaxImageBytes bounds decoded base64 payloads.
const MaxImageBytes = 20 * 1024 * 1024

// ValidateImageURL checks that the URL parses, uses http or https, and has a
// host.
func ValidateImageURL(imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return apperrors.NewValidationError("URL scheme must be http or https", nil)
	}
	if parsed.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}
	return nil
}

// ValidateRequest checks the request shape: exactly one image source, a
// recognized degradation spec, and positive enhancement factors.
func ValidateRequest(req models.AnalysisRequest) error {
	sources := 0
	if req.ImageURL != "" {
		sources++
		if err := ValidateImageURL(req.ImageURL); err != nil {
			return err
		}
	}
	if req.ImageBase64 != "" {
		sources++
		if base64.StdEncoding.DecodedLen(len(req.ImageBase64)) > MaxImageBytes {
			return apperrors.NewValidationError("image payload exceeds the size limit", nil)
		}
	}
	if req.Sample != "" {
		sources++
	}
	if sources != 1 {
		return apperrors.NewValidationError("exactly one of image_url, image_base64, or sample must be set", nil)
	}

	if req.Degradation != nil {
		if !req.Degradation.Kind.IsValid() {
			return apperrors.NewValidationError("degradation kind must be thermal, water, trauma, or none", nil)
		}
		if req.Degradation.Intensity < 0 || req.Degradation.Intensity > 1 {
			return apperrors.NewValidationError("degradation intensity must lie in [0,1]", nil)
		}
	}

	if req.Enhancement != nil {
		if f := req.Enhancement.Contrast; f != nil && !f.Auto && f.Value <= 0 {
			return apperrors.NewValidationError("enhancement contrast factor must be > 0", nil)
		}
		if f := req.Enhancement.Sharpness; f != nil && !f.Auto && f.Value < 0 {
			return apperrors.NewValidationError("enhancement sharpness factor must be >= 0", nil)
		}
	}
	return nil
}
