package validation

import (
	"testing"

	"go-dental-forensics/pkg/models"
)

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/xray.png", false},
		{"valid http", "http://example.com/xray.jpg", false},
		{"missing scheme", "example.com/xray.png", true},
		{"wrong scheme", "ftp://example.com/xray.png", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func factor(auto bool, value float64) *models.Factor {
	return &models.Factor{Auto: auto, Value: value}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AnalysisRequest
		wantErr bool
	}{
		{
			"url source",
			models.AnalysisRequest{ImageURL: "https://example.com/xray.png"},
			false,
		},
		{
			"sample source",
			models.AnalysisRequest{Sample: "Panoramic X-ray 1"},
			false,
		},
		{
			"no source",
			models.AnalysisRequest{},
			true,
		},
		{
			"two sources",
			models.AnalysisRequest{ImageURL: "https://example.com/a.png", Sample: "Bitewing X-ray"},
			true,
		},
		{
			"valid degradation",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Degradation: &models.DegradationSpec{Kind: models.DegradationWater, Intensity: 0.5},
			},
			false,
		},
		{
			"unknown degradation kind",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Degradation: &models.DegradationSpec{Kind: "acid", Intensity: 0.5},
			},
			true,
		},
		{
			"intensity above one",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Degradation: &models.DegradationSpec{Kind: models.DegradationThermal, Intensity: 1.5},
			},
			true,
		},
		{
			"negative intensity",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Degradation: &models.DegradationSpec{Kind: models.DegradationThermal, Intensity: -0.1},
			},
			true,
		},
		{
			"auto enhancement",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Enhancement: &models.EnhancementRequest{Contrast: factor(true, 0), Sharpness: factor(true, 0)},
			},
			false,
		},
		{
			"fixed enhancement",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Enhancement: &models.EnhancementRequest{Contrast: factor(false, 2), Sharpness: factor(false, 1)},
			},
			false,
		},
		{
			"zero contrast",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Enhancement: &models.EnhancementRequest{Contrast: factor(false, 0)},
			},
			true,
		},
		{
			"negative sharpness",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Enhancement: &models.EnhancementRequest{Sharpness: factor(false, -1)},
			},
			true,
		},
		{
			"zero sharpness allowed",
			models.AnalysisRequest{
				Sample:      "Panoramic X-ray 1",
				Enhancement: &models.EnhancementRequest{Sharpness: factor(false, 0)},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
