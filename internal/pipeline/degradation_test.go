package pipeline

import (
	"math"
	"testing"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

func TestDegradeRejectsInvalidIntensity(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
	}{
		{"negative", -0.1},
		{"above one", 1.5},
		{"not a number", math.NaN()},
	}

	buf := imaging.SyntheticXRay(100, 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := models.DegradationSpec{Kind: models.DegradationWater, Intensity: tt.intensity}
			_, err := Degrade(buf, spec, 1)
			if err == nil {
				t.Fatal("Expected error for out-of-range intensity")
			}
			if !apperrors.IsType(err, apperrors.ErrorTypeInvalidIntensity) {
				t.Errorf("Expected invalid_intensity error, got %v", err)
			}
		})
	}
}

func TestDegradeRejectsUnknownKind(t *testing.T) {
	buf := imaging.SyntheticXRay(100, 100)
	spec := models.DegradationSpec{Kind: models.DegradationKind("acid"), Intensity: 0.5}
	if _, err := Degrade(buf, spec, 1); err == nil {
		t.Error("Expected error for unknown degradation kind")
	}
}

func TestDegradeNoneIsIdentity(t *testing.T) {
	buf := imaging.SyntheticXRay(100, 100)
	result, err := Degrade(buf, models.DegradationSpec{Kind: models.DegradationNone}, 1)
	if err != nil {
		t.Fatalf("Degrade failed: %v", err)
	}
	if result.Output.Fingerprint() != buf.Fingerprint() {
		t.Error("Degradation kind none must not change pixel content")
	}
}

func TestDegradeDeterministicPerSeed(t *testing.T) {
	kinds := []models.DegradationKind{
		models.DegradationThermal,
		models.DegradationWater,
		models.DegradationTrauma,
	}

	buf := imaging.SyntheticXRay(200, 140)
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			spec := models.DegradationSpec{Kind: kind, Intensity: 0.8}

			a, err := Degrade(buf, spec, 42)
			if err != nil {
				t.Fatalf("Degrade failed: %v", err)
			}
			b, err := Degrade(buf, spec, 42)
			if err != nil {
				t.Fatalf("Degrade failed: %v", err)
			}
			if a.Output.Fingerprint() != b.Output.Fingerprint() {
				t.Error("Same seed produced different pixel content")
			}

			c, err := Degrade(buf, spec, 43)
			if err != nil {
				t.Fatalf("Degrade failed: %v", err)
			}
			if a.Output.Fingerprint() == c.Output.Fingerprint() {
				t.Error("Different seeds produced identical pixel content")
			}
		})
	}
}

func TestDegradeDoesNotMutateInput(t *testing.T) {
	buf := imaging.SyntheticXRay(120, 80)
	before := buf.Fingerprint()

	spec := models.DegradationSpec{Kind: models.DegradationTrauma, Intensity: 1}
	if _, err := Degrade(buf, spec, 5); err != nil {
		t.Fatalf("Degrade failed: %v", err)
	}
	if buf.Fingerprint() != before {
		t.Error("Degradation mutated its input buffer")
	}
}

func TestWaterIntensityDegradesQuality(t *testing.T) {
	buf := imaging.SyntheticXRay(400, 200)

	// The low end of the sweep sits where the blur is weaker than a single
	// integer radius; speckle noise alone must never raise the scores there.
	var prevClarity, prevSharpness float64
	for i, intensity := range []float64{0, 0.05, 0.1, 0.12, 0.5, 1.0} {
		spec := models.DegradationSpec{Kind: models.DegradationWater, Intensity: intensity}
		result, err := Degrade(buf, spec, 99)
		if err != nil {
			t.Fatalf("Degrade failed at intensity %v: %v", intensity, err)
		}

		m := AnalyzeQuality(result.Output)
		if i > 0 {
			if m.Clarity >= prevClarity {
				t.Errorf("Clarity did not decrease: %.2f at intensity %v, was %.2f", m.Clarity, intensity, prevClarity)
			}
			if m.Sharpness >= prevSharpness {
				t.Errorf("Sharpness did not decrease: %.2f at intensity %v, was %.2f", m.Sharpness, intensity, prevSharpness)
			}
		}
		prevClarity, prevSharpness = m.Clarity, m.Sharpness
	}
}

func TestThermalIntensityDegradesQuality(t *testing.T) {
	buf := imaging.SyntheticXRay(400, 200)

	var prevClarity, prevSharpness float64
	for i, intensity := range []float64{0, 0.05, 0.12, 0.6, 1.0} {
		spec := models.DegradationSpec{Kind: models.DegradationThermal, Intensity: intensity}
		result, err := Degrade(buf, spec, 99)
		if err != nil {
			t.Fatalf("Degrade failed at intensity %v: %v", intensity, err)
		}

		m := AnalyzeQuality(result.Output)
		if i > 0 {
			if m.Clarity >= prevClarity {
				t.Errorf("Clarity did not decrease: %.2f at intensity %v, was %.2f", m.Clarity, intensity, prevClarity)
			}
			if m.Sharpness >= prevSharpness {
				t.Errorf("Sharpness did not decrease: %.2f at intensity %v, was %.2f", m.Sharpness, intensity, prevSharpness)
			}
		}
		prevClarity, prevSharpness = m.Clarity, m.Sharpness
	}
}

func TestDegradeThermalDarkensEdges(t *testing.T) {
	buf := imaging.NewGrayBuffer(200, 200)
	for i := range buf.Pix {
		buf.Pix[i] = 180
	}

	spec := models.DegradationSpec{Kind: models.DegradationThermal, Intensity: 1}
	result, err := Degrade(buf, spec, 11)
	if err != nil {
		t.Fatalf("Degrade failed: %v", err)
	}

	// The hotspot lands somewhere in the central half, so the frame
	// corners average farther from it than the frame center does.
	corners := (windowMean(result.Output, 0, 0, 20) +
		windowMean(result.Output, 180, 0, 20) +
		windowMean(result.Output, 0, 180, 20) +
		windowMean(result.Output, 180, 180, 20)) / 4
	center := windowMean(result.Output, 90, 90, 20)
	if corners >= center {
		t.Errorf("Expected corners (%.1f) darker than center (%.1f) under thermal falloff", corners, center)
	}
}

func TestDegradeTraumaAppliesPatches(t *testing.T) {
	buf := imaging.SyntheticXRay(300, 200)

	spec := models.DegradationSpec{Kind: models.DegradationTrauma, Intensity: 1}
	result, err := Degrade(buf, spec, 3)
	if err != nil {
		t.Fatalf("Degrade failed: %v", err)
	}

	if result.Applied.PatchCount != traumaMaxPatches {
		t.Errorf("Expected %d patches at full intensity, got %d", traumaMaxPatches, result.Applied.PatchCount)
	}
	if result.Applied.PatchSize != traumaPatchScale {
		t.Errorf("Expected patch size %d at full intensity, got %d", traumaPatchScale, result.Applied.PatchSize)
	}

	hist := result.Output.Histogram()
	if hist[traumaPatchDarkness] == 0 {
		t.Error("Expected occlusion patches at the trauma darkness level")
	}
}

func TestDegradeRecordsAppliedParameters(t *testing.T) {
	buf := imaging.SyntheticXRay(150, 100)
	spec := models.DegradationSpec{Kind: models.DegradationWater, Intensity: 0.5}

	result, err := Degrade(buf, spec, 21)
	if err != nil {
		t.Fatalf("Degrade failed: %v", err)
	}

	applied := result.Applied
	if applied.Kind != models.DegradationWater || applied.Intensity != 0.5 || applied.Seed != 21 {
		t.Errorf("Applied parameters not recorded: %+v", applied)
	}
	if math.Abs(applied.BlurRadius-2) > 1e-9 {
		t.Errorf("Expected blur radius 2 at intensity 0.5, got %v", applied.BlurRadius)
	}
	if math.Abs(applied.NoiseSigma-0.09) > 1e-9 {
		t.Errorf("Expected speckle sigma 0.09 at intensity 0.5, got %v", applied.NoiseSigma)
	}
}

// windowMean averages a size x size window anchored at (x0, y0).
func windowMean(buf *imaging.PixelBuffer, x0, y0, size int) float64 {
	var sum float64
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			sum += float64(buf.At(x, y))
		}
	}
	return sum / float64(size*size)
}
