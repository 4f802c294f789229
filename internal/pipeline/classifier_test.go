package pipeline

import (
	"testing"

	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

// patchBuffer builds a uniform background with one rectangular region filled
// by fill, and returns the buffer plus a ToothRegion covering the rectangle.
func patchBuffer(w, h int, background uint8, x, y, rw, rh int, fill func(px, py int) uint8) (*imaging.PixelBuffer, models.ToothRegion) {
	buf := imaging.NewGrayBuffer(w, h)
	for i := range buf.Pix {
		buf.Pix[i] = background
	}
	for py := y; py < y+rh; py++ {
		for px := x; px < x+rw; px++ {
			buf.Set(px, py, fill(px, py))
		}
	}

	var sum, sumSq float64
	for py := y; py < y+rh; py++ {
		for px := x; px < x+rw; px++ {
			v := float64(buf.At(px, py))
			sum += v
			sumSq += v * v
		}
	}
	n := float64(rw * rh)
	mean := sum / n
	variance := 0.0
	if n > 1 {
		variance = (sumSq - n*mean*mean) / (n - 1)
	}

	return buf, models.ToothRegion{X: x, Y: y, Width: rw, Height: rh, MeanIntensity: mean, Variance: variance}
}

func uniform(v uint8) func(int, int) uint8 {
	return func(int, int) uint8 { return v }
}

func checkerboard(lo, hi uint8) func(int, int) uint8 {
	return func(px, py int) uint8 {
		if (px+py)%2 == 0 {
			return hi
		}
		return lo
	}
}

func TestClassifyMissing(t *testing.T) {
	buf, region := patchBuffer(100, 100, 120, 35, 35, 30, 30, uniform(120))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionMissing {
		t.Errorf("Expected missing, got %s", assessment.Condition)
	}
	if assessment.Confidence <= 90 {
		t.Errorf("Flat background-level region should classify with high confidence, got %v", assessment.Confidence)
	}
}

func TestClassifyFilled(t *testing.T) {
	// Uniform region 45 gray levels above the baseline mean: bright enough
	// for a restoration, not bright enough for a crown.
	buf, region := patchBuffer(100, 100, 100, 35, 35, 30, 30, uniform(150))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionFilled {
		t.Errorf("Expected filled, got %s", assessment.Condition)
	}
	if assessment.Confidence <= 50 {
		t.Errorf("Expected confidence above the decision boundary, got %v", assessment.Confidence)
	}
}

func TestClassifyCrowned(t *testing.T) {
	buf, region := patchBuffer(100, 100, 100, 35, 35, 30, 30, uniform(200))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionCrowned {
		t.Errorf("Expected crowned, got %s", assessment.Condition)
	}
}

func TestClassifyCarious(t *testing.T) {
	// High-variance texture away from the jaw boundary reads as decay.
	buf, region := patchBuffer(100, 100, 120, 40, 40, 20, 20, checkerboard(0, 255))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionCarious {
		t.Errorf("Expected carious, got %s", assessment.Condition)
	}
}

func TestClassifyImpacted(t *testing.T) {
	// The same high-variance texture at the jaw boundary reads as
	// impaction instead.
	buf, region := patchBuffer(100, 100, 120, 40, 0, 20, 20, checkerboard(0, 255))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionImpacted {
		t.Errorf("Expected impacted, got %s", assessment.Condition)
	}
}

func TestClassifyRootCanal(t *testing.T) {
	// Vertically elongated region with a brighter central streak.
	buf, region := patchBuffer(60, 80, 120, 20, 20, 20, 40, func(px, _ int) uint8 {
		if px >= 28 && px < 32 {
			return 170
		}
		return 120
	})
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionRootCanal {
		t.Errorf("Expected root_canal, got %s", assessment.Condition)
	}
}

func TestClassifyHealthy(t *testing.T) {
	// Mild natural texture, moderately brighter than background: none of
	// the anomaly rules trigger.
	buf, region := patchBuffer(100, 100, 100, 35, 35, 30, 30, checkerboard(120, 140))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionHealthy {
		t.Errorf("Expected healthy, got %s", assessment.Condition)
	}
	if assessment.Confidence < 50 || assessment.Confidence > 100 {
		t.Errorf("Confidence out of range: %v", assessment.Confidence)
	}
}

func TestClassifyBrightPatchAfterEnhancement(t *testing.T) {
	// A saturated bright patch on a mid-gray frame, the shape a metallic
	// restoration takes after contrast stretching, must read as a
	// restoration.
	buf, region := patchBuffer(400, 200, 90, 180, 80, 40, 40, uniform(230))
	assessment := NewClassifier().Classify(buf, region, ComputeBaseline(buf))

	if assessment.Condition != models.ConditionFilled && assessment.Condition != models.ConditionCrowned {
		t.Errorf("Expected a restoration label, got %s", assessment.Condition)
	}
	if assessment.Confidence <= 50 {
		t.Errorf("Expected confidence above the decision boundary, got %v", assessment.Confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	buf, region := patchBuffer(100, 100, 100, 35, 35, 30, 30, uniform(150))
	baseline := ComputeBaseline(buf)
	classifier := NewClassifier()

	first := classifier.Classify(buf, region, baseline)
	second := classifier.Classify(buf, region, baseline)
	if first != second {
		t.Errorf("Identical region statistics produced different assessments: %+v vs %+v", first, second)
	}
}

func TestComputeBaseline(t *testing.T) {
	buf, _ := patchBuffer(100, 100, 80, 35, 35, 30, 30, uniform(200))
	baseline := ComputeBaseline(buf)

	if baseline.Mean <= 80 || baseline.Mean >= 200 {
		t.Errorf("Baseline mean should sit between background and patch, got %v", baseline.Mean)
	}
	// The two-pixel border frame never touches the centered patch.
	if baseline.Background != 80 {
		t.Errorf("Expected background 80 from the border frame, got %v", baseline.Background)
	}
	if baseline.Std <= 0 {
		t.Errorf("Expected positive spread, got %v", baseline.Std)
	}
}

func TestApplyNumbering(t *testing.T) {
	assessments := make([]models.ToothAssessment, 8)
	applyNumbering(assessments)

	expected := []string{"18", "17", "16", "15", "14", "13", "12", "11"}
	for i, want := range expected {
		if assessments[i].FDINumber != want {
			t.Errorf("Position %d: expected FDI %s, got %s", i, want, assessments[i].FDINumber)
		}
	}
	if assessments[0].ToothName != "Third Molar" || assessments[0].ToothType != "Wisdom Tooth" {
		t.Errorf("Unexpected identity for first tooth: %+v", assessments[0])
	}
	if assessments[7].ToothName != "Central Incisor" {
		t.Errorf("Expected Central Incisor at position 7, got %s", assessments[7].ToothName)
	}
}

func TestApplyNumberingFullArch(t *testing.T) {
	assessments := make([]models.ToothAssessment, 18)
	applyNumbering(assessments)

	if assessments[8].FDINumber != "21" {
		t.Errorf("Expected quadrant change to 21 at position 8, got %s", assessments[8].FDINumber)
	}
	if assessments[15].FDINumber != "28" {
		t.Errorf("Expected 28 at position 15, got %s", assessments[15].FDINumber)
	}
	// Beyond the sequence the identity stays empty.
	if assessments[16].FDINumber != "" || assessments[17].FDINumber != "" {
		t.Error("Regions beyond the FDI sequence must keep empty identity")
	}
}
