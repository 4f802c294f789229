package pipeline

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

// Metric normalization and weighting constants. The weighting formulas are
// deliberately explicit so tests can target them exactly.
const (
	// clarityReferenceVariance is the Laplacian variance mapped to a
	// clarity score of 100.
	clarityReferenceVariance = 1500.0

	// sharpnessReferenceMagnitude is the RMS Sobel gradient magnitude
	// mapped to a sharpness score of 100. RMS rather than mean: a step
	// edge smeared into a ramp keeps its summed gradient but loses its
	// squared gradient, so the score falls as blur spreads edges.
	sharpnessReferenceMagnitude = 60.0

	// identificationConfidence = clarityWeight*clarity + sharpnessWeight*sharpness.
	clarityWeight   = 0.6
	sharpnessWeight = 0.4

	// forensicUtility = utilityConfidenceWeight*identificationConfidence
	//                 + utilityAssessmentWeight*confidentFraction.
	utilityConfidenceWeight = 0.7
	utilityAssessmentWeight = 30.0
)

// AnalyzeQuality computes clarity, sharpness, and identification confidence
// from pixel statistics. The result is a pure function of the buffer:
// identical inputs yield bit-identical metrics. ForensicUtility is left at
// zero here and filled in by FinalizeUtility once classification completes.
func AnalyzeQuality(buf *imaging.PixelBuffer) models.QualityMetrics {
	clarity := clampScore(laplacianVariance(buf) / clarityReferenceVariance * 100)
	sharpness := clampScore(rmsSobelMagnitude(buf) / sharpnessReferenceMagnitude * 100)

	return models.QualityMetrics{
		Clarity:                  clarity,
		Sharpness:                sharpness,
		IdentificationConfidence: clampScore(clarityWeight*clarity + sharpnessWeight*sharpness),
	}
}

// FinalizeUtility derives the forensic utility score from identification
// confidence and the fraction of assessments whose confidence clears the
// confident-assessment threshold. With no assessments the fraction is zero.
func FinalizeUtility(m models.QualityMetrics, assessments []models.ToothAssessment, confidenceThreshold float64) models.QualityMetrics {
	var fraction float64
	if len(assessments) > 0 {
		var confident int
		for _, a := range assessments {
			if a.Confidence >= confidenceThreshold {
				confident++
			}
		}
		fraction = float64(confident) / float64(len(assessments))
	}

	m.ForensicUtility = clampScore(utilityConfidenceWeight*m.IdentificationConfidence + utilityAssessmentWeight*fraction)
	return m
}

// laplacianVariance estimates local blur as the variance of the 4-neighbor
// Laplacian response. Kernel: [0 1 0; 1 -4 1; 0 1 0].
func laplacianVariance(buf *imaging.PixelBuffer) float64 {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return 0
	}

	data := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := float64(buf.At(x, y))
			top := float64(buf.At(x, y-1))
			bottom := float64(buf.At(x, y+1))
			left := float64(buf.At(x-1, y))
			right := float64(buf.At(x+1, y))
			data = append(data, -4*center+top+bottom+left+right)
		}
	}
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}

// rmsSobelMagnitude measures high-frequency energy as the root mean square
// Sobel gradient magnitude over the interior pixels.
func rmsSobelMagnitude(buf *imaging.PixelBuffer) float64 {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return 0
	}

	var total float64
	var count int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := sobelX(buf, x, y)
			gy := sobelY(buf, x, y)
			total += float64(gx*gx + gy*gy)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(total / float64(count))
}

func sobelX(buf *imaging.PixelBuffer, x, y int) int {
	return -1*int(buf.At(x-1, y-1)) + 1*int(buf.At(x+1, y-1)) +
		-2*int(buf.At(x-1, y)) + 2*int(buf.At(x+1, y)) +
		-1*int(buf.At(x-1, y+1)) + 1*int(buf.At(x+1, y+1))
}

func sobelY(buf *imaging.PixelBuffer, x, y int) int {
	return -1*int(buf.At(x-1, y-1)) - 2*int(buf.At(x, y-1)) - 1*int(buf.At(x+1, y-1)) +
		1*int(buf.At(x-1, y+1)) + 2*int(buf.At(x, y+1)) + 1*int(buf.At(x+1, y+1))
}
