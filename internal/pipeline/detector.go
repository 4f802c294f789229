package pipeline

import (
	"gonum.org/v1/gonum/stat"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/pkg/models"
)

const stageDetection = "detection"

// DetectorConfig holds the tooth detection thresholds. Teeth are roughly
// periodic along the horizontal axis in bitewing, periapical, and panoramic
// radiographs, so detection partitions the frame into vertical bands and
// refines each band against its own mean intensity.
type DetectorConfig struct {
	// MinWidth/MinHeight is the smallest image tooth detection accepts;
	// below it the detector signals insufficient image data.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	// MaxBands caps the number of vertical bands; BandMinWidth sets how
	// narrow a band may get before the count is reduced instead.
	MaxBands     int `yaml:"max_bands"`
	BandMinWidth int `yaml:"band_min_width"`

	// DarkThresholdRatio scales a band's mean intensity into the threshold
	// below which pixels count as locally dark.
	DarkThresholdRatio float64 `yaml:"dark_threshold_ratio"`
}

// DefaultDetectorConfig returns the detection thresholds used when no
// configuration file overrides them.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinWidth:           64,
		MinHeight:          64,
		MaxBands:           8,
		BandMinWidth:       48,
		DarkThresholdRatio: 0.92,
	}
}

// withDefaults substitutes the default value for every threshold left at or
// below zero, so a zero-value config behaves like DefaultDetectorConfig.
func (c DetectorConfig) withDefaults() DetectorConfig {
	def := DefaultDetectorConfig()
	if c.MinWidth <= 0 {
		c.MinWidth = def.MinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = def.MinHeight
	}
	if c.MaxBands <= 0 {
		c.MaxBands = def.MaxBands
	}
	if c.BandMinWidth <= 0 {
		c.BandMinWidth = def.BandMinWidth
	}
	if c.DarkThresholdRatio <= 0 {
		c.DarkThresholdRatio = def.DarkThresholdRatio
	}
	return c
}

// DetectTeeth partitions the buffer into candidate tooth regions, ordered
// left to right. Any image at or above the minimum size yields at least one
// region; smaller images fail with insufficient_image_data. Results are
// recomputed fresh on every call.
func DetectTeeth(buf *imaging.PixelBuffer, cfg DetectorConfig) ([]models.ToothRegion, error) {
	cfg = cfg.withDefaults()

	w, h := buf.Width, buf.Height
	if w < cfg.MinWidth || h < cfg.MinHeight {
		return nil, apperrors.NewInsufficientImageDataError(stageDetection, w, h)
	}

	bands := w / cfg.BandMinWidth
	if bands < 1 {
		bands = 1
	}
	if bands > cfg.MaxBands {
		bands = cfg.MaxBands
	}

	regions := make([]models.ToothRegion, 0, bands)
	bandWidth := w / bands
	for i := 0; i < bands; i++ {
		x0 := i * bandWidth
		x1 := x0 + bandWidth
		if i == bands-1 {
			x1 = w
		}
		box := refineBand(buf, x0, x1, cfg.DarkThresholdRatio)
		mean, variance := regionStats(buf, box)
		regions = append(regions, models.ToothRegion{
			Index:         i,
			X:             box.x0,
			Y:             box.y0,
			Width:         box.x1 - box.x0,
			Height:        box.y1 - box.y0,
			MeanIntensity: mean,
			Variance:      variance,
		})
	}
	return regions, nil
}

type boundingBox struct {
	x0, y0, x1, y1 int
}

// refineBand narrows a vertical band to its locally darkest contiguous
// sub-region: the longest run of columns whose mean falls below the
// band-mean-derived threshold, then the longest matching run of rows within
// those columns. A band with no dark run keeps its central half.
func refineBand(buf *imaging.PixelBuffer, x0, x1 int, ratio float64) boundingBox {
	h := buf.Height

	colMeans := make([]float64, x1-x0)
	var bandSum float64
	for x := x0; x < x1; x++ {
		var sum float64
		for y := 0; y < h; y++ {
			sum += float64(buf.At(x, y))
		}
		colMeans[x-x0] = sum / float64(h)
		bandSum += sum
	}
	threshold := bandSum / float64((x1-x0)*h) * ratio

	c0, c1 := longestRunBelow(colMeans, threshold)
	if c0 < 0 {
		// No dark columns; fall back to the central half of the band.
		quarter := (x1 - x0) / 4
		return boundingBox{x0: x0 + quarter, y0: h / 4, x1: x1 - quarter, y1: h - h/4}
	}
	c0 += x0
	c1 += x0

	rowMeans := make([]float64, h)
	for y := 0; y < h; y++ {
		var sum float64
		for x := c0; x < c1; x++ {
			sum += float64(buf.At(x, y))
		}
		rowMeans[y] = sum / float64(c1-c0)
	}
	r0, r1 := longestRunBelow(rowMeans, threshold)
	if r0 < 0 {
		r0, r1 = h/4, h-h/4
	}
	return boundingBox{x0: c0, y0: r0, x1: c1, y1: r1}
}

// longestRunBelow finds the longest contiguous run of values strictly below
// threshold and returns its half-open bounds, or (-1, -1) when none exists.
func longestRunBelow(values []float64, threshold float64) (int, int) {
	bestStart, bestLen := -1, 0
	start := -1
	for i, v := range values {
		if v < threshold {
			if start < 0 {
				start = i
			}
			if l := i - start + 1; l > bestLen {
				bestStart, bestLen = start, l
			}
		} else {
			start = -1
		}
	}
	if bestStart < 0 {
		return -1, -1
	}
	return bestStart, bestStart + bestLen
}

// regionStats computes the mean intensity and variance of the box interior.
func regionStats(buf *imaging.PixelBuffer, box boundingBox) (float64, float64) {
	data := make([]float64, 0, (box.x1-box.x0)*(box.y1-box.y0))
	for y := box.y0; y < box.y1; y++ {
		for x := box.x0; x < box.x1; x++ {
			data = append(data, float64(buf.At(x, y)))
		}
	}
	if len(data) == 0 {
		return 0, 0
	}
	mean, variance := stat.MeanVariance(data, nil)
	return mean, variance
}
