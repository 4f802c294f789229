package imaging

import (
	"math"
	"testing"
)

func TestCloneIndependence(t *testing.T) {
	orig := NewGrayBuffer(4, 4)
	for i := range orig.Pix {
		orig.Pix[i] = uint8(i * 10)
	}

	clone := orig.Clone()
	clone.Set(0, 0, 255)

	if orig.At(0, 0) == 255 {
		t.Error("Mutating the clone changed the original buffer")
	}
	if clone.Width != orig.Width || clone.Height != orig.Height || clone.Channels != orig.Channels {
		t.Error("Clone did not preserve buffer dimensions")
	}
}

func TestStats(t *testing.T) {
	buf := NewGrayBuffer(2, 2)
	buf.Pix = []uint8{10, 20, 30, 40}

	mean, std := buf.Stats()
	if math.Abs(mean-25) > 1e-9 {
		t.Errorf("Expected mean 25, got %v", mean)
	}
	// Sample standard deviation of {10,20,30,40}.
	want := math.Sqrt(500.0 / 3.0)
	if math.Abs(std-want) > 1e-9 {
		t.Errorf("Expected std %v, got %v", want, std)
	}
}

func TestHistogram(t *testing.T) {
	buf := NewGrayBuffer(3, 1)
	buf.Pix = []uint8{7, 7, 200}

	hist := buf.Histogram()
	if hist[7] != 2 {
		t.Errorf("Expected 2 pixels in bin 7, got %d", hist[7])
	}
	if hist[200] != 1 {
		t.Errorf("Expected 1 pixel in bin 200, got %d", hist[200])
	}
}

func TestFingerprint(t *testing.T) {
	a := SyntheticXRay(60, 40)
	b := SyntheticXRay(60, 40)

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Identical pixel content produced different fingerprints")
	}
	if len(a.Fingerprint()) != 16 {
		t.Errorf("Expected 16-character fingerprint, got %d characters", len(a.Fingerprint()))
	}

	b.Set(0, 0, 0)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Different pixel content produced the same fingerprint")
	}
}

func TestSeedDeterministic(t *testing.T) {
	a := SyntheticXRay(60, 40)
	b := SyntheticXRay(60, 40)

	if a.Seed() != b.Seed() {
		t.Error("Identical buffers derived different seeds")
	}
	if a.Seed() < 0 {
		t.Errorf("Derived seed must be non-negative, got %d", a.Seed())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint8
	}{
		{"negative clamps to zero", -14.2, 0},
		{"overflow clamps to max", 300.7, 255},
		{"in-range rounds", 99.6, 100},
		{"rounds half up", 99.5, 100},
		{"exact value", 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value); got != tt.expected {
				t.Errorf("Clamp(%v) = %d, expected %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFloats(t *testing.T) {
	buf := NewGrayBuffer(2, 1)
	buf.Pix = []uint8{3, 250}

	f := buf.Floats()
	if len(f) != 2 || f[0] != 3 || f[1] != 250 {
		t.Errorf("Floats() = %v, expected [3 250]", f)
	}
}

func TestSyntheticXRayGeometry(t *testing.T) {
	buf := SyntheticXRay(600, 400)

	if buf.At(10, 10) != syntheticBackground {
		t.Errorf("Expected background %d at corner, got %d", syntheticBackground, buf.At(10, 10))
	}
	// First tooth of the upper arch spans x 150..180, y 150..200.
	if buf.At(160, 175) != syntheticTooth {
		t.Errorf("Expected tooth intensity %d inside first upper tooth, got %d", syntheticTooth, buf.At(160, 175))
	}
	// Gap between the first two teeth.
	if buf.At(190, 175) != syntheticBackground {
		t.Errorf("Expected background %d between teeth, got %d", syntheticBackground, buf.At(190, 175))
	}

	again := SyntheticXRay(600, 400)
	if buf.Fingerprint() != again.Fingerprint() {
		t.Error("SyntheticXRay is not deterministic for identical dimensions")
	}
}
