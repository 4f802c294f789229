package imaging

// Synthetic radiograph geometry, scaled from a 600x400 reference frame: a
// mid-gray background with two rows of eight bright rectangles standing in
// for the upper and lower arches. Used as a test fixture and as the fallback
// when a sample image cannot be fetched.
const (
	syntheticBackground = 120
	syntheticTooth      = 200

	refWidth       = 600
	refHeight      = 400
	refToothCount  = 8
	refFirstX      = 150
	refToothPitch  = 50
	refToothWidth  = 30
	refUpperTop    = 150
	refUpperBottom = 200
	refLowerTop    = 250
	refLowerBottom = 300
)

// SyntheticXRay builds a deterministic synthetic dental X-ray of the given
// size. The same dimensions always produce identical pixel content.
func SyntheticXRay(width, height int) *PixelBuffer {
	buf := NewGrayBuffer(width, height)
	for i := range buf.Pix {
		buf.Pix[i] = syntheticBackground
	}

	sx := float64(width) / refWidth
	sy := float64(height) / refHeight

	for i := 0; i < refToothCount; i++ {
		x0 := int(float64(refFirstX+i*refToothPitch) * sx)
		x1 := int(float64(refFirstX+i*refToothPitch+refToothWidth) * sx)
		fillRect(buf, x0, int(float64(refUpperTop)*sy), x1, int(float64(refUpperBottom)*sy), syntheticTooth)
		fillRect(buf, x0, int(float64(refLowerTop)*sy), x1, int(float64(refLowerBottom)*sy), syntheticTooth)
	}
	return buf
}

func fillRect(buf *PixelBuffer, x0, y0, x1, y1 int, v uint8) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > buf.Width {
		x1 = buf.Width
	}
	if y1 > buf.Height {
		y1 = buf.Height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			buf.Set(x, y, v)
		}
	}
}
