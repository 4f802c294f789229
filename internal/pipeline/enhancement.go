package pipeline

import (
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/internal/strategy"
	"go-dental-forensics/pkg/models"
)

// unsharpBlurRadius is the blur radius used for the unsharp-mask detail
// estimate.
const unsharpBlurRadius = 1

// EnhancementResult pairs the corrected buffer with the factors applied.
type EnhancementResult struct {
	Output  *imaging.PixelBuffer
	Applied models.EnhancementApplied
}

// Enhance applies contrast stretching followed by unsharp-mask sharpening.
// Increasing the contrast factor strictly increases the output histogram's
// standard deviation up to clipping at the channel bounds; clipping to
// [0,255] is normal operation, not an error.
func Enhance(buf *imaging.PixelBuffer, strat strategy.EnhancementStrategy) *EnhancementResult {
	contrast, sharpness := strat.Factors(buf)

	out := stretchContrast(buf, contrast)
	out = sharpen(out, sharpness)

	return &EnhancementResult{
		Output: out,
		Applied: models.EnhancementApplied{
			ContrastFactor:  contrast,
			SharpnessFactor: sharpness,
			Strategy:        strat.Name(),
		},
	}
}

// stretchContrast scales pixel deviations from the buffer mean by factor.
func stretchContrast(buf *imaging.PixelBuffer, factor float64) *imaging.PixelBuffer {
	if factor == 1 {
		return buf.Clone()
	}
	mean, _ := buf.Stats()
	out := buf.Clone()
	for i := range out.Pix {
		out.Pix[i] = imaging.Clamp((float64(out.Pix[i])-mean)*factor + mean)
	}
	return out
}

// sharpen applies an unsharp mask: p' = p + amount * (p - blur(p)).
func sharpen(buf *imaging.PixelBuffer, amount float64) *imaging.PixelBuffer {
	if amount <= 0 {
		return buf.Clone()
	}
	blurred := boxBlur(buf, unsharpBlurRadius)
	out := buf.Clone()
	for i := range out.Pix {
		detail := float64(buf.Pix[i]) - float64(blurred.Pix[i])
		out.Pix[i] = imaging.Clamp(float64(buf.Pix[i]) + amount*detail)
	}
	return out
}
