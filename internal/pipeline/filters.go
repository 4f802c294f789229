// Package pipeline implements the forensic dental analysis pipeline: damage
// simulation, enhancement, quality metrics, tooth detection, condition
// classification, and report scoring. Every stage is a pure function of its
// inputs; buffers are cloned, never mutated in place.
package pipeline

import (
	"math/rand"

	"go-dental-forensics/internal/imaging"
)

// boxBlur applies a separable box filter of the given radius and returns a
// new buffer. Radius 0 returns an unmodified clone. Three passes of a box
// filter approximate a Gaussian closely enough for damage simulation.
func boxBlur(buf *imaging.PixelBuffer, radius int) *imaging.PixelBuffer {
	if radius <= 0 {
		return buf.Clone()
	}

	w, h := buf.Width, buf.Height
	src := buf.Floats()
	tmp := make([]float64, len(src))

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sum float64
			var n int
			for dx := -radius; dx <= radius; dx++ {
				xx := clampInt(x+dx, 0, w-1)
				sum += src[row+xx]
				n++
			}
			tmp[row+x] = sum / float64(n)
		}
	}

	// Vertical pass.
	out := imaging.NewGrayBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			var n int
			for dy := -radius; dy <= radius; dy++ {
				yy := clampInt(y+dy, 0, h-1)
				sum += tmp[yy*w+x]
				n++
			}
			out.Pix[y*w+x] = imaging.Clamp(sum / float64(n))
		}
	}
	return out
}

// gaussianBlur approximates a Gaussian filter with repeated box passes.
func gaussianBlur(buf *imaging.PixelBuffer, radius int) *imaging.PixelBuffer {
	if radius <= 0 {
		return buf.Clone()
	}
	out := buf
	for i := 0; i < 3; i++ {
		out = boxBlur(out, radius)
	}
	return out
}

// fractionalBlur blends the blurs at the two nearest integer radii, so blur
// strength varies continuously with the requested radius. Radii at or below
// zero return an unmodified clone.
func fractionalBlur(buf *imaging.PixelBuffer, radius float64) *imaging.PixelBuffer {
	if radius <= 0 {
		return buf.Clone()
	}
	r0 := int(radius)
	frac := radius - float64(r0)
	base := gaussianBlur(buf, r0)
	if frac == 0 {
		return base
	}
	next := gaussianBlur(buf, r0+1)

	out := imaging.NewGrayBuffer(buf.Width, buf.Height)
	for i := range out.Pix {
		out.Pix[i] = imaging.Clamp((1-frac)*float64(base.Pix[i]) + frac*float64(next.Pix[i]))
	}
	return out
}

// addGaussianNoise adds zero-mean Gaussian noise with the given sigma,
// drawn from the supplied RNG, and returns a new buffer.
func addGaussianNoise(buf *imaging.PixelBuffer, sigma float64, rng *rand.Rand) *imaging.PixelBuffer {
	if sigma <= 0 {
		return buf.Clone()
	}
	out := buf.Clone()
	for i := range out.Pix {
		out.Pix[i] = imaging.Clamp(float64(out.Pix[i]) + rng.NormFloat64()*sigma)
	}
	return out
}

// addSpeckleNoise applies multiplicative noise: p' = p * (1 + n) with
// n ~ N(0, sigma). Speckle models moisture diffusion artifacts.
func addSpeckleNoise(buf *imaging.PixelBuffer, sigma float64, rng *rand.Rand) *imaging.PixelBuffer {
	if sigma <= 0 {
		return buf.Clone()
	}
	out := buf.Clone()
	for i := range out.Pix {
		out.Pix[i] = imaging.Clamp(float64(out.Pix[i]) * (1 + rng.NormFloat64()*sigma))
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
