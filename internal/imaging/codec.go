package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"

	apperrors "go-dental-forensics/internal/errors"
)

// Format selects the on-disk encoding for Encode.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

const (
	// jpegQuality keeps Decode(Encode(b)) near-exact for JPEG output.
	jpegQuality = 90

	// maxDimension bounds decoded images; larger inputs are downscaled so a
	// single oversized radiograph cannot dominate memory.
	maxDimension = 4096
)

const stageCodec = "codec"

// Decode parses JPEG or PNG bytes into a luminance buffer. Unparseable bytes
// and zero-sized images fail with an invalid_image_format error.
func Decode(data []byte) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, apperrors.NewInvalidImageFormatError(stageCodec, "empty image data", nil)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewInvalidImageFormatError(stageCodec, "image does not parse as JPEG or PNG", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, apperrors.NewInvalidImageFormatError(stageCodec, fmt.Sprintf("unsupported image format %q", format), nil)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, apperrors.NewInvalidImageFormatError(stageCodec, "image has zero dimensions", nil)
	}

	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = downscale(img, maxDimension)
	}

	return FromImage(img), nil
}

// Encode renders the buffer as PNG or JPEG bytes. PNG round-trips exactly;
// JPEG round-trips within the codec's lossy tolerance at quality 90.
func Encode(buf *PixelBuffer, format Format) ([]byte, error) {
	if buf == nil || buf.Width == 0 || buf.Height == 0 {
		return nil, apperrors.NewInvalidImageFormatError(stageCodec, "cannot encode an empty buffer", nil)
	}

	var out bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&out, buf.ToImage()); err != nil {
			return nil, apperrors.NewInternalError("png encoding failed", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&out, buf.ToImage(), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, apperrors.NewInternalError("jpeg encoding failed", err)
		}
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported output format %q", format), nil)
	}
	return out.Bytes(), nil
}

// downscale resizes so the longest side equals limit, preserving aspect.
func downscale(img image.Image, limit int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scale := float64(limit) / float64(w)
	if h > w {
		scale = float64(limit) / float64(h)
	}
	dst := image.NewGray(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}
