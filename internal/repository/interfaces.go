package repository

import (
	"context"
)

// ImageRepository resolves analysis inputs into raw image bytes; decoding
// and validation belong to the pipeline's codec stage.
type ImageRepository interface {
	// FetchImage retrieves the image bytes at a URL.
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)

	// FetchSample retrieves a named library radiograph, falling back to the
	// synthetic fixture when the remote image is unreachable.
	FetchSample(ctx context.Context, name string) ([]byte, error)

	// SampleNames lists the library entries.
	SampleNames() []string
}
