package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/internal/logger"
	"go-dental-forensics/internal/storage"
)

// Synthetic fallback dimensions match the reference radiograph frame.
const (
	fallbackWidth  = 600
	fallbackHeight = 400
)

// imageRepository resolves URLs and sample names via an ImageFetcher and the
// sample library.
type imageRepository struct {
	fetcher storage.ImageFetcher
	library *storage.SampleLibrary
}

// NewImageRepository creates a repository over the given fetcher and library.
func NewImageRepository(fetcher storage.ImageFetcher, library *storage.SampleLibrary) ImageRepository {
	return &imageRepository{fetcher: fetcher, library: library}
}

// FetchImage retrieves the image bytes at a URL.
func (r *imageRepository) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	data, err := r.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	return data, nil
}

// FetchSample retrieves a named library radiograph. When the remote image is
// unreachable the deterministic synthetic radiograph stands in, so
// demonstrations keep working offline.
func (r *imageRepository) FetchSample(ctx context.Context, name string) ([]byte, error) {
	url, ok := r.library.URL(name)
	if !ok {
		return nil, apperrors.NewNotFoundError("unknown sample name", ErrUnknownSample)
	}

	data, err := r.FetchImage(ctx, url)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"sample": name,
			"url":    url,
		}).Warn("Sample fetch failed; using synthetic radiograph")
		return imaging.Encode(imaging.SyntheticXRay(fallbackWidth, fallbackHeight), imaging.FormatPNG)
	}
	return data, nil
}

// SampleNames lists the library entries.
func (r *imageRepository) SampleNames() []string {
	return r.library.Names()
}
