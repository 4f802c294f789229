package factory

import (
	"fmt"

	"go-dental-forensics/internal/storage"
	"go-dental-forensics/internal/strategy"
	"go-dental-forensics/pkg/models"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// LocalStorage for local file system
	LocalStorage StorageType = "local"
)

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateFetcher(storageType StorageType) (storage.ImageFetcher, error)
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateFetcher creates a fetcher based on the specified type
func (f *storageFactory) CreateFetcher(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case LocalStorage:
		return storage.NewLocalImageFetcher(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// EnhancementStrategyFor translates a request's enhancement selection into a
// strategy: nil or all-auto yields the adaptive strategy, fully fixed
// factors the fixed one, and a mix of the two the mixed strategy.
func EnhancementStrategyFor(req *models.EnhancementRequest) strategy.EnhancementStrategy {
	if req == nil {
		return strategy.NewAdaptiveStrategy()
	}

	contrastFixed := req.Contrast != nil && !req.Contrast.Auto
	sharpnessFixed := req.Sharpness != nil && !req.Sharpness.Auto

	switch {
	case contrastFixed && sharpnessFixed:
		return strategy.NewFixedStrategy(req.Contrast.Value, req.Sharpness.Value)
	case !contrastFixed && !sharpnessFixed:
		return strategy.NewAdaptiveStrategy()
	default:
		mixed := strategy.MixedStrategy{}
		if contrastFixed {
			mixed.ContrastFixed = true
			mixed.Contrast = req.Contrast.Value
		}
		if sharpnessFixed {
			mixed.SharpnessFixed = true
			mixed.Sharpness = req.Sharpness.Value
		}
		return mixed
	}
}
