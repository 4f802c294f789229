package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalImageFetcher reads images from the local filesystem, for batch tools
// and tests that bypass the network.
type LocalImageFetcher struct{}

// NewLocalImageFetcher creates a filesystem-backed fetcher.
func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

// Fetch reads the file at the given path.
func (l *LocalImageFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image file: %w", err)
	}
	if info.Size() > maxFetchBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxFetchBytes)
	}
	return os.ReadFile(path)
}
