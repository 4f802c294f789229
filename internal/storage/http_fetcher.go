package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageFetcher retrieves raw image bytes from a source location.
type ImageFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// maxFetchBytes bounds a single image download.
const maxFetchBytes = 20 * 1024 * 1024

// HTTPImageFetcher fetches images over HTTP with a tuned transport.
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher.
func NewHTTPImageFetcher() ImageFetcher {
	transport := &http.Transport{
		// Pooling sized for one-shot image downloads.
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// Fetch downloads the image at the given URL. Transient failures retry up to
// three attempts.
func (h *HTTPImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "Dental-Forensics/1.0")

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, lastErr = h.client.Do(req)
		if lastErr == nil && resp.StatusCode < 500 {
			break
		}
		if resp != nil {
			// A 5xx is a failed attempt too; record it so exhausting the
			// retries surfaces an error instead of a nil response.
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			resp.Body.Close()
			resp = nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("fetch failed after retries: %w", lastErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxFetchBytes)
	}
	return data, nil
}
