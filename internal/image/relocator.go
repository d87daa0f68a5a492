// Package image fetches review images from their submitted URLs and
// relocates them into managed object storage.
package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katakonsumen/review-service/internal/storage"
)

const (
	probeTimeout = 5 * time.Second
	fetchTimeout = 10 * time.Second

	defaultMaxBytes = 10 << 20
	defaultWorkers  = 4

	storedContentType  = "image/jpeg"
	storedCacheControl = "max-age=3600"
)

// Skipped records one submitted URL that could not be relocated, with a
// human-readable reason.
type Skipped struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Pipeline relocates submitted image URLs into managed storage and removes
// previously stored images.
type Pipeline interface {
	// Relocate downloads each URL and uploads it to storage under the
	// username's prefix. Unreachable or non-image URLs are skipped, never
	// fatal. Stored URLs come back in completion order.
	Relocate(ctx context.Context, username string, urls []string) (stored []string, skipped []Skipped)

	// Remove deletes previously stored images. Best effort: failures are
	// logged and ignored.
	Remove(ctx context.Context, urls []string)
}

// Relocator implements Pipeline against a storage backend. Probe and fetch
// use separate HTTP clients so a slow download never consumes the short
// probe budget.
type Relocator struct {
	store    storage.Storage
	probe    *http.Client
	fetch    *http.Client
	maxBytes int64
	workers  int
	logger   *slog.Logger
}

// Option adjusts a Relocator.
type Option func(*Relocator)

// WithHTTPClients replaces the probe and fetch clients. Used in tests.
func WithHTTPClients(probe, fetch *http.Client) Option {
	return func(r *Relocator) {
		r.probe = probe
		r.fetch = fetch
	}
}

// WithMaxBytes caps the downloaded size per image.
func WithMaxBytes(n int64) Option {
	return func(r *Relocator) { r.maxBytes = n }
}

// WithWorkers sets the number of concurrent relocations.
func WithWorkers(n int) Option {
	return func(r *Relocator) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRelocator returns a Relocator storing into the given backend.
func NewRelocator(store storage.Storage, logger *slog.Logger, opts ...Option) *Relocator {
	r := &Relocator{
		store:    store,
		probe:    &http.Client{Timeout: probeTimeout},
		fetch:    &http.Client{Timeout: fetchTimeout},
		maxBytes: defaultMaxBytes,
		workers:  defaultWorkers,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Relocator) Relocate(ctx context.Context, username string, urls []string) ([]string, []Skipped) {
	if len(urls) == 0 {
		return []string{}, nil
	}

	var (
		mu      sync.Mutex
		stored  = []string{}
		skipped []Skipped
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, url := range urls {
		url := url
		g.Go(func() error {
			publicURL, err := r.relocateOne(ctx, username, url)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Warn("skipping image",
					slog.String("url", url),
					slog.String("reason", err.Error()),
				)
				skipped = append(skipped, Skipped{URL: url, Reason: err.Error()})
				return nil
			}
			stored = append(stored, publicURL)
			return nil
		})
	}

	_ = g.Wait()
	return stored, skipped
}

func (r *Relocator) relocateOne(ctx context.Context, username, url string) (string, error) {
	if err := r.probeURL(ctx, url); err != nil {
		return "", err
	}

	data, err := r.download(ctx, url)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.jpg", username, uuid.NewString())
	result, err := r.store.Upload(ctx, storage.UploadInput{
		Key:          key,
		ContentType:  storedContentType,
		CacheControl: storedCacheControl,
		Size:         int64(len(data)),
		Data:         bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return result.URL, nil
}

// probeURL verifies the URL is reachable and serves an image before the
// full download is attempted.
func (r *Relocator) probeURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	resp, err := r.probe.Do(req)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !isImageContentType(ct) {
		return fmt.Errorf("not an image, content type %q", ct)
	}
	return nil
}

func (r *Relocator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	resp, err := r.fetch.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !isImageContentType(ct) {
		return nil, fmt.Errorf("not an image, content type %q", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", r.maxBytes)
	}
	return data, nil
}

func (r *Relocator) Remove(ctx context.Context, urls []string) {
	for _, url := range urls {
		key, ok := r.store.KeyForURL(url)
		if !ok {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			r.logger.Warn("failed to delete stored image",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}

func isImageContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "image/")
}
