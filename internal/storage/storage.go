// Package storage abstracts the object store that holds review images.
package storage

import (
	"context"
	"io"
)

// UploadInput describes one object to store.
type UploadInput struct {
	Key          string
	ContentType  string
	CacheControl string
	Size         int64
	Data         io.Reader
}

// UploadResult reports where the stored object lives.
type UploadResult struct {
	Key string
	URL string
}

// Storage stores and removes image objects and maps between object keys and
// the public URLs handed out to clients.
type Storage interface {
	// Upload stores the object and returns its key and public URL.
	Upload(ctx context.Context, input UploadInput) (UploadResult, error)

	// Delete removes the object with the given key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// KeyForURL reports the object key a public URL refers to. The second
	// return is false when the URL was not issued by this store.
	KeyForURL(url string) (string, bool)
}
