// Package minio implements image storage on a MinIO (or other S3
// compatible) bucket.
package minio

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/katakonsumen/review-service/internal/storage"
)

// Config holds the connection settings for the bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// PublicBaseURL is the prefix public object URLs are built from, for
	// example "https://cdn.example.com/review-images". When empty, URLs
	// point directly at the MinIO endpoint.
	PublicBaseURL string
}

// Storage stores objects in a single MinIO bucket.
type Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// New connects to MinIO and ensures the configured bucket exists.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", cfg.Bucket, err)
		}
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Storage{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (s *Storage) Upload(ctx context.Context, input storage.UploadInput) (storage.UploadResult, error) {
	opts := minio.PutObjectOptions{
		ContentType:  input.ContentType,
		CacheControl: input.CacheControl,
	}

	_, err := s.client.PutObject(ctx, s.bucket, input.Key, input.Data, input.Size, opts)
	if err != nil {
		return storage.UploadResult{}, fmt.Errorf("uploading %s: %w", input.Key, err)
	}

	return storage.UploadResult{
		Key: input.Key,
		URL: s.baseURL + "/" + input.Key,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *Storage) KeyForURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
