package services

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// ObjectStore persists uploaded files and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, objectPath, contentType string, src io.Reader) (string, error)
}

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Put(ctx context.Context, objectPath, contentType string, src io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload file to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return "https://storage.googleapis.com/" + s.bucket + "/" + objectPath, nil
}

// DisabledStore is used when no bucket is configured.
type DisabledStore struct{}

func (DisabledStore) Put(ctx context.Context, objectPath, contentType string, src io.Reader) (string, error) {
	return "", ErrStorageUnavailable
}
