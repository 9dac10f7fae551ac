package storage

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

// GCSStorage implements file storage on Google Cloud Storage. Objects are
// written publicly readable and served from the canonical
// storage.googleapis.com URL.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a cloud storage backend for the given bucket.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewGCSStorage(ctx context.Context, bucket, credentialsFile string) (*GCSStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %w", err)
	}

	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (g *GCSStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	obj := g.client.Bucket(g.bucket).Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = "publicRead"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", g.wrap("put", key, err)
	}
	if err := w.Close(); err != nil {
		return "", g.wrap("put", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key), nil
}

func (g *GCSStorage) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return g.wrap("delete", key, err)
	}
	return nil
}

func (g *GCSStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := g.client.Bucket(g.bucket).Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, 0, nil
		}
		return false, 0, g.wrap("stat", key, err)
	}
	return true, attrs.Size, nil
}

// Close releases the underlying client connections.
func (g *GCSStorage) Close() error {
	return g.client.Close()
}

func (g *GCSStorage) wrap(op, key string, err error) error {
	return &domain.ExternalServiceError{
		Service: "gcs",
		Err:     fmt.Errorf("%s %s/%s: %w", op, g.bucket, key, err),
	}
}
