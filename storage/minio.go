package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// MinioStore keeps image blobs in a single MinIO bucket. The bucket is
// expected to exist; infra creates it at start when missing. Stored paths
// are qualified with publicURL, the base clients fetch blobs from (the
// bucket endpoint itself, or a CDN in front of it).
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStore(client *minio.Client, bucket, publicURL string) *MinioStore {
	return &MinioStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *MinioStore) Put(ctx context.Context, data []byte, contentType, originalName string) (string, error) {
	if err := validateImage(data, contentType); err != nil {
		return "", err
	}

	name := generateName(data, contentType, originalName)
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *MinioStore) Delete(ctx context.Context, imagePath string) error {
	// RemoveObject on a missing key is a no-op in S3 semantics, which gives
	// us the tolerant delete for free.
	err := s.client.RemoveObject(ctx, s.bucket, fileName(imagePath), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove image %s: %w", imagePath, err)
	}
	return nil
}
