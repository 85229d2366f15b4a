package infra

import (
	"context"
	"fmt"

	"github.com/maisonthread/storefront/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClient struct {
	Client   *minio.Client
	Bucket   string
	Endpoint string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Storage.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.Minio.AccessKey, cfg.Storage.Minio.SecretKey, ""),
		Secure: cfg.Storage.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	m := &MinioClient{
		Client:   client,
		Bucket:   cfg.Storage.Minio.Bucket,
		Endpoint: endpoint,
	}

	if err := m.EnsureBucket(context.Background()); err != nil {
		panic(fmt.Sprintf("Failed to prepare MinIO bucket: %v", err))
	}

	return m
}

// EnsureBucket creates the image bucket when it does not exist yet.
// Idempotent so repeated process starts are safe.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.Bucket, err)
	}
	return nil
}
