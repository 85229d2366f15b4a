package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvConfigDerivesMinioPublicURL(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MINIO_BUCKET", "imgs")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_PUBLIC_URL", "")

	cfg := LoadEnvConfig()
	assert.Equal(t, "https://minio.local:9000/imgs", cfg.Storage.Minio.PublicURL)
}

func TestLoadEnvConfigMinioPublicURLOverride(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MINIO_PUBLIC_URL", "https://cdn.example.com/images")

	cfg := LoadEnvConfig()
	assert.Equal(t, "https://cdn.example.com/images", cfg.Storage.Minio.PublicURL)
}

func TestLoadEnvConfigNoMinioNoPublicURL(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("MINIO_PUBLIC_URL", "")

	cfg := LoadEnvConfig()
	assert.Empty(t, cfg.Storage.Minio.PublicURL)
}
