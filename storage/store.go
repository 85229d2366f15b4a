package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// MaxImageBytes is the upload ceiling. Anything above it is rejected with
// ErrImageTooLarge before a single byte touches the backing store.
const MaxImageBytes = 500 * 1024

// PublicPrefix is the URL prefix every stored blob is addressed under.
const PublicPrefix = "/images"

var (
	ErrImageTooLarge        = errors.New("image exceeds maximum allowed size")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// allowedImageTypes maps accepted MIME types to their canonical extension,
// used when the original filename carries none.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store is the image blob store. Put validates and persists an uploaded
// image under a collision-resistant name and returns its public path.
// Delete is idempotent: removing a path that does not exist succeeds.
type Store interface {
	Put(ctx context.Context, data []byte, contentType, originalName string) (string, error)
	Delete(ctx context.Context, imagePath string) error
}

func validateImage(data []byte, contentType string) error {
	if len(data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
	return nil
}

// generateName builds "<unix-millis>-<uuid><ext>". The timestamp keeps names
// roughly sortable, the uuid suffix guarantees concurrent uploads never
// collide. The extension comes from the original filename, falling back to
// content sniffing and finally the declared MIME type.
func generateName(data []byte, contentType, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			ext = "." + kind.Extension
		} else {
			ext = allowedImageTypes[contentType]
		}
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// fileName strips the public prefix from a stored path, returning the bare
// blob name. Paths from other prefixes are returned unchanged.
func fileName(imagePath string) string {
	name := strings.TrimPrefix(imagePath, PublicPrefix+"/")
	return filepath.Base(name)
}
