package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore keeps image blobs as flat files under a single root directory,
// served statically under PublicPrefix.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if it is absent and returns the
// store. Creation is idempotent so repeated process starts are safe.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image store root %s: %w", root, err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the directory blobs are written to.
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) Put(ctx context.Context, data []byte, contentType, originalName string) (string, error) {
	if err := validateImage(data, contentType); err != nil {
		return "", err
	}

	name := generateName(data, contentType, originalName)
	dst := filepath.Join(s.root, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

func (s *DiskStore) Delete(ctx context.Context, imagePath string) error {
	dst := filepath.Join(s.root, fileName(imagePath))
	err := os.Remove(dst)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %s: %w", imagePath, err)
	}
	return nil
}
