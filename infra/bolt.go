package infra

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/maisonthread/storefront/config"
	bolt "go.etcd.io/bbolt"
)

// BoltClient is the embedded single-file database used when no Postgres is
// configured. One process owns the file exclusively.
type BoltClient struct {
	DB *bolt.DB
}

func InitBoltClient(cfg *config.EnvConfig) *BoltClient {
	path := cfg.Database.BoltPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		log.Fatalf("Failed to open embedded database: %v", err)
	}

	log.Println("Opened embedded database:", path)

	return &BoltClient{DB: db}
}
