package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/http/controller"
	routes "github.com/maisonthread/storefront/http/route"
	infraPkg "github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/repository"
	"github.com/maisonthread/storefront/storage"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()

	shutdownTelemetry, err := infraPkg.InitTelemetry(context.Background(), cfg.EnvConfig)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Printf("Telemetry shutdown failed: %v", err)
		}
	}()

	infra := infraPkg.InitInfra(cfg)

	repo, err := repository.InitRepository(infra)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	var store storage.Store
	switch cfg.EnvConfig.Storage.Driver {
	case "minio":
		store = storage.NewMinioStore(infra.Minio.Client, infra.Minio.Bucket, cfg.EnvConfig.Storage.Minio.PublicURL)
	default:
		diskStore, err := storage.NewDiskStore(cfg.EnvConfig.Storage.Root)
		if err != nil {
			log.Fatalf("Failed to initialize image store: %v", err)
		}
		store = diskStore
	}

	ctrl := controller.NewController(cfg, infra, repo, store)

	router := routes.SetupRouter(ctrl)

	port := cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on :" + port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
