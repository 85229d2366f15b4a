package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/consumer/worker"
	infraPkg "github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/storage"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitWorkerInfra(cfg)

	if infra.RabbitMQ == nil {
		log.Fatal("Consumer requires RabbitMQ; set RABBITMQ_HOST")
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupConsumer := worker.NewCleanupConsumer(infra.RabbitMQ.Channel, infra, store)
	if err := cleanupConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start cleanup consumer: %v", err)
		log.Fatalf("Failed to start cleanup consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
