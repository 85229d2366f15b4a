package config

import (
	"os"
	"strconv"
)

type EnvConfig struct {
	Server struct {
		Port string
	}
	Database struct {
		Driver   string // "postgres" or "embedded"
		BoltPath string
		Postgres struct {
			Host     string
			Port     string
			Username string
			Password string
			Database string
		}
	}
	Storage struct {
		Driver string // "disk" or "minio"
		Root   string // disk driver: directory holding image blobs
		Minio  struct {
			Endpoint  string
			AccessKey string
			SecretKey string
			Bucket    string
			UseSSL    bool
			PublicURL string // base URL clients fetch blobs from
		}
	}
	JWT struct {
		SecretKey string
		Expire    int // seconds
	}
	Admin struct {
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
		CacheTTL int // seconds
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	CORS struct {
		AllowDomains string
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.Server.Port = os.Getenv("PORT")
	if config.Server.Port == "" {
		config.Server.Port = "5000"
	}

	// Database
	config.Database.Driver = os.Getenv("DB_DRIVER")
	if config.Database.Driver == "" {
		config.Database.Driver = "embedded"
	}
	config.Database.BoltPath = os.Getenv("DB_BOLT_PATH")
	if config.Database.BoltPath == "" {
		config.Database.BoltPath = "data/storefront.db"
	}
	config.Database.Postgres.Host = os.Getenv("POSTGRES_HOST")
	config.Database.Postgres.Port = os.Getenv("POSTGRES_PORT")
	if config.Database.Postgres.Port == "" {
		config.Database.Postgres.Port = "5432"
	}
	config.Database.Postgres.Username = os.Getenv("POSTGRES_USER")
	config.Database.Postgres.Password = os.Getenv("POSTGRES_PASSWORD")
	config.Database.Postgres.Database = os.Getenv("POSTGRES_DB")

	// Storage
	config.Storage.Driver = os.Getenv("STORAGE_DRIVER")
	if config.Storage.Driver == "" {
		config.Storage.Driver = "disk"
	}
	config.Storage.Root = os.Getenv("STORAGE_ROOT")
	if config.Storage.Root == "" {
		config.Storage.Root = "public/images"
	}
	config.Storage.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Storage.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Storage.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Storage.Minio.Bucket = os.Getenv("MINIO_BUCKET")
	if config.Storage.Minio.Bucket == "" {
		config.Storage.Minio.Bucket = "storefront-images"
	}
	config.Storage.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	config.Storage.Minio.PublicURL = os.Getenv("MINIO_PUBLIC_URL")
	if config.Storage.Minio.PublicURL == "" && config.Storage.Minio.Endpoint != "" {
		// Without a CDN or reverse proxy in front, blobs are fetched straight
		// from the bucket.
		scheme := "http"
		if config.Storage.Minio.UseSSL {
			scheme = "https"
		}
		config.Storage.Minio.PublicURL = scheme + "://" + config.Storage.Minio.Endpoint + "/" + config.Storage.Minio.Bucket
	}

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	if val := os.Getenv("JWT_EXPIRE"); val != "" {
		config.JWT.Expire, _ = strconv.Atoi(val)
	}
	if config.JWT.Expire == 0 {
		config.JWT.Expire = 3600 * 24
	}

	config.Admin.Username = os.Getenv("ADMIN_USERNAME")
	config.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	// Redis
	config.Redis.Host = os.Getenv("REDIS_HOST")
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	if val := os.Getenv("REDIS_CACHE_TTL"); val != "" {
		config.Redis.CacheTTL, _ = strconv.Atoi(val)
	}
	if config.Redis.CacheTTL == 0 {
		config.Redis.CacheTTL = 60
	}

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")

	// Telemetry
	config.Telemetry.OTLPEndpoint = os.Getenv("OTLP_ENDPOINT")
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "storefront-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
