package infra

import (
	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/infra/produce"
)

// Infra holds every external client for the process. Postgres/Bolt and
// Minio are driver-dependent; Redis and RabbitMQ are optional and stay nil
// when not configured so the service can run standalone.
type Infra struct {
	Postgres *PostgresClient
	Bolt     *BoltClient
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Minio    *MinioClient
	Logger   *LoggerClient
	Produce  *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	env := cfg.EnvConfig

	logger := InitLoggerClient(env)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	infra := &Infra{Logger: logger}

	switch env.Database.Driver {
	case "postgres":
		infra.Postgres = InitPostgresClient(env)
		if infra.Postgres == nil {
			panic("Failed to initialize Postgres service")
		}
	default:
		infra.Bolt = InitBoltClient(env)
		if infra.Bolt == nil {
			panic("Failed to initialize embedded database")
		}
	}

	if env.Storage.Driver == "minio" {
		infra.Minio = InitMinioClient(env)
		if infra.Minio == nil {
			panic("Failed to initialize MinIO service")
		}
	}

	if env.Redis.Host != "" {
		infra.Redis = InitRedisClient(env)
	}

	if env.RabbitMQ.Host != "" {
		infra.RabbitMQ = InitRabbitMQClient(env)
		infra.Produce = produce.InitProduce(infra.RabbitMQ.Channel)
	}

	infraInstance = infra
	return infraInstance
}

// InitWorkerInfra wires the consumer process: logger, RabbitMQ with the
// event producer (which declares the exchange and queue), and MinIO when it
// backs the image store. Workers never open the catalog database; the API
// server holds an exclusive lock on the embedded file and a second opener
// would block until its timeout and die.
func InitWorkerInfra(cfg *config.Config) *Infra {
	env := cfg.EnvConfig

	infra := &Infra{Logger: InitLoggerClient(env)}

	if env.RabbitMQ.Host != "" {
		infra.RabbitMQ = InitRabbitMQClient(env)
		infra.Produce = produce.InitProduce(infra.RabbitMQ.Channel)
	}

	if env.Storage.Driver == "minio" {
		infra.Minio = InitMinioClient(env)
	}

	return infra
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
