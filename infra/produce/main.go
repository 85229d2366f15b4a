package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	CatalogService *CatalogEventService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	catalogService := InitCatalogEventService(channel)
	if catalogService == nil {
		panic("Failed to initialize Catalog event service")
	}

	produceInstance = &Produce{
		CatalogService: catalogService,
	}

	return produceInstance
}
