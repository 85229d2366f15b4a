package produce

import (
	"context"
	"encoding/json"
	"time"

	"github.com/maisonthread/storefront/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	CatalogExchange        = "catalog.exchange"
	CatalogEventQueue      = "catalog.events"
	CatalogEventRoutingKey = "catalog.event"

	EventProductCreated = "product.created"
	EventProductDeleted = "product.deleted"
)

// ProductEventMessage is published on every catalog mutation so downstream
// consumers (feeds, notifications) can react without polling the API.
type ProductEventMessage struct {
	Event     string `json:"event"`
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Category  string `json:"category,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Price     int64  `json:"price,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// CatalogEventService publishes catalog mutation events.
type CatalogEventService struct {
	channel *amqp.Channel
}

func InitCatalogEventService(channel *amqp.Channel) *CatalogEventService {
	service := &CatalogEventService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		CatalogExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Catalog exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		CatalogEventQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Catalog event queue: " + err.Error())
	}

	err = channel.QueueBind(
		CatalogEventQueue,
		CatalogEventRoutingKey,
		CatalogExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Catalog event queue: " + err.Error())
	}

	return service
}

// PublishProductCreated announces a freshly inserted product.
func (s *CatalogEventService) PublishProductCreated(ctx context.Context, product *entity.Product) error {
	return s.publish(ctx, ProductEventMessage{
		Event:     EventProductCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Tag:       product.Tag,
		Price:     product.Price,
		ImagePath: product.ImagePath,
	})
}

// PublishProductDeleted announces a removed product. The image path rides
// along so the cleanup consumer can retry blob removal if the handler's
// best-effort delete was interrupted.
func (s *CatalogEventService) PublishProductDeleted(ctx context.Context, productID, imagePath string) error {
	return s.publish(ctx, ProductEventMessage{
		Event:     EventProductDeleted,
		ProductID: productID,
		ImagePath: imagePath,
	})
}

func (s *CatalogEventService) publish(ctx context.Context, msg ProductEventMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		CatalogExchange,
		CatalogEventRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
