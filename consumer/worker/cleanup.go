package worker

import (
	"context"
	"encoding/json"

	"github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/infra/produce"
	"github.com/maisonthread/storefront/storage"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CleanupConsumer listens for catalog events and re-runs blob removal for
// deleted products. The delete handler removes the record before the image,
// so a crash in between leaves an orphaned blob; replaying the event against
// the idempotent store delete mops it up.
type CleanupConsumer struct {
	channel *amqp.Channel
	infra   *infra.Infra
	store   storage.Store
}

// delivery is the acknowledgement surface of amqp.Delivery.
type delivery interface {
	Ack(multiple bool) error
	Nack(multiple bool, requeue bool) error
}

func NewCleanupConsumer(channel *amqp.Channel, infra *infra.Infra, store storage.Store) *CleanupConsumer {
	return &CleanupConsumer{
		channel: channel,
		infra:   infra,
		store:   store,
	}
}

func (c *CleanupConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.CatalogEventQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Started listening on queue: %s", produce.CatalogEventQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Channel closed")
					return
				}
				c.handleEvent(ctx, msg.Body, msg)
			}
		}
	}()

	return nil
}

func (c *CleanupConsumer) handleEvent(ctx context.Context, body []byte, msg delivery) {
	var event produce.ProductEventMessage
	if err := json.Unmarshal(body, &event); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Dropping malformed message")
		_ = msg.Nack(false, false)
		return
	}

	if event.Event != produce.EventProductDeleted || event.ImagePath == "" {
		_ = msg.Ack(false)
		return
	}

	// Store deletes are idempotent: if the handler already removed the blob
	// this is a no-op, otherwise it clears the orphan.
	if err := c.store.Delete(ctx, event.ImagePath); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Failed to remove image %s for product %s", event.ImagePath, event.ProductID)
		_ = msg.Nack(false, true) // requeue for another attempt
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Confirmed image removal for product %s", event.ProductID)
	_ = msg.Ack(false)
}
