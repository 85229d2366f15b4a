package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/infra/produce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDelivery struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (d *fakeDelivery) Ack(multiple bool) error { d.acked = true; return nil }

func (d *fakeDelivery) Nack(multiple, requeue bool) error {
	d.nacked = true
	d.requeued = requeue
	return nil
}

type fakeStore struct {
	deleted   []string
	deleteErr error
}

func (s *fakeStore) Put(ctx context.Context, data []byte, contentType, originalName string) (string, error) {
	return "", nil
}

func (s *fakeStore) Delete(ctx context.Context, imagePath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, imagePath)
	return nil
}

// The worker runs without any database client; its infra carries only a
// logger.
func newTestConsumer(store *fakeStore) *CleanupConsumer {
	inf := &infra.Infra{Logger: infra.InitLoggerClient(&config.EnvConfig{})}
	return NewCleanupConsumer(nil, inf, store)
}

func eventBody(t *testing.T, event produce.ProductEventMessage) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestHandleEventDropsMalformedMessage(t *testing.T) {
	store := &fakeStore{}
	consumer := newTestConsumer(store)
	msg := &fakeDelivery{}

	consumer.handleEvent(context.Background(), []byte("{not json"), msg)

	assert.True(t, msg.nacked)
	assert.False(t, msg.requeued, "malformed messages must not be redelivered")
	assert.Empty(t, store.deleted)
}

func TestHandleEventIgnoresCreatedEvents(t *testing.T) {
	store := &fakeStore{}
	consumer := newTestConsumer(store)
	msg := &fakeDelivery{}

	body := eventBody(t, produce.ProductEventMessage{
		Event:     produce.EventProductCreated,
		ProductID: "1700000000000",
		ImagePath: "/images/keep.png",
	})
	consumer.handleEvent(context.Background(), body, msg)

	assert.True(t, msg.acked)
	assert.Empty(t, store.deleted)
}

func TestHandleEventIgnoresDeletionsWithoutImage(t *testing.T) {
	store := &fakeStore{}
	consumer := newTestConsumer(store)
	msg := &fakeDelivery{}

	body := eventBody(t, produce.ProductEventMessage{
		Event:     produce.EventProductDeleted,
		ProductID: "1700000000000",
	})
	consumer.handleEvent(context.Background(), body, msg)

	assert.True(t, msg.acked)
	assert.Empty(t, store.deleted)
}

func TestHandleEventRemovesOrphanedImage(t *testing.T) {
	store := &fakeStore{}
	consumer := newTestConsumer(store)
	msg := &fakeDelivery{}

	body := eventBody(t, produce.ProductEventMessage{
		Event:     produce.EventProductDeleted,
		ProductID: "1700000000000",
		ImagePath: "/images/orphan.png",
	})
	consumer.handleEvent(context.Background(), body, msg)

	assert.True(t, msg.acked)
	assert.Equal(t, []string{"/images/orphan.png"}, store.deleted)
}

func TestHandleEventRequeuesOnStoreFailure(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("store unavailable")}
	consumer := newTestConsumer(store)
	msg := &fakeDelivery{}

	body := eventBody(t, produce.ProductEventMessage{
		Event:     produce.EventProductDeleted,
		ProductID: "1700000000000",
		ImagePath: "/images/orphan.png",
	})
	consumer.handleEvent(context.Background(), body, msg)

	assert.False(t, msg.acked)
	assert.True(t, msg.nacked)
	assert.True(t, msg.requeued, "a failed removal must be retried")
}
