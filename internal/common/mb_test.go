package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadExchangeRoundTrip(t *testing.T) {
	uri := TestRabbitMQ(t)

	mb, err := NewMessageBroker(uri)
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, SetupLeadExchange(mb))

	msgs, err := mb.Consume(ContactCreatedKey, LeadExchange, ContactCreatedQueue)
	require.NoError(t, err)

	payload := []byte(`{"name": "Ana", "email": "ana@mail.com"}`)
	require.NoError(t, mb.Publish(context.Background(), payload, ContactCreatedKey, LeadExchange))

	select {
	case msg := <-msgs:
		assert.Equal(t, payload, msg.Body)
		assert.NoError(t, msg.Ack(false))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the contact event")
	}
}

func TestLeadExchangeRouting(t *testing.T) {
	uri := TestRabbitMQ(t)

	mb, err := NewMessageBroker(uri)
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, SetupLeadExchange(mb))

	reviewMsgs, err := mb.Consume(ReviewCreatedKey, LeadExchange, ReviewCreatedQueue)
	require.NoError(t, err)

	// a contact event must not land on the review queue
	require.NoError(t, mb.Publish(context.Background(), []byte(`{}`), ContactCreatedKey, LeadExchange))

	select {
	case msg := <-reviewMsgs:
		t.Fatalf("unexpected message on the review queue: %s", msg.Body)
	case <-time.After(time.Second):
	}
}
