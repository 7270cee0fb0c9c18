package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	ch := broker.Subscribe(ctx)

	broker.Publish(CreatedEvent, "payload")

	msg := ListenCmd(ctx, ch)()
	event, ok := msg.(Event[string])
	require.True(t, ok, "expected Event[string], got %T", msg)
	require.Equal(t, "payload", event.Payload)
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())
	broker.Close()

	msg := ListenCmd(context.Background(), ch)()
	require.Nil(t, msg)
}

func TestListenCmd_NilOnCancelledContext(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	msg := ListenCmd(ctx, ch)()
	require.Nil(t, msg)
}

func TestContinuousListener_Listen(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(UpdatedEvent, 7)

	msg := listener.Listen()()
	event, ok := msg.(Event[int])
	require.True(t, ok)
	require.Equal(t, 7, event.Payload)
}
