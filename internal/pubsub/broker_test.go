package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type commandPayload struct {
	CommandID int
	Label     string
}

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(200 * time.Millisecond):
		require.FailNow(t, "timed out waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	b := NewBroker[commandPayload]()
	defer b.Close()

	ctx := context.Background()
	subs := []<-chan Event[commandPayload]{b.Subscribe(ctx), b.Subscribe(ctx)}
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(CommandExecuted, commandPayload{CommandID: 7, Label: "Copy"})

	for _, ch := range subs {
		ev := receive(t, ch)
		require.Equal(t, CommandExecuted, ev.Type)
		require.Equal(t, 7, ev.Payload.CommandID)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_CancelledSubscriptionIsRemoved(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_FullSubscriberDropsEvents(t *testing.T) {
	b := NewBrokerWithBuffer[int](1)
	defer b.Close()

	ch := b.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		b.Publish(MenuReloaded, 1)
		b.Publish(MenuReloaded, 2)
		b.Publish(MenuReloaded, 3)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		require.FailNow(t, "Publish blocked")
	}

	require.Equal(t, 1, receive(t, ch).Payload)
	select {
	case ev := <-ch:
		require.FailNow(t, "unexpected event", "%v", ev)
	default:
	}
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker[string]()
	ch := b.Subscribe(context.Background())

	b.Close()
	b.Close()

	_, ok := <-ch
	require.False(t, ok)
	require.Zero(t, b.SubscriberCount())

	late := b.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")

	require.NotPanics(t, func() { b.Publish(CommandIgnored, "x") })
}
