package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(MenuReloadFailed, "bad.yaml")

	ev, ok := ListenCmd(ctx, ch)().(Event[string])
	require.True(t, ok)
	require.Equal(t, MenuReloadFailed, ev.Type)
	require.Equal(t, "bad.yaml", ev.Payload)
}

func TestListenCmd_NilWhenDone(t *testing.T) {
	closed := make(chan Event[string])
	close(closed)
	require.Nil(t, ListenCmd(context.Background(), closed)())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Nil(t, ListenCmd(ctx, make(chan Event[string]))())
}

func TestContinuousListener_ReceivesInOrder(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewContinuousListener(ctx, b)
	b.Publish(CommandExecuted, 1)
	b.Publish(CommandIgnored, 2)

	for _, want := range []struct {
		typ     EventType
		payload int
	}{{CommandExecuted, 1}, {CommandIgnored, 2}} {
		ev, ok := l.Listen()().(Event[int])
		require.True(t, ok)
		require.Equal(t, want.typ, ev.Type)
		require.Equal(t, want.payload, ev.Payload)
	}
}
