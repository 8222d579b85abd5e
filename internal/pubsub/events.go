// Package pubsub fans menu events out to any number of listeners, including
// Bubble Tea programs.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// CommandExecuted is published after a command reached an item that
	// handled it through a click handler, a role or a toggle.
	CommandExecuted EventType = "command.executed"
	// CommandIgnored is published when a command id matched no enabled item
	// or the item had nothing to run.
	CommandIgnored EventType = "command.ignored"
	// MenuReloaded is published after a template file change was compiled.
	MenuReloaded EventType = "menu.reloaded"
	// MenuReloadFailed is published when a changed template did not compile.
	MenuReloadFailed EventType = "menu.reload_failed"
)

// Event is one published occurrence with its payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes payloads under an event type.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
