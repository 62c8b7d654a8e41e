// Package progress defines the contract for load progress notification.
//
// A load reports per-season outcomes through a Notifier so the caller can
// surface missing or stale seasons without treating them as failures.
package progress

import (
	"context"
	"sync"
)

// Kind classifies a progress event.
type Kind string

// Progress event kinds.
const (
	KindSeasonLoaded  Kind = "season_loaded"
	KindSeasonMissing Kind = "season_missing"
	KindLoadDone      Kind = "load_done"
)

// Event is one progress notification.
type Event struct {
	Kind   Kind   `json:"kind"`
	Year   int    `json:"year,omitempty"`
	Season string `json:"season,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Notifier publishes progress events to an interested consumer.
type Notifier interface {
	// Publish delivers an event. Returns false if the event was dropped
	// (closed or full notifier); loads never block on a slow consumer.
	Publish(ctx context.Context, e Event) bool

	// Events returns the receive side. Closed when the notifier closes.
	Events() <-chan Event

	// Close shuts the notifier down.
	Close() error
}

// Default channel notifier configuration.
const defaultBufferSize = 64

// Option applies a configuration option to the ChannelNotifier.
type Option func(*ChannelNotifier)

// WithBufferSize sets the event channel buffer size.
func WithBufferSize(n int) Option {
	return func(c *ChannelNotifier) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// ChannelNotifier implements Notifier over a buffered channel.
type ChannelNotifier struct {
	bufferSize int
	ch         chan Event
	mu         sync.Mutex
	closed     bool
}

// NewChannelNotifier creates a notifier with configuration options.
func NewChannelNotifier(opts ...Option) *ChannelNotifier {
	c := &ChannelNotifier{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(c)
	}
	c.ch = make(chan Event, c.bufferSize)
	return c
}

// Publish delivers an event without blocking; a full buffer drops it.
func (c *ChannelNotifier) Publish(_ context.Context, e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- e:
		return true
	default:
		return false
	}
}

// Events returns the receive side of the notifier.
func (c *ChannelNotifier) Events() <-chan Event { return c.ch }

// Close shuts the notifier down. Idempotent.
func (c *ChannelNotifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}

// NopNotifier discards every event; the default when a caller does not
// care about progress.
type NopNotifier struct{}

// Publish discards the event.
func (NopNotifier) Publish(context.Context, Event) bool { return true }

// Events returns nil; nothing is ever delivered.
func (NopNotifier) Events() <-chan Event { return nil }

// Close is a no-op.
func (NopNotifier) Close() error { return nil }
