// Package notify routes user-facing notifications from the TUI to its
// subscribers (the toast stack) and to a history store.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/fitsel/internal/core/logging"
	"github.com/colonyops/fitsel/internal/core/notify"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. Every notification is
// logged, saved to the store when one is set, then handed to subscribers
// inline. Safe for use from the Bubble Tea Update loop.
type Bus struct {
	store       notify.Store
	subscribers []Subscriber
	mu          sync.Mutex
	log         zerolog.Logger
}

// NewBus creates a notification bus backed by the given store.
// If store is nil, notifications are dispatched to subscribers but not kept.
func NewBus(store notify.Store) *Bus {
	return &Bus{
		store: store,
		log:   logging.Component("notify"),
	}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.log.WithLevel(zerologLevel(n.Level)).Str("kind", "notification").Msg(n.Message)

	if b.store != nil {
		id, err := b.store.Save(context.Background(), n)
		if err != nil {
			b.log.Error().Err(err).Str("message", n.Message).Msg("failed to save notification")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func zerologLevel(l notify.Level) zerolog.Level {
	switch l {
	case notify.LevelError:
		return zerolog.ErrorLevel
	case notify.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns saved notifications, newest first.
// Returns nil if no store is configured.
func (b *Bus) History() ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(context.Background())
}

// Clear deletes all saved notifications.
func (b *Bus) Clear() error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(context.Background())
}
