// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package feed carries change notifications for blog and theme records.
// Notifications only say that a record moved to a new version; consumers
// re-read the record themselves.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Kind names the record type an event refers to.
type Kind string

const (
	KindBlog  Kind = "blog"
	KindTheme Kind = "theme"
)

// Event announces that a record changed. Key is the blog slug or theme id.
type Event struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key"`
	Version int    `json:"version"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s:%s@%d", e.Kind, e.Key, e.Version)
}

// Handler receives events. It runs on the publishing goroutine and must not
// block for long.
type Handler func(ctx context.Context, e Event)

// Feed publishes events and fans them out to subscribers.
type Feed interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(h Handler) (unsubscribe func())
}

// Compile-time interface guard.
var _ Feed = (*Bus)(nil)

// Bus is an in-process Feed. Publish is synchronous.
type Bus struct {
	mu       sync.RWMutex
	handlers []handlerEntry
	nextID   uint64
}

type handlerEntry struct {
	id      uint64
	handler Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Publish delivers e to every subscriber.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	handlers := make([]handlerEntry, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		safeCall(ctx, h.handler, e)
	}
	return nil
}

// Subscribe registers h. The returned function removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, handlerEntry{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, entry := range b.handlers {
			if entry.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

func safeCall(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("feed handler panicked", "event", e.String(), "panic", r)
		}
	}()
	h(ctx, e)
}
