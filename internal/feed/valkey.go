// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Valkey pub/sub channels, one per record kind.
const (
	BlogChannel  = "inkwell:blog-updates"
	ThemeChannel = "inkwell:theme-updates"
)

// Channel returns the pub/sub channel for a kind.
func Channel(k Kind) (string, error) {
	switch k {
	case KindBlog:
		return BlogChannel, nil
	case KindTheme:
		return ThemeChannel, nil
	default:
		return "", fmt.Errorf("unknown event kind %q", k)
	}
}

// Compile-time interface guard.
var _ Feed = (*ValkeyFeed)(nil)

// ValkeyFeed publishes through Valkey pub/sub so every node sees every
// change. Local subscribers are served by Run, including for events this
// node published itself.
type ValkeyFeed struct {
	client *redis.Client
	local  *Bus
}

// NewValkeyFeed creates a feed on the given client. Call Run to start
// delivering events.
func NewValkeyFeed(client *redis.Client) *ValkeyFeed {
	return &ValkeyFeed{client: client, local: NewBus()}
}

// Publish sends e to every node.
func (f *ValkeyFeed) Publish(ctx context.Context, e Event) error {
	channel, err := Channel(e.Kind)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := f.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	slog.Debug("feed event published", "event", e.String())
	return nil
}

// Subscribe registers a local handler.
func (f *ValkeyFeed) Subscribe(h Handler) (unsubscribe func()) {
	return f.local.Subscribe(h)
}

// Run receives events from Valkey until ctx is cancelled.
func (f *ValkeyFeed) Run(ctx context.Context) error {
	sub := f.client.Subscribe(ctx, BlogChannel, ThemeChannel)
	defer sub.Close()

	// Wait for the subscription confirmation so no event is missed after
	// Run has been started.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe feed: %w", err)
	}
	slog.Info("feed subscribed", "channels", []string{BlogChannel, ThemeChannel})

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			e, err := decode(msg)
			if err != nil {
				slog.Warn("feed message dropped", "channel", msg.Channel, "error", err)
				continue
			}
			f.local.Publish(ctx, e)
		}
	}
}

func decode(msg *redis.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if want, err := Channel(e.Kind); err != nil || want != msg.Channel {
		return Event{}, fmt.Errorf("event kind %q on channel %s", e.Kind, msg.Channel)
	}
	if e.Key == "" {
		return Event{}, fmt.Errorf("event without key")
	}
	return e, nil
}
