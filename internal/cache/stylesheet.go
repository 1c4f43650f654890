// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// stylesheet.go provides the Valkey-backed stylesheet cache (L2).
// Generated page stylesheets are keyed by "<theme>:<version>:<page>", so
// every node serving the same theme version shares one copy.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// stylesheetKeyPrefix is the Valkey key prefix for cached stylesheets.
	stylesheetKeyPrefix = "stylesheet:"

	// DefaultStylesheetTTL is how long a generated stylesheet stays cached.
	DefaultStylesheetTTL = 30 * time.Minute
)

// StylesheetCache stores generated stylesheets in Valkey. It satisfies
// theme.SharedCache.
type StylesheetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStylesheetCache creates a stylesheet cache backed by the given client.
func NewStylesheetCache(client *redis.Client, ttl time.Duration) *StylesheetCache {
	if ttl == 0 {
		ttl = DefaultStylesheetTTL
	}
	return &StylesheetCache{client: client, ttl: ttl}
}

// Get returns the cached stylesheet for key.
func (c *StylesheetCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, stylesheetKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("stylesheet cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("stylesheet cache hit", "key", key)
	return val, true
}

// Set stores a stylesheet with the configured TTL.
func (c *StylesheetCache) Set(ctx context.Context, key string, css []byte) {
	if err := c.client.Set(ctx, stylesheetKeyPrefix+key, css, c.ttl).Err(); err != nil {
		slog.Warn("stylesheet cache set error", "key", key, "error", err)
	}
}

// InvalidateTheme removes every cached version and page of a theme.
func (c *StylesheetCache) InvalidateTheme(ctx context.Context, themeID string) {
	c.deleteMatching(ctx, stylesheetKeyPrefix+themeID+":*")
}

// InvalidateAll removes every cached stylesheet.
func (c *StylesheetCache) InvalidateAll(ctx context.Context) {
	c.deleteMatching(ctx, stylesheetKeyPrefix+"*")
}

func (c *StylesheetCache) deleteMatching(ctx context.Context, pattern string) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("stylesheet cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("stylesheet cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	slog.Debug("stylesheet cache invalidated", "pattern", pattern, "deleted", deleted)
}
