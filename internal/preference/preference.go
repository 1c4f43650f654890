// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preference stores each visitor's color mode per blog.
package preference

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/models"
)

// keyPrefix is the Valkey key prefix for stored modes.
const keyPrefix = "darkmode:"

// DefaultTTL keeps a preference for a year after its last write.
const DefaultTTL = 365 * 24 * time.Hour

// Store reads and writes color mode preferences. Get returns "" and a nil
// error when the visitor has no stored mode for the blog.
type Store interface {
	Get(ctx context.Context, visitor, slug string) (models.ColorMode, error)
	Set(ctx context.Context, visitor, slug string, mode models.ColorMode) error
}

// Key returns the storage key for one visitor and blog.
func Key(visitor, slug string) string {
	return keyPrefix + visitor + ":" + slug
}

// ValkeyStore keeps preferences in Valkey.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore creates a preference store backed by the given client.
func NewValkeyStore(client *redis.Client, ttl time.Duration) *ValkeyStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

// Get returns the stored mode. Unknown stored values read as no preference.
func (s *ValkeyStore) Get(ctx context.Context, visitor, slug string) (models.ColorMode, error) {
	val, err := s.client.Get(ctx, Key(visitor, slug)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	mode := models.ColorMode(val)
	if !mode.Valid() {
		return "", nil
	}
	return mode, nil
}

// Set stores mode and refreshes its TTL.
func (s *ValkeyStore) Set(ctx context.Context, visitor, slug string, mode models.ColorMode) error {
	if !mode.Valid() {
		return fmt.Errorf("set preference: invalid mode %q", mode)
	}
	if err := s.client.Set(ctx, Key(visitor, slug), string(mode), s.ttl).Err(); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	modes map[string]models.ColorMode
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{modes: make(map[string]models.ColorMode)}
}

func (s *MemoryStore) Get(_ context.Context, visitor, slug string) (models.ColorMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes[Key(visitor, slug)], nil
}

func (s *MemoryStore) Set(_ context.Context, visitor, slug string, mode models.ColorMode) error {
	if !mode.Valid() {
		return fmt.Errorf("set preference: invalid mode %q", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[Key(visitor, slug)] = mode
	return nil
}
