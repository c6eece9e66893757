// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps loaded tables in memory between explorer requests.
//
// Entries are keyed by source identity (path, size and modification time
// for files; the URL for remote sources), so an edited file is reloaded on
// the next Get. Remote sources are only reloaded after Invalidate or Purge.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/cord-explorer/internal/dataset"
)

// LoadFunc loads the table for a source.
type LoadFunc func(ctx context.Context, source string) (*dataset.Table, error)

// IdentifyFunc returns the identity key for a source.
type IdentifyFunc func(source string) (string, error)

// Observer receives cache events. Any field may be nil.
type Observer struct {
	Hit  func(source string)
	Miss func(source string)
	Load func(source string, took time.Duration, err error)
}

// Tables caches loaded tables by source identity.
type Tables struct {
	load     LoadFunc
	identify IdentifyFunc
	obs      Observer

	mu      sync.Mutex
	entries map[string]entry // source -> entry
	group   singleflight.Group
}

type entry struct {
	key   string
	table *dataset.Table
}

// New returns an empty cache that loads with load and keys entries with
// dataset.Identify.
func New(load LoadFunc, obs Observer) *Tables {
	return &Tables{
		load:     load,
		identify: dataset.Identify,
		obs:      obs,
		entries:  make(map[string]entry),
	}
}

// Get returns the cached table for source, loading it when the source is
// not cached or its identity changed. Concurrent misses for the same
// identity share one load.
func (c *Tables) Get(ctx context.Context, source string) (*dataset.Table, error) {
	key, err := c.identify(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	e, ok := c.entries[source]
	c.mu.Unlock()
	if ok && e.key == key {
		if c.obs.Hit != nil {
			c.obs.Hit(source)
		}
		return e.table, nil
	}

	if c.obs.Miss != nil {
		c.obs.Miss(source)
	}

	// The shared load outlives any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		start := time.Now()
		tbl, err := c.load(loadCtx, source)
		if c.obs.Load != nil {
			c.obs.Load(source, time.Since(start), err)
		}
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[source] = entry{key: key, table: tbl}
		c.mu.Unlock()
		return tbl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Table), nil
}

// Invalidate drops the entry for source. The next Get reloads it.
func (c *Tables) Invalidate(source string) {
	c.mu.Lock()
	delete(c.entries, source)
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *Tables) Purge() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len returns the number of cached sources.
func (c *Tables) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
