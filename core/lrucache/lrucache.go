// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of byte slices, used by the server for rendered catalog exports. When created with
compression enabled via [New], values are stored zstd-compressed whenever that saves
space and are transparently decompressed by [Cache.Get].
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int                      // Maximum number of entries
	evictList *list.List               // Front is the most recently used entry
	items     map[string]*list.Element // Maps keys to their list elements
	lock      sync.Mutex

	zstdEnc *zstd.Encoder // nil when compression is disabled
	zstdDec *zstd.Decoder

	hits, misses atomic.Uint64
}

type entry struct {
	key        string
	value      []byte
	compressed bool
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Len    int    `json:"len"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// New creates a new cache with the specified maximum number of entries.
//
// It returns an error if size is not a positive integer.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}

	if compress {
		// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores a copy of value under key, making it the most recently used
// entry. If the cache is over capacity afterwards, the least recently used
// entry is evicted. Add reports whether an eviction occurred.
func (c *Cache) Add(key string, value []byte) bool {
	// Compress before taking the lock; EncodeAll is safe for concurrent use.
	stored, compressed := c.encode(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.value, ent.compressed = stored, compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	if oldest := c.evictList.Back(); oldest != nil {
		c.removeElement(oldest)
	}

	return true
}

// Get returns a copy of the value stored under key and marks it as most
// recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	c.evictList.MoveToFront(el)

	ent := el.Value.(*entry)
	stored, compressed := ent.value, ent.compressed

	c.lock.Unlock()

	value, err := c.decode(stored, compressed)
	if err != nil {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return value, true
}

// Remove deletes key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}

	return ok
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	clear(c.items)
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{Len: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// encode returns the form of value to store. Compression is kept only if it
// saves space; otherwise a copy is stored so callers cannot mutate the cache.
func (c *Cache) encode(value []byte) ([]byte, bool) {
	if len(value) == 0 {
		return []byte{}, false
	}

	if c.zstdEnc != nil {
		if packed := c.zstdEnc.EncodeAll(value, nil); len(packed) < len(value) {
			return packed, true
		}
	}

	return append([]byte(nil), value...), false
}

func (c *Cache) decode(stored []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return append([]byte{}, stored...), nil
	}

	return c.zstdDec.DecodeAll(stored, nil)
}
