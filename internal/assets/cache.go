// Package assets caches renderable resources keyed by their source paths.
//
// A [Cache] is owned by the application session and handed to whatever
// needs meshes. It is safe for concurrent use, so meshes may be loaded or
// released while the frame loop is running.
package assets

import (
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var ErrClosed = errors.New("assets: cache closed")

// Key identifies a mesh by its model file and optional texture file.
type Key struct {
	Model   string
	Texture string
}

// Loader creates and destroys the backend handle for a key. Load should
// still succeed without the texture when the texture file is missing.
type Loader[M any] interface {
	Load(key Key) (M, error)
	Unload(handle M)
}

type entry[M any] struct {
	handle M
	refs   int
}

type Cache[M any] struct {
	mu      sync.RWMutex
	loader  Loader[M]
	entries map[Key]*entry[M]
	closed  bool
	log     zerolog.Logger
}

func NewCache[M any](loader Loader[M], log zerolog.Logger) *Cache[M] {
	return &Cache[M]{
		loader:  loader,
		entries: make(map[Key]*entry[M]),
		log:     log.With().Str("component", "assets").Logger(),
	}
}

// Acquire returns the handle for key, loading it on first use.
func (c *Cache[M]) Acquire(key Key) (M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero M
	if c.closed {
		return zero, ErrClosed
	}
	if e, ok := c.entries[key]; ok {
		e.refs++
		c.log.Debug().Str("model", key.Model).Int("refs", e.refs).Msg("cache hit")
		return e.handle, nil
	}

	c.checkPaths(key)

	handle, err := c.loader.Load(key)
	if err != nil {
		c.log.Error().Err(err).Str("model", key.Model).Msg("failed to load model")
		return zero, err
	}
	c.entries[key] = &entry[M]{handle: handle, refs: 1}
	c.log.Info().Str("model", key.Model).Str("texture", key.Texture).Msg("model loaded")
	return handle, nil
}

// Loaded reports whether key currently has a handle.
func (c *Cache[M]) Loaded(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *Cache[M]) checkPaths(key Key) {
	if _, err := os.Stat(key.Model); err != nil {
		c.log.Warn().Str("model", key.Model).Msg("model path does not exist")
	}
	if key.Texture == "" {
		return
	}
	if _, err := os.Stat(key.Texture); err != nil {
		c.log.Warn().Str("texture", key.Texture).Msg("texture path does not exist, using untextured model")
	}
}

// Release drops one reference and unloads the handle when none remain.
func (c *Cache[M]) Release(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(c.entries, key)
	c.loader.Unload(e.handle)
	c.log.Info().Str("model", key.Model).Msg("model unloaded")
}

func (c *Cache[M]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close unloads every handle. Further Acquire calls fail with ErrClosed.
func (c *Cache[M]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	for key, e := range c.entries {
		c.loader.Unload(e.handle)
		delete(c.entries, key)
	}
	c.closed = true
	c.log.Debug().Msg("asset cache closed")
}
