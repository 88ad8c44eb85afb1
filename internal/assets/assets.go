// Package assets loads slot images and keeps the bytes in memory so a room
// that is visited again does not fetch them twice.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/logger"
)

// ErrNotFound is returned when no source has the requested asset.
var ErrNotFound = errors.New("asset not found")

// Loader fetches the bytes behind an asset URL.
type Loader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// FuncLoader adapts a function to Loader.
type FuncLoader func(ctx context.Context, url string) ([]byte, error)

// Load implements Loader.
func (f FuncLoader) Load(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Manager loads assets from a stack of sources through a shared cache.
type Manager struct {
	sources []Loader
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager with no sources.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSource adds a loader. Sources are searched in reverse order (last added
// = highest priority).
func (m *Manager) AddSource(l Loader) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.sources = append(m.sources, l)
	m.mu.Unlock()
}

// Load returns the asset behind url, from the cache when possible.
func (m *Manager) Load(ctx context.Context, url string) ([]byte, error) {
	if data, ok := m.cache.Get(url); ok {
		return data, nil
	}

	m.mu.RLock()
	sources := m.sources
	m.mu.RUnlock()

	var errs error
	for i := len(sources) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := sources[i].Load(ctx, url)
		if err == nil {
			m.cache.Set(url, data)
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		logger.Debug("asset sources failed", zap.String("url", url), zap.Error(errs))
		return nil, fmt.Errorf("loading %s: %w", url, errs)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache { return m.cache }

// Close drops every source and empties the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
