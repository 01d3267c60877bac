package localhake

import (
	"sync"
	"time"

	"github.com/localhake/localhake/content"
)

// PageCache is an in-memory cache of published pages and tags per kind, with TTL.
type PageCache struct {
	mu      sync.RWMutex
	entries map[content.Kind]*cacheEntry
	ttl     time.Duration
	store   *Store
}

type cacheEntry struct {
	pages   []Page
	tags    []string
	fetched time.Time
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl, entries: make(map[content.Kind]*cacheEntry)}
}

func (c *PageCache) valid(kind content.Kind) (*cacheEntry, bool) {
	e, ok := c.entries[kind]
	return e, ok && time.Since(e.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[content.Kind]*cacheEntry)
	c.mu.Unlock()
}

func (c *PageCache) load(kind content.Kind) (*cacheEntry, error) {
	if e, ok := c.valid(kind); ok {
		return e, nil
	}
	pages, err := c.store.ListPages(kind, "")
	if err != nil {
		return nil, err
	}
	tags, err := c.store.ListTags(kind)
	if err != nil {
		return nil, err
	}
	e := &cacheEntry{pages: pages, tags: tags, fetched: time.Now()}
	c.entries[kind] = e
	return e, nil
}

// ensureLoaded returns the cached entry for kind after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded(kind content.Kind) (*cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.valid(kind); ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(kind)
}

// ListPages returns published pages of kind, optionally filtered by tag.
func (c *PageCache) ListPages(kind content.Kind, tag string) ([]Page, error) {
	e, err := c.ensureLoaded(kind)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return e.pages, nil
	}
	var filtered []Page
	for _, p := range e.pages {
		if hasTag(p, tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags from published pages of kind.
func (c *PageCache) ListTags(kind content.Kind) ([]string, error) {
	e, err := c.ensureLoaded(kind)
	if err != nil {
		return nil, err
	}
	return e.tags, nil
}

// GetPage returns a single published page from the cache.
func (c *PageCache) GetPage(kind content.Kind, slug string) (Page, error) {
	e, err := c.ensureLoaded(kind)
	if err != nil {
		return Page{}, err
	}
	for _, p := range e.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}
