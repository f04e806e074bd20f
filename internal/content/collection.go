package content

import (
	"sort"
	"sync"
)

// Collection is the in-memory entry catalogue. Reads vastly outnumber
// reloads, so it swaps the whole map under a write lock on Replace.
type Collection struct {
	mu      sync.RWMutex
	bySlug  map[string]*Entry
	ordered []*Entry
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{bySlug: make(map[string]*Entry)}
}

// Replace swaps in a freshly loaded entry set. Entries are kept sorted by
// title so listings are stable across reloads.
func (c *Collection) Replace(entries []*Entry) {
	bySlug := make(map[string]*Entry, len(entries))
	ordered := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := bySlug[e.Slug]; dup {
			continue
		}
		bySlug[e.Slug] = e
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Title < ordered[j].Title
	})

	c.mu.Lock()
	c.bySlug = bySlug
	c.ordered = ordered
	c.mu.Unlock()
}

// Get returns the entry for a slug.
func (c *Collection) Get(slug string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.bySlug[slug]
	return e, ok
}

// Has reports whether a slug exists in the catalogue.
func (c *Collection) Has(slug string) bool {
	_, ok := c.Get(slug)
	return ok
}

// List returns entry summaries, optionally filtered by category.
func (c *Collection) List(category string) []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summaries := make([]Summary, 0, len(c.ordered))
	for _, e := range c.ordered {
		if category != "" && e.Category != category {
			continue
		}
		summaries = append(summaries, e.Summarize())
	}
	return summaries
}

// All returns every entry in title order.
func (c *Collection) All() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Entry, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}
