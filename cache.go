package portfolio

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PostCache is an in-memory cache of posts and categories with TTL.
// Parsing every markdown file on each request would be wasteful; the
// cache also absorbs the content watcher's invalidations.
type PostCache struct {
	mu         sync.RWMutex
	posts      []Post
	categories []string
	fetched    time.Time
	ttl        time.Duration
	store      *ContentStore
}

// NewPostCache creates a PostCache backed by the given ContentStore.
func NewPostCache(s *ContentStore, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.posts = posts
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and categories after ensuring the
// cache is fresh. It tries a read lock first; only takes a write lock if
// a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, categories := c.posts, c.categories
		c.mu.RUnlock()
		return posts, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.categories, nil
}

// ListPosts returns posts, optionally filtered by category.
func (c *PostCache) ListPosts(category string) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return posts, nil
	}
	normalized := normalizeCategory(category)
	var filtered []Post
	for _, p := range posts {
		if p.Category == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListCategories returns all unique categories.
func (c *PostCache) ListCategories() ([]string, error) {
	_, categories, err := c.ensureLoaded()
	return categories, err
}

// GetPost returns a single post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Watch invalidates the cache whenever files under the given directories
// change, so edited content shows up without a restart. It returns a stop
// function that releases the watcher.
func (c *PostCache) Watch(dirs ...string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					c.Invalidate()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
