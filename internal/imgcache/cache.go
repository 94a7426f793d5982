package imgcache

import (
	"context"
	"image"
	"log/slog"
	"sync"
)

// Loader resolves an image source key (URL, asset id, file path) to a
// decoded image.
type Loader func(ctx context.Context, source string) (image.Image, error)

type entryState int

const (
	stateLoading entryState = iota
	stateReady
	stateFailed
)

type entry struct {
	state entryState
	img   image.Image
}

// Cache is an asynchronous image store keyed by source. The first Get for a
// source kicks off exactly one load; concurrent Gets while the load is in
// flight share it. Loads are cancelled when the cache is closed. A failed
// load is logged and left blank — callers draw nothing (or a placeholder)
// for it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	loader Loader
	// onLoad is invoked after a successful load so the owner can request a
	// repaint.
	onLoad func(source string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(loader Loader, onLoad func(source string)) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		entries: make(map[string]*entry),
		loader:  loader,
		onLoad:  onLoad,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Get returns the cached image for source if it has loaded. A miss starts
// the load in the background and returns (nil, false) immediately.
func (c *Cache) Get(source string) (image.Image, bool) {
	if source == "" {
		return nil, false
	}
	c.mu.Lock()
	e, ok := c.entries[source]
	if ok {
		img := e.img
		ready := e.state == stateReady
		c.mu.Unlock()
		return img, ready
	}
	c.entries[source] = &entry{state: stateLoading}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.load(source)
	return nil, false
}

func (c *Cache) load(source string) {
	defer c.wg.Done()
	img, err := c.loader(c.ctx, source)

	c.mu.Lock()
	e, ok := c.entries[source]
	if !ok {
		// Invalidated while loading; the next Get starts over.
		c.mu.Unlock()
		return
	}
	if err != nil {
		e.state = stateFailed
		c.mu.Unlock()
		if c.ctx.Err() == nil {
			slog.Warn("image load failed", "source", source, "error", err)
		}
		return
	}
	e.state = stateReady
	e.img = img
	c.mu.Unlock()

	if c.onLoad != nil {
		c.onLoad(source)
	}
}

// Invalidate drops the cache entry for source; the next Get reloads it.
func (c *Cache) Invalidate(source string) {
	c.mu.Lock()
	delete(c.entries, source)
	c.mu.Unlock()
}

// Close cancels in-flight loads and waits for their goroutines to finish.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}
