package imgcache

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates cache entries when their backing files change, so a
// re-uploaded asset shows up without restarting the editor session. Sources
// are matched by base name against the changed path. Returns a stop
// function.
func (c *Cache) Watch(dir string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
					continue
				}
				c.invalidateByBase(filepath.Base(ev.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("asset watcher error", "error", err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}

func (c *Cache) invalidateByBase(base string) {
	c.mu.Lock()
	var stale []string
	for source := range c.entries {
		if filepath.Base(source) == base {
			stale = append(stale, source)
		}
	}
	for _, s := range stale {
		delete(c.entries, s)
	}
	c.mu.Unlock()
	if len(stale) > 0 && c.onLoad != nil {
		for _, s := range stale {
			c.onLoad(s)
		}
	}
}
