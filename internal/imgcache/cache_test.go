package imgcache

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetLoadsOnce(t *testing.T) {
	var loads int32
	release := make(chan struct{})
	loader := func(ctx context.Context, source string) (image.Image, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	loaded := make(chan string, 1)
	c := New(loader, func(source string) { loaded <- source })
	defer c.Close()

	// Concurrent misses share a single in-flight load.
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Get("a.png"); ok {
				t.Error("expected a miss while the load is in flight")
			}
		}()
	}
	wg.Wait()
	close(release)

	select {
	case source := <-loaded:
		if source != "a.png" {
			t.Fatalf("onLoad for %q, want a.png", source)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load callback")
	}

	if img, ok := c.Get("a.png"); !ok || img == nil {
		t.Fatal("expected a hit after the load completed")
	}
	if n := atomic.LoadInt32(&loads); n != 1 {
		t.Fatalf("expected exactly one load, got %d", n)
	}
}

func TestFailedLoadStaysBlank(t *testing.T) {
	loader := func(ctx context.Context, source string) (image.Image, error) {
		return nil, errors.New("boom")
	}
	c := New(loader, nil)
	defer c.Close()

	c.Get("bad.png")
	c.Close()

	img, ok := c.Get("bad.png")
	if ok || img != nil {
		t.Fatal("failed entry must never report ready")
	}
}

func TestInvalidateReloads(t *testing.T) {
	var loads int32
	loader := func(ctx context.Context, source string) (image.Image, error) {
		atomic.AddInt32(&loads, 1)
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}
	loaded := make(chan string, 2)
	c := New(loader, func(source string) { loaded <- source })
	defer c.Close()

	c.Get("a.png")
	<-loaded
	c.Invalidate("a.png")

	if _, ok := c.Get("a.png"); ok {
		t.Fatal("invalidated entry must miss")
	}
	<-loaded
	if n := atomic.LoadInt32(&loads); n != 2 {
		t.Fatalf("expected a reload after invalidate, got %d loads", n)
	}
}

func TestWatchInvalidatesChangedFile(t *testing.T) {
	dir := t.TempDir()
	var loads int32
	loader := func(ctx context.Context, source string) (image.Image, error) {
		atomic.AddInt32(&loads, 1)
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}
	loaded := make(chan string, 4)
	c := New(loader, func(source string) { loaded <- source })
	defer c.Close()

	stop, err := c.Watch(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	c.Get("menu.png")
	<-loaded

	if err := os.WriteFile(filepath.Join(dir, "menu.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// The write event invalidates the entry; the entry misses again once the
	// event has been processed.
	deadline := time.After(3 * time.Second)
	for {
		if _, ok := c.Get("menu.png"); !ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("cache entry never invalidated after the file changed")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestEmptySourceNeverLoads(t *testing.T) {
	loader := func(ctx context.Context, source string) (image.Image, error) {
		t.Error("loader must not run for an empty source")
		return nil, nil
	}
	c := New(loader, nil)
	defer c.Close()

	if _, ok := c.Get(""); ok {
		t.Fatal("empty source reported ready")
	}
}

func TestFileLoaderResolvesDir(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "bg.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	load := FileLoader(dir)
	img, err := load(context.Background(), "bg.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("decoded %dx%d, want 3x2", b.Dx(), b.Dy())
	}

	if _, err := load(context.Background(), "missing.png"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
