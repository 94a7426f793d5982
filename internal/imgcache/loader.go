package imgcache

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// FileLoader decodes image sources as paths under dir.
func FileLoader(dir string) Loader {
	return func(ctx context.Context, source string) (image.Image, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(resolvePath(dir, source))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		return img, nil
	}
}

// HTTPLoader fetches image sources as URLs.
func HTTPLoader(client *http.Client) Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return func(ctx context.Context, source string) (image.Image, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		return img, nil
	}
}

func resolvePath(dir, source string) string {
	if dir == "" || strings.HasPrefix(source, "/") {
		return source
	}
	return dir + "/" + source
}
