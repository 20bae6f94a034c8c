// Package source retrieves the accepted repositories.json document, either
// from the local filesystem or from the registry host with a local cache
// fallback.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cache"
)

const sourceName = "source"

// defaultFetchTimeout bounds a single registry fetch.
const defaultFetchTimeout = 30 * time.Second

// Fetcher retrieves the raw registry document text.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// File reads the registry document from a local path, or stdin when the
// path is "-".
type File struct {
	Path string
}

func (f File) Fetch(_ context.Context) ([]byte, error) {
	if f.Path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read registry document from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry document '%s': %w", f.Path, err)
	}
	return data, nil
}

// Remote fetches the registry document over HTTP, caching successful
// responses and falling back to a stale cached copy when the host cannot be
// reached. The updater clients behave the same way with their local
// repositories.json copy.
type Remote struct {
	url     string
	refresh bool
	cache   *cache.Cache
	client  *http.Client
	logger  hclog.Logger
}

// NewRemote creates a Remote source for the given registry URL.
// When refresh is true the cache is bypassed for reading (successful fetches
// are still stored).
func NewRemote(logger hclog.Logger, url string, manifests *cache.Cache, refresh bool) (*Remote, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("empty registry URL is invalid")
	}

	return &Remote{
		url:     url,
		refresh: refresh,
		cache:   manifests,
		client:  &http.Client{Timeout: defaultFetchTimeout},
		logger:  logger.Named(sourceName),
	}, nil
}

func (r *Remote) Fetch(ctx context.Context) ([]byte, error) {
	if !r.refresh {
		if data, ok := r.cache.Get(r.url); ok {
			return data, nil
		}
	}

	data, err := r.download(ctx)
	if err != nil {
		// The registry host is unreachable: a stale manifest beats nothing.
		if stale, ok := r.cache.GetStale(r.url); ok {
			r.logger.Warn(
				"Failed to fetch registry, using stale cached copy",
				"url", r.url,
				"error", err,
			)
			return stale, nil
		}
		return nil, err
	}

	if err := r.cache.Put(r.url, data); err != nil {
		r.logger.Warn("Failed to cache registry manifest", "url", r.url, "error", err)
	}

	return data, nil
}

func (r *Remote) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request for '%s': %w", r.url, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry URL '%s': %w", r.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from registry '%s': %d", r.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response body from '%s': %w", r.url, err)
	}

	return body, nil
}
