// Package cache stores fetched registry manifests on disk so the CLI keeps
// working when the registry host is unreachable, mirroring the updater
// clients' local repositories.json fallback.
package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/files"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/perms"
)

// Cache manages cached registry manifests.
// New should be used to create instances of Cache.
type Cache struct {
	// dir is the directory where cache files are stored.
	dir string

	// ttl is the time-to-live for cached entries.
	ttl time.Duration

	// enabled determines if caching is enabled.
	enabled bool

	// logger is used for logging cache operations.
	logger hclog.Logger
}

// New creates a new cache instance for registry manifests.
func New(logger hclog.Logger, opts ...Option) (*Cache, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Only create the cache directory if caching is enabled.
	if options.enabled {
		if err := files.EnsureAtLeastRegularDir(options.dir); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &Cache{
		dir:     options.dir,
		logger:  logger.Named("cache"),
		enabled: options.enabled,
		ttl:     options.ttl,
	}, nil
}

// Get returns the cached manifest for remoteURL when it exists and is still
// fresh.
func (c *Cache) Get(remoteURL string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.path(remoteURL)
	if c.isExpired(path) {
		c.logger.Debug("Cache expired or missing", "url", remoteURL, "path", path)
		return nil, false
	}

	return c.read(remoteURL, path)
}

// GetStale returns the cached manifest for remoteURL regardless of age.
// Used as a fallback when the registry host cannot be reached.
func (c *Cache) GetStale(remoteURL string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	return c.read(remoteURL, c.path(remoteURL))
}

// Put stores a fetched manifest, writing to a temporary file first and
// renaming so readers never observe partial content.
func (c *Cache) Put(remoteURL string, data []byte) error {
	if !c.enabled {
		return nil
	}

	path := c.path(remoteURL)

	tmpFile, err := os.CreateTemp(c.dir, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath) // Clean up on any error.
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to set cache file permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	c.logger.Debug("Cached manifest", "url", remoteURL, "path", path)
	return nil
}

// path derives the cache file location from a hash of the remote URL.
func (c *Cache) path(remoteURL string) string {
	hash := sha256.Sum256([]byte(remoteURL))
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", hash))
}

func (c *Cache) read(remoteURL, path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("Failed to read cache file", "url", remoteURL, "path", path, "error", err)
		}
		return nil, false
	}

	c.logger.Debug("Using cached manifest", "url", remoteURL, "path", path)
	return data, true
}

// isExpired checks if a cache file is expired based on modification time.
func (c *Cache) isExpired(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true // Treat missing as expired.
	}
	return time.Since(info.ModTime()) > c.ttl
}
