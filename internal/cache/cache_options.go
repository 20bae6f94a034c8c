package cache

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/config"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/files"
)

// Option defines a functional option for configuring Cache.
type Option func(*Options) error

// Options contains optional configuration for the cache.
type Options struct {
	// dir is the directory where cache files are stored.
	dir string

	// ttl is the time-to-live for cached entries.
	ttl time.Duration

	// enabled determines if caching is enabled.
	enabled bool
}

// DefaultDir returns the default cache directory for registry manifests.
// It is the user-specific cache directory with "manifests" appended.
func DefaultDir() (string, error) {
	cacheDir, err := files.UserSpecificCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "manifests"), nil
}

func NewOptions(opts ...Option) (Options, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Options{}, err
	}

	// Default options.
	o := Options{
		dir:     dir,
		ttl:     config.DefaultCacheTTL,
		enabled: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithDir overrides the cache directory.
func WithDir(dir string) Option {
	return func(o *Options) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		o.dir = dir
		return nil
	}
}

// WithTTL sets the time-to-live for cached entries.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("cache TTL must be positive, got %s", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithEnabled toggles caching on or off.
func WithEnabled(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}
