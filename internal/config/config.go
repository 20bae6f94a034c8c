// Package config handles the optional .mbregistry.toml settings file.
// All settings have working defaults; a missing config file is not an error.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/perms"
)

// DefaultRegistryURL is the canonical location of the community registry,
// the same document the updater clients consume.
const DefaultRegistryURL = "https://raw.githubusercontent.com/MBII-Galactic-Conquest/mbii-community-updater/main/repositories.json"

// DefaultGitHubAPIURL is the GitHub REST API base used for liveness checks.
const DefaultGitHubAPIURL = "https://api.github.com"

// DefaultCacheTTL is how long a fetched registry manifest stays fresh.
const DefaultCacheTTL = time.Hour

var (
	_ Provider = (*DefaultLoader)(nil)
)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .mbregistry.toml file structure.
type Config struct {
	// RegistryURL is where the accepted repositories.json is fetched from.
	RegistryURL string `toml:"registry_url"`

	// GitHubAPIURL is the GitHub REST API base URL.
	GitHubAPIURL string `toml:"github_api_url"`

	// Cache configures local caching of fetched registry manifests.
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig holds registry manifest cache settings.
type CacheConfig struct {
	// Dir overrides the XDG-derived cache directory when set.
	Dir string `toml:"dir"`

	// TTL is how long a cached manifest stays fresh, e.g. "1h" or "30m".
	TTL string `toml:"ttl"`

	// Disabled turns off manifest caching entirely.
	Disabled bool `toml:"disabled"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		RegistryURL:  DefaultRegistryURL,
		GitHubAPIURL: DefaultGitHubAPIURL,
	}
}

// ParseTTL returns the configured cache TTL, falling back to DefaultCacheTTL.
// Load has already rejected unparseable values.
func (c *CacheConfig) ParseTTL() (time.Duration, error) {
	ttl := strings.TrimSpace(c.TTL)
	if ttl == "" {
		return DefaultCacheTTL, nil
	}
	return time.ParseDuration(ttl)
}

// Init creates the skeleton configuration file for mbregistry.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content := fmt.Sprintf(`registry_url = %q
github_api_url = %q

[cache]
ttl = "1h"
`, DefaultRegistryURL, DefaultGitHubAPIURL)

	if err := os.WriteFile(path, []byte(content), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads the config file at path. A missing file yields the defaults,
// since every setting has one; any other failure is an error.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg *Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if cfg == nil {
		cfg = &Config{}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.RegistryURL) == "" {
		c.RegistryURL = DefaultRegistryURL
	}
	if strings.TrimSpace(c.GitHubAPIURL) == "" {
		c.GitHubAPIURL = DefaultGitHubAPIURL
	}
}

func (c *Config) validate() error {
	for key, value := range map[string]string{
		"registry_url":   c.RegistryURL,
		"github_api_url": c.GitHubAPIURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return NewErrInvalidValue(key, value)
		}
	}

	if ttl := strings.TrimSpace(c.Cache.TTL); ttl != "" {
		if _, err := time.ParseDuration(ttl); err != nil {
			return NewErrInvalidValue("cache.ttl", ttl)
		}
	}

	return nil
}
