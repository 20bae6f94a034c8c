package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mbregistry.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		loader := &DefaultLoader{}
		cfg, err := loader.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultRegistryURL, cfg.RegistryURL)
		assert.Equal(t, DefaultGitHubAPIURL, cfg.GitHubAPIURL)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		t.Parallel()

		loader := &DefaultLoader{}
		_, err := loader.Load("   ")

		require.ErrorIs(t, err, ErrConfigLoadFailed)
	})

	t.Run("partial config is filled with defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `registry_url = "https://example.com/repositories.json"`)

		loader := &DefaultLoader{}
		cfg, err := loader.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/repositories.json", cfg.RegistryURL)
		assert.Equal(t, DefaultGitHubAPIURL, cfg.GitHubAPIURL)
	})

	t.Run("cache settings are decoded", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[cache]
ttl = "30m"
disabled = true
`)

		loader := &DefaultLoader{}
		cfg, err := loader.Load(path)

		require.NoError(t, err)
		assert.True(t, cfg.Cache.Disabled)

		ttl, err := cfg.Cache.ParseTTL()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, ttl)
	})

	t.Run("invalid registry url is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `registry_url = "not a url"`)

		loader := &DefaultLoader{}
		_, err := loader.Load(path)

		require.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("invalid cache ttl is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[cache]
ttl = "soon"
`)

		loader := &DefaultLoader{}
		_, err := loader.Load(path)

		require.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("malformed toml is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `registry_url = `)

		loader := &DefaultLoader{}
		_, err := loader.Load(path)

		require.ErrorIs(t, err, ErrConfigLoadFailed)
	})
}

func TestDefaultLoader_Init(t *testing.T) {
	t.Parallel()

	t.Run("writes a loadable skeleton", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".mbregistry.toml")
		loader := &DefaultLoader{}

		require.NoError(t, loader.Init(path))

		cfg, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultRegistryURL, cfg.RegistryURL)

		ttl, err := cfg.Cache.ParseTTL()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, ttl)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `registry_url = "https://example.com/r.json"`)

		loader := &DefaultLoader{}
		require.Error(t, loader.Init(path))
	})
}

func TestCacheConfig_ParseTTL_Default(t *testing.T) {
	t.Parallel()

	c := CacheConfig{}
	ttl, err := c.ParseTTL()

	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, ttl)
}
