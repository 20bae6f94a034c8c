package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/config"
)

type fakeLoader struct {
	config.Loader
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.ConfigInitializer)
}

func TestNewOptions_NoOverrides(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions()
	require.NoError(t, err)

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.ConfigInitializer)
}

func TestNewOptions_WithOverrides(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{}

	opts, err := NewOptions(WithConfigLoader(loader))
	require.NoError(t, err)
	assert.Same(t, loader, opts.ConfigLoader)
}

func TestNewOptions_NilOptionSkipped(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions(nil)
	require.NoError(t, err)
	require.NotNil(t, opts.ConfigLoader)
}

func TestNewOptions_ErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := NewOptions(func(*CmdOptions) error { return boom })
	require.ErrorIs(t, err, boom)
}
