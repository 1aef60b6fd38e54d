package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	Disable()
	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
	assert.Nil(t, NewCodecMetrics(), "no constructor without the prometheus package")

	reg := InitRegistry()
	t.Cleanup(Disable)
	assert.True(t, IsEnabled())
	assert.Same(t, reg, GetRegistry())
}

func TestWriteTextfileDisabled(t *testing.T) {
	Disable()
	path := filepath.Join(t.TempDir(), "none.prom")
	require.NoError(t, WriteTextfile(path))
	assert.NoFileExists(t, path)
}
