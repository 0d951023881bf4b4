package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load([]string{"cosdata"})
	require.NoError(t, err)
	assert.Equal(t, uint8(4), c.DataFileParts)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\ncache_capacity: 42\n"), 0644))

	c, err := Load([]string{"cosdata", "-config-file", path, "-log-level", "warn"})
	require.NoError(t, err)
	assert.Equal(t, 42, c.CacheCapacity)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestValidateDefaultsBadLogLevel(t *testing.T) {
	c := &Config{LogLevel: "verbose", CacheCapacity: 1, DataFileParts: 1}
	warnings := c.Validate()
	assert.NotEmpty(t, warnings)
	assert.Equal(t, "info", c.LogLevel)
}
