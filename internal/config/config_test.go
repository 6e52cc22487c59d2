package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "96-well", cfg.DefaultFormat)
	assert.Equal(t, "#F2D5DA", cfg.DefaultColor)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "layouts.db"), cfg.LibraryPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NotNil(t, cfg.Devices)
	assert.Empty(t, cfg.Devices)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, 96, cfg.Format().Wells())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.DefaultFormat = "24-well"
	cfg.DefaultColor = "#00ff00"
	dev := NewDeviceConfig()
	dev.Name = "Mini"
	dev.Type = DeviceTypeColorful
	dev.InPort = "LPMiniMK3 MIDI"
	cfg.AddDevice(dev)
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "24-well", loaded.DefaultFormat)
	assert.Equal(t, "#00ff00", loaded.DefaultColor)
	require.Len(t, loaded.Devices, 1)
	assert.Equal(t, dev, loaded.Devices[0])
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_format":"6-well"}`), 0644))

	t.Setenv("PLATEMAPPER_DEFAULT_FORMAT", "48-well")
	t.Setenv("PLATEMAPPER_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "48-well", cfg.DefaultFormat)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "format.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"default_format":"384-well"}`), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	color := filepath.Join(dir, "color.json")
	require.NoError(t, os.WriteFile(color, []byte(`{"default_color":"#12"}`), 0644))
	_, err = Load(color)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0644))
	_, err = Load(broken)
	assert.Error(t, err)
}

func TestDeviceCRUD(t *testing.T) {
	cfg := &Config{}
	a := NewDeviceConfig()
	b := NewDeviceConfig()
	assert.NotEqual(t, a.ID, b.ID)

	cfg.AddDevice(a)
	cfg.AddDevice(b)

	b.Name = "Renamed"
	cfg.UpdateDevice(b)
	got, ok := cfg.Device(b.ID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)

	cfg.RemoveDevice(a.ID)
	_, ok = cfg.Device(a.ID)
	assert.False(t, ok)
	assert.Len(t, cfg.Devices, 1)
}

func TestSaveLeavesEnvOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_format":"96-well","log":{"level":"warn"}}`), 0644))

	t.Setenv("PLATEMAPPER_DEFAULT_FORMAT", "6-well")
	t.Setenv("PLATEMAPPER_LOG_LEVEL", "debug")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "6-well", cfg.DefaultFormat)

	cfg.DefaultColor = "#00ff00"
	cfg.AddDevice(NewDeviceConfig())
	require.NoError(t, cfg.Save())

	os.Unsetenv("PLATEMAPPER_DEFAULT_FORMAT")
	os.Unsetenv("PLATEMAPPER_LOG_LEVEL")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "96-well", loaded.DefaultFormat)
	assert.Equal(t, "warn", loaded.Log.Level)
	assert.Equal(t, "#00ff00", loaded.DefaultColor)
	assert.Len(t, loaded.Devices, 1)
}
