package engineconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-sandbox/internal/budget"
)

// chdir is a stand-in for testing.T.Chdir (Go 1.24+), which is
// unavailable on the Go 1.21 toolchain used to build this module.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, budget.DefaultLimits(), cfg.Limits)
	assert.True(t, cfg.GridVisible)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := Default()
	cfg.ShowFPS = true
	cfg.Limits.MaxSpheres = 12
	cfg.Logging.Level = "debug"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	assert.True(t, got.ShowFPS)
	assert.Equal(t, 12, got.Limits.MaxSpheres)
	assert.Equal(t, "debug", got.Logging.Level)
}

func TestLoadNormalizesBadCeilings(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := Default()
	cfg.Limits.GlobalMax = -3
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, budget.DefaultLimits().GlobalMax, got.Limits.GlobalMax)
}
