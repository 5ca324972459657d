package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farshadalemi/Basketball-Analytics-Application/internal/config"
	"github.com/farshadalemi/Basketball-Analytics-Application/internal/scout"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	def := scout.DefaultConfig()
	require.Equal(t, def.FrameWidth, cfg.FrameWidth)
	require.Equal(t, def.Court.ThreePointDistance, cfg.Court.ThreePointDistance)
	require.Equal(t, def.Shot.CooldownFrames, cfg.Shot.CooldownFrames)
	require.Equal(t, def.Aggregation.FormationWeight, cfg.Aggregation.FormationWeight)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCOUT_FRAME_WIDTH", "1280")
	t.Setenv("SCOUT_FRAME_HEIGHT", "720")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 1280.0, cfg.FrameWidth)
	require.Equal(t, 720.0, cfg.FrameHeight)

	// Untouched sections keep their defaults.
	require.Equal(t, scout.DefaultShotConfig().MinShotHeight, cfg.Shot.MinShotHeight)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	yaml := []byte("frame_width: 1600\nshot:\n  cooldown_frames: 30\ncourt:\n  three_point_distance: 22.15\n")
	require.NoError(t, os.WriteFile(path, yaml, 0644))
	t.Setenv("SCOUT_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 1600.0, cfg.FrameWidth)
	require.Equal(t, 30, cfg.Shot.CooldownFrames)
	require.Equal(t, 22.15, cfg.Court.ThreePointDistance)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_width: 1600\n"), 0644))
	t.Setenv("SCOUT_CONFIG", path)
	t.Setenv("SCOUT_FRAME_WIDTH", "1280")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 1280.0, cfg.FrameWidth)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("SCOUT_FRAME_WIDTH", "0")
	_, err := config.Load()
	require.Error(t, err)
}
