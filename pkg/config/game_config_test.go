package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig()

	assert.Equal(t, 100.0, cfg.Arena.Width)
	assert.Equal(t, 100.0, cfg.Arena.Height)
	assert.Equal(t, Vec2{X: 75, Y: 50}, cfg.Ball.Velocity)
	assert.Equal(t, 2.5, cfg.Ball.Radius)
	assert.Equal(t, 15.0, cfg.Paddle.Height)
	assert.Equal(t, 2.5, cfg.Paddle.Width)
	assert.True(t, cfg.AI.Enabled)
	require.NoError(t, cfg.Validate())
}

// TestLoadGameConfig 测试 YAML / TOML 配置加载
func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantErr   bool
		checkFunc func(t *testing.T, cfg *GameConfig)
	}{
		{
			name: "yaml overrides",
			file: "game.yaml",
			content: `
arena:
  width: 200
  height: 120
ball:
  velocity: {x: 60, y: -40}
  radius: 2
paddle:
  height: 16
  width: 4
scheduler:
  parallel: true
`,
			checkFunc: func(t *testing.T, cfg *GameConfig) {
				assert.Equal(t, 200.0, cfg.Arena.Width)
				assert.Equal(t, 120.0, cfg.Arena.Height)
				assert.Equal(t, Vec2{X: 60, Y: -40}, cfg.Ball.Velocity)
				assert.Equal(t, 16.0, cfg.Paddle.Height)
				assert.True(t, cfg.Scheduler.Parallel)
				// 未出现的字段保留默认值
				assert.True(t, cfg.AI.Enabled)
			},
		},
		{
			name: "toml overrides",
			file: "game.toml",
			content: `
skip_menu = true
default_mode = "multi"

[arena]
width = 80.0
height = 60.0

[ai]
enabled = false
`,
			checkFunc: func(t *testing.T, cfg *GameConfig) {
				assert.Equal(t, 80.0, cfg.Arena.Width)
				assert.Equal(t, 60.0, cfg.Arena.Height)
				assert.False(t, cfg.AI.Enabled)
				assert.True(t, cfg.SkipMenu)
				assert.Equal(t, "multi", cfg.DefaultMode)
				assert.Equal(t, 2.5, cfg.Ball.Radius)
			},
		},
		{
			name:    "radius too large",
			file:    "bad.yaml",
			content: "ball:\n  radius: 60\n",
			wantErr: true,
		},
		{
			name:    "paddle taller than arena",
			file:    "bad.yaml",
			content: "paddle:\n  height: 101\n",
			wantErr: true,
		},
		{
			name:    "negative arena",
			file:    "bad.yaml",
			content: "arena:\n  width: -1\n",
			wantErr: true,
		},
		{
			name:    "unknown mode",
			file:    "bad.yaml",
			content: "defaultMode: solo\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "bad.yaml",
			content: "arena: [",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "game.json",
			content: "{}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := LoadGameConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
