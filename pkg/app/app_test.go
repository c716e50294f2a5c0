package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/input"
)

func TestResolveDefaultBindings(t *testing.T) {
	names := input.Keys(config.DefaultInputConfig())
	keys, unknown := ResolveKeys(names)

	assert.Empty(t, unknown)
	assert.Len(t, keys, len(names))
	assert.Equal(t, ebiten.KeyW, keys["w"])
	assert.Equal(t, ebiten.KeyEscape, keys["escape"])
	assert.Equal(t, ebiten.KeyEnter, keys["enter"])
}

func TestResolveUnknownKeys(t *testing.T) {
	keys, unknown := ResolveKeys([]string{"W", "NoSuchKey", "AlsoMissing"})
	assert.Len(t, keys, 1)
	assert.Equal(t, []string{"AlsoMissing", "NoSuchKey"}, unknown)
}

func TestSnapshot(t *testing.T) {
	keys, _ := ResolveKeys([]string{"W", "S", "Escape"})

	held, pressed := keys.Snapshot(
		func(k ebiten.Key) bool { return k == ebiten.KeyW || k == ebiten.KeyEscape },
		func(k ebiten.Key) bool { return k == ebiten.KeyEscape },
	)

	assert.True(t, held.Pressed("W"))
	assert.False(t, held.Pressed("S"))
	assert.True(t, pressed.Pressed("escape"))
	assert.False(t, pressed.Pressed("W"))
}

func TestRendererGeometry(t *testing.T) {
	r := NewRenderer(config.ArenaConfig{Width: 100, Height: 100}, 5)

	w, h := r.Size()
	assert.Equal(t, 500, w)
	assert.Equal(t, 500, h)

	// y 轴翻转
	x, y := r.ToScreen(0, 0)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(500), y)
	x, y = r.ToScreen(50, 100)
	assert.Equal(t, float32(250), x)
	assert.Equal(t, float32(0), y)

	px, py, pw, ph := r.PaddleRect(
		&components.TransformComponent{X: 1.25, Y: 50},
		&components.PaddleComponent{Side: components.SideLeft, Width: 2.5, Height: 15},
	)
	assert.Equal(t, float32(0), px)
	assert.Equal(t, float32((100-57.5)*5), py)
	assert.Equal(t, float32(12.5), pw)
	assert.Equal(t, float32(75), ph)
}

func TestLoadFont(t *testing.T) {
	r := NewRenderer(config.ArenaConfig{Width: 100, Height: 100}, DefaultScale)
	require.NoError(t, r.LoadFont())
	assert.NotNil(t, r.source.Load())
}
