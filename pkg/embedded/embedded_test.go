package embedded

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestFS(t *testing.T) {
	t.Helper()
	Init(fstest.MapFS{
		"data/config.yaml": {Data: []byte("arena:\n  width: 100\n")},
		"data/input.yaml":  {Data: []byte("axes: {}\n")},
	})
	t.Cleanup(func() { initialized = false })
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	initialized = false

	assert.False(t, IsInitialized())

	_, err := Open("data/config.yaml")
	require.Error(t, err)
	assert.Equal(t, "embedded package not initialized, call Init() first", err.Error())

	_, err = ReadFile("data/config.yaml")
	assert.Error(t, err)
	assert.False(t, Exists("data/config.yaml"))
}

func TestReadFile(t *testing.T) {
	initTestFS(t)
	require.True(t, IsInitialized())

	data, err := ReadFile("data/config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "width: 100")

	// "./" 前缀被移除
	_, err = ReadFile("./data/input.yaml")
	assert.NoError(t, err)

	assert.True(t, Exists("data/input.yaml"))
	assert.False(t, Exists("data/missing.yaml"))
}

// TestInvalidPrefix 测试无效路径前缀
func TestInvalidPrefix(t *testing.T) {
	initTestFS(t)

	_, err := Open("assets/logo.png")
	require.Error(t, err)
	assert.Equal(t, "unknown resource path prefix: assets/logo.png (must start with 'data/')", err.Error())
}

func TestReadDir(t *testing.T) {
	initTestFS(t)

	entries, err := ReadDir("data")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
