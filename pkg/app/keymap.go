package app

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/pong/pkg/input"
)

// KeyMap 配置中的键名到 ebiten 按键的映射
type KeyMap map[string]ebiten.Key

// ResolveKeys 解析键名，返回映射和无法识别的键名（已排序）
//
// 键名按 ebiten 的名称解析（忽略大小写），如 "W"、"Up"、"ArrowUp"、"Escape"、"Enter"、"Space"。
func ResolveKeys(names []string) (KeyMap, []string) {
	m := make(KeyMap, len(names))
	var unknown []string
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			unknown = append(unknown, name)
			continue
		}
		m[input.Normalize(name)] = k
	}
	sort.Strings(unknown)
	return m, unknown
}

// Poll 读取本帧按住和刚按下的键
func (m KeyMap) Poll() (held, justPressed input.KeySet) {
	return m.Snapshot(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
}

// Snapshot 用给定的查询函数构造按键快照
func (m KeyMap) Snapshot(isPressed, isJustPressed func(ebiten.Key) bool) (held, justPressed input.KeySet) {
	held, justPressed = input.KeySet{}, input.KeySet{}
	for name, k := range m {
		if isPressed(k) {
			held.Press(name)
		}
		if isJustPressed(k) {
			justPressed.Press(name)
		}
	}
	return held, justPressed
}
