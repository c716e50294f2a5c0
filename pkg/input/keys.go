// Package input 将前端无关的按键名称映射为输入轴和状态机事件
//
// 前端（ebiten、终端）每帧把按下的键填入 KeySet，
// KeyAxes 据此实现 systems.AxisReader，Actions 据此产生 game.StateEvent。
package input

import (
	"strings"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/game"
)

// Normalize 规范化按键名称（忽略大小写和首尾空白）
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// KeyState 查询某个键当前是否按下
type KeyState interface {
	Pressed(key string) bool
}

// KeySet 一帧内按下的键集合
type KeySet map[string]struct{}

// Press 记录按下的键
func (k KeySet) Press(key string) {
	k[Normalize(key)] = struct{}{}
}

// Pressed 实现 KeyState
func (k KeySet) Pressed(key string) bool {
	_, ok := k[Normalize(key)]
	return ok
}

// KeyAxes 由按键绑定合成的输入轴
type KeyAxes struct {
	bindings map[string]config.AxisBinding
	state    KeyState
}

// NewKeyAxes 创建输入轴读取器
func NewKeyAxes(cfg *config.InputConfig, state KeyState) *KeyAxes {
	return &KeyAxes{bindings: cfg.Axes, state: state}
}

// SetState 替换按键状态（每帧更新快照时使用）
func (k *KeyAxes) SetState(state KeyState) {
	k.state = state
}

// AxisValue 正向键按下为 +1，反向键为 -1，同时按下或都未按下为 0
// 轴未绑定时 ok 为 false
func (k *KeyAxes) AxisValue(name string) (float64, bool) {
	binding, ok := k.bindings[name]
	if !ok {
		return 0, false
	}
	if k.state == nil {
		return 0, true
	}

	value := 0.0
	if k.anyPressed(binding.Positive) {
		value++
	}
	if k.anyPressed(binding.Negative) {
		value--
	}
	return value, true
}

func (k *KeyAxes) anyPressed(keys []string) bool {
	for _, key := range keys {
		if k.state.Pressed(key) {
			return true
		}
	}
	return false
}

// actionEvents 动作到状态机事件的映射，按此顺序产生事件
var actionEvents = []struct {
	action string
	event  game.StateEvent
}{
	{config.ActionQuit, game.EventClose},
	{config.ActionPause, game.EventPause},
	{config.ActionConfirm, game.EventConfirm},
	{config.ActionMenuUp, game.EventMenuUp},
	{config.ActionMenuDown, game.EventMenuDown},
}

// Actions 动作按键绑定
type Actions struct {
	bindings map[string][]string
}

// NewActions 创建动作映射
func NewActions(cfg *config.InputConfig) *Actions {
	return &Actions{bindings: cfg.Actions}
}

// Events 根据本帧刚按下的键产生状态机事件（每个动作至多一个）
func (a *Actions) Events(justPressed KeyState) []game.StateEvent {
	var events []game.StateEvent
	for _, ae := range actionEvents {
		for _, key := range a.bindings[ae.action] {
			if justPressed.Pressed(key) {
				events = append(events, ae.event)
				break
			}
		}
	}
	return events
}

// Keys 返回所有绑定过的键名（规范化、去重），前端据此决定需要轮询的键
func Keys(cfg *config.InputConfig) []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(list []string) {
		for _, k := range list {
			n := Normalize(k)
			if !seen[n] {
				seen[n] = true
				keys = append(keys, n)
			}
		}
	}
	for _, name := range cfg.AxisNames() {
		add(cfg.Axes[name].Positive)
		add(cfg.Axes[name].Negative)
	}
	for _, ae := range actionEvents {
		add(cfg.Actions[ae.action])
	}
	return keys
}
