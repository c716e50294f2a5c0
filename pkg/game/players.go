package game

import (
	"fmt"

	"github.com/gonewx/pong/pkg/ecs"
)

// Players 两个玩家位对应的球拍实体
type Players struct {
	P1 ecs.EntityID // 左侧球拍
	P2 ecs.EntityID // 右侧球拍
}

// Paddle 返回玩家对应的球拍实体，未知玩家返回 0
func (p Players) Paddle(player Player) ecs.EntityID {
	switch player {
	case P1:
		return p.P1
	case P2:
		return p.P2
	default:
		return 0
	}
}

// PlayersActive 本会话中接受输入的玩家位
// 在模式选择时确定，会话开始后只读
type PlayersActive struct {
	P1 bool
	P2 bool
}

// Active 返回玩家是否接受输入
func (a PlayersActive) Active(player Player) bool {
	switch player {
	case P1:
		return a.P1
	case P2:
		return a.P2
	default:
		return false
	}
}

// GameMode 菜单可选的游戏模式
type GameMode int

const (
	ModeSinglePlayer GameMode = iota
	ModeMultiPlayer
	// ModeDemo 两侧都由 AI 控制（无界面模拟、演示用，菜单中不提供）
	ModeDemo
)

// String 返回模式名称（与配置、存档中的字符串一致）
func (m GameMode) String() string {
	switch m {
	case ModeMultiPlayer:
		return "multi"
	case ModeDemo:
		return "demo"
	default:
		return "single"
	}
}

// PlayersActive 返回模式对应的激活玩家
// 单人模式只有 P1 接受输入
func (m GameMode) PlayersActive() PlayersActive {
	switch m {
	case ModeMultiPlayer:
		return PlayersActive{P1: true, P2: true}
	case ModeDemo:
		return PlayersActive{}
	default:
		return PlayersActive{P1: true, P2: false}
	}
}

// ParseGameMode 解析模式字符串，空字符串视为单人模式
func ParseGameMode(s string) (GameMode, error) {
	switch s {
	case "", "single":
		return ModeSinglePlayer, nil
	case "multi":
		return ModeMultiPlayer, nil
	case "demo":
		return ModeDemo, nil
	default:
		return ModeSinglePlayer, fmt.Errorf("unknown game mode %q", s)
	}
}
