package game

import (
	"fmt"

	"github.com/gonewx/pong/pkg/components"
)

// Player 玩家位
type Player int

const (
	P1 Player = iota // 左侧球拍
	P2               // 右侧球拍
)

// String 返回玩家名称
func (p Player) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// Side 返回玩家控制的球拍所在侧
func (p Player) Side() components.Side {
	if p == P2 {
		return components.SideRight
	}
	return components.SideLeft
}

// CommandKind 命令类型
type CommandKind int

const (
	// CommandMovePaddle 移动球拍，Delta 为原始输入轴值
	CommandMovePaddle CommandKind = iota
)

// Command 命令通道上的消息
// 由输入转换（或 AI）产生，由球拍运动系统按 FIFO 顺序消费
type Command struct {
	Kind   CommandKind
	Player Player
	Delta  float64
}

// MovePaddle 构造 MovePaddle(player, delta) 命令
func MovePaddle(player Player, delta float64) Command {
	return Command{Kind: CommandMovePaddle, Player: player, Delta: delta}
}

// String 返回命令的可读形式
func (c Command) String() string {
	if c.Kind == CommandMovePaddle {
		return fmt.Sprintf("MovePaddle(%s, %g)", c.Player, c.Delta)
	}
	return fmt.Sprintf("Command(%d)", int(c.Kind))
}

// CommandChannel 命令通道
type CommandChannel = EventChannel[Command]

// NewCommandChannel 创建命令通道
func NewCommandChannel() *CommandChannel {
	return NewEventChannel[Command]()
}

// GameEventKind 游戏事件类型（供音效等前端使用）
type GameEventKind int

const (
	EventWallBounce GameEventKind = iota
	EventPaddleBounce
	EventScored
)

// GameEvent 模拟过程中产生的通知
// 写入事件不修改任何实体状态
type GameEvent struct {
	Kind GameEventKind
	// Side 碰撞的球拍侧（EventPaddleBounce）
	Side components.Side
	// Scorer 得分玩家（EventScored）
	Scorer Player
}

// GameEventChannel 游戏事件通道
type GameEventChannel = EventChannel[GameEvent]
