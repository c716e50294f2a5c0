package systems

import (
	"fmt"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
)

// PaddleAISystem 反射式电脑对手
//
// 为每个未激活的玩家位，朝球的 y 坐标写入 MovePaddle(player, ±1)；
// 已对齐时不写命令。命令经由命令通道，与玩家输入一样受限位和 FIFO 约束。
type PaddleAISystem struct {
	enabled bool
}

// NewPaddleAISystem 创建 AI 系统，enabled 为 false 时什么也不做
func NewPaddleAISystem(enabled bool) *PaddleAISystem {
	return &PaddleAISystem{enabled: enabled}
}

func (s *PaddleAISystem) Name() string { return "paddle_ai" }

func (s *PaddleAISystem) Access() Access {
	return Access{Reads: []string{ResBalls, ResPaddles}, Writes: []string{ResCommands}}
}

func (s *PaddleAISystem) Run(session *game.Session, _ float64) error {
	if !s.enabled {
		return nil
	}

	em := session.Entities
	balls := ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em)
	if len(balls) == 0 {
		return nil
	}
	ball, _ := ecs.GetComponent[*components.TransformComponent](em, balls[0])

	active := session.PlayersActive()
	for _, player := range []game.Player{game.P1, game.P2} {
		if active.Active(player) {
			continue
		}

		transform, _, err := paddleOf(em, session.Players.Paddle(player))
		if err != nil {
			return fmt.Errorf("%w: %s", err, player)
		}

		switch {
		case ball.Y > transform.Y:
			session.Commands.Write(game.MovePaddle(player, 1))
		case ball.Y < transform.Y:
			session.Commands.Write(game.MovePaddle(player, -1))
		}
	}
	return nil
}
