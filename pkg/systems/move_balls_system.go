package systems

import (
	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
)

// MoveBallsSystem 按速度推进所有球的位置
// 不做边界限制，越界由同一帧内的碰撞和计分系统处理
type MoveBallsSystem struct{}

// NewMoveBallsSystem 创建球运动系统
func NewMoveBallsSystem() *MoveBallsSystem {
	return &MoveBallsSystem{}
}

func (s *MoveBallsSystem) Name() string { return "move_balls" }

func (s *MoveBallsSystem) Access() Access {
	return Access{Writes: []string{ResBalls}}
}

func (s *MoveBallsSystem) Run(session *game.Session, deltaTime float64) error {
	em := session.Entities
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)

		transform.X += ball.VelocityX * deltaTime
		transform.Y += ball.VelocityY * deltaTime
	}
	return nil
}
