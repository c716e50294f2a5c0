package systems

import (
	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/utils"
)

// BounceSystem 处理球与上下墙、球拍的反弹
//
// 只修改球的速度，不修改位置。速度方向判断用于防止停留在边界上时每帧重复反弹。
// 球拍碰撞使用外扩半径的 AABB 近似，而非精确的圆与矩形相交。
type BounceSystem struct{}

// NewBounceSystem 创建反弹系统
func NewBounceSystem() *BounceSystem {
	return &BounceSystem{}
}

func (s *BounceSystem) Name() string { return "bounce" }

func (s *BounceSystem) Access() Access {
	return Access{Reads: []string{ResPaddles}, Writes: []string{ResBalls, ResEvents}}
}

func (s *BounceSystem) Run(session *game.Session, _ float64) error {
	em := session.Entities
	paddles := ecs.GetEntitiesWith2[*components.TransformComponent, *components.PaddleComponent](em)

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em) {
		pos, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)

		// 上下墙
		if (pos.Y <= ball.Radius && ball.VelocityY < 0) ||
			(pos.Y >= session.Arena.Height-ball.Radius && ball.VelocityY > 0) {
			ball.VelocityY = -ball.VelocityY
			session.Events.Write(game.GameEvent{Kind: game.EventWallBounce})
		}

		// 球拍
		for _, pid := range paddles {
			ptr, _ := ecs.GetComponent[*components.TransformComponent](em, pid)
			paddle, _ := ecs.GetComponent[*components.PaddleComponent](em, pid)

			px, py := ptr.BottomLeft(paddle.Width, paddle.Height)
			if !utils.PointInRect(pos.X, pos.Y,
				px-ball.Radius, py-ball.Radius,
				px+paddle.Width+ball.Radius, py+paddle.Height+ball.Radius) {
				continue
			}

			toward := (paddle.Side == components.SideLeft && ball.VelocityX < 0) ||
				(paddle.Side == components.SideRight && ball.VelocityX > 0)
			if toward {
				ball.VelocityX = -ball.VelocityX
				session.Events.Write(game.GameEvent{Kind: game.EventPaddleBounce, Side: paddle.Side})
			}
		}
	}
	return nil
}
