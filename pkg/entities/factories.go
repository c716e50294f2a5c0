// Package entities 提供会话实体的工厂函数
package entities

import (
	"fmt"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
)

// NewPaddleEntity 创建球拍实体
//
// 左球拍中心位于 x = w/2，右球拍位于 x = 场地宽 - w/2，纵向居中。
//
// 参数:
//   - em: 实体管理器
//   - side: 球拍所在侧
//   - arena: 场地尺寸
//   - paddle: 球拍尺寸
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 参数无效时返回错误
func NewPaddleEntity(em *ecs.EntityManager, side components.Side, arena config.ArenaConfig, paddle config.PaddleConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if side != components.SideLeft && side != components.SideRight {
		return 0, fmt.Errorf("invalid paddle side %d", side)
	}

	x := paddle.Width / 2
	if side == components.SideRight {
		x = arena.Width - paddle.Width/2
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{X: x, Y: arena.Height / 2})
	ecs.AddComponent(em, id, &components.PaddleComponent{
		Side:   side,
		Width:  paddle.Width,
		Height: paddle.Height,
	})
	return id, nil
}

// NewBallEntity 创建位于场地中心的球，初速度取配置值
func NewBallEntity(em *ecs.EntityManager, arena config.ArenaConfig, ball config.BallConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{X: arena.Width / 2, Y: arena.Height / 2})
	ecs.AddComponent(em, id, &components.BallComponent{
		VelocityX: ball.Velocity.X,
		VelocityY: ball.Velocity.Y,
		Radius:    ball.Radius,
	})
	return id, nil
}

// NewTextEntity 创建只带文本的 UI 实体（比分显示）
func NewTextEntity(em *ecs.EntityManager, text string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.UITextComponent{Text: text})
	return id, nil
}
