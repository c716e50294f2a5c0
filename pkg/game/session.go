package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/entities"
)

// Session 一局游戏的显式上下文
//
// 每次系统调用都会传入 Session，替代全局可变的 world 资源：
// 场地配置、比分、激活玩家和实体句柄都挂在这里，由单一系统在其执行期间独占修改。
type Session struct {
	// ID 会话唯一标识（日志关联用）
	ID string

	Arena  config.ArenaConfig
	Ball   config.BallConfig
	Paddle config.PaddleConfig

	Entities   *ecs.EntityManager
	Players    Players
	ScoreBoard ScoreBoard
	ScoreText  ScoreText

	// Commands 球拍移动命令
	Commands *CommandChannel
	// Events 碰撞、得分通知
	Events *GameEventChannel

	Logger *zap.Logger

	active PlayersActive
}

// NewSession 创建新会话并生成实体
//
// 左球拍位于 x = w/2，右球拍位于 x = 场地宽 - w/2，二者纵向居中；
// 球位于场地中心，速度取配置值；两个比分文本初始为 "0"。
func NewSession(cfg *config.GameConfig, active PlayersActive, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	s := &Session{
		ID:       id,
		Arena:    cfg.Arena,
		Ball:     cfg.Ball,
		Paddle:   cfg.Paddle,
		Entities: ecs.NewEntityManager(),
		Commands: NewCommandChannel(),
		Events:   NewEventChannel[GameEvent](),
		Logger:   logger.With(zap.String("session", id)),
		active:   active,
	}

	s.Players.P1 = mustSpawn(entities.NewPaddleEntity(s.Entities, components.SideLeft, s.Arena, s.Paddle))
	s.Players.P2 = mustSpawn(entities.NewPaddleEntity(s.Entities, components.SideRight, s.Arena, s.Paddle))
	mustSpawn(entities.NewBallEntity(s.Entities, s.Arena, s.Ball))
	s.ScoreText.P1Score = mustSpawn(entities.NewTextEntity(s.Entities, "0"))
	s.ScoreText.P2Score = mustSpawn(entities.NewTextEntity(s.Entities, "0"))

	s.Logger.Info("session started",
		zap.Bool("p1Active", active.P1),
		zap.Bool("p2Active", active.P2))
	return s
}

// PlayersActive 返回本会话的激活玩家（只读副本）
func (s *Session) PlayersActive() PlayersActive {
	return s.active
}

// mustSpawn 工厂参数在此处总是有效，出错说明程序有缺陷
func mustSpawn(id ecs.EntityID, err error) ecs.EntityID {
	if err != nil {
		panic(err)
	}
	return id
}

// ScoreTexts 返回两个比分文本的当前内容（渲染端使用）
func (s *Session) ScoreTexts() (left, right string) {
	if t, ok := ecs.GetComponent[*components.UITextComponent](s.Entities, s.ScoreText.P1Score); ok {
		left = t.Text
	}
	if t, ok := ecs.GetComponent[*components.UITextComponent](s.Entities, s.ScoreText.P2Score); ok {
		right = t.Text
	}
	return left, right
}
