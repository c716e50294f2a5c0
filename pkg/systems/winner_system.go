package systems

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
)

// WinnerSystem 检测球从左右两侧出界并计分
//
// x <= r 时右侧得分，x >= W - r 时左侧得分（二者互斥）。
// 得分后更新比分文本、反转水平速度、把球放回场地中线（y 不变）。
type WinnerSystem struct {
	logger *zap.Logger
}

// NewWinnerSystem 创建计分系统
func NewWinnerSystem(logger *zap.Logger) *WinnerSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WinnerSystem{logger: logger.Named("WinnerSystem")}
}

func (s *WinnerSystem) Name() string { return "winner" }

func (s *WinnerSystem) Access() Access {
	return Access{Writes: []string{ResBalls, ResScore, ResEvents}}
}

func (s *WinnerSystem) Run(session *game.Session, _ float64) error {
	em := session.Entities
	width := session.Arena.Width

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em) {
		pos, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)

		var scorer game.Player
		var text ecs.EntityID
		var score int
		switch {
		case pos.X <= ball.Radius:
			scorer, text = game.P2, session.ScoreText.P2Score
			score = session.ScoreBoard.ScoreRight()
		case pos.X >= width-ball.Radius:
			scorer, text = game.P1, session.ScoreText.P1Score
			score = session.ScoreBoard.ScoreLeft()
		default:
			continue
		}

		if t, ok := ecs.GetComponent[*components.UITextComponent](em, text); ok {
			t.Text = strconv.Itoa(score)
		}

		ball.VelocityX = -ball.VelocityX
		pos.X = width / 2

		session.Events.Write(game.GameEvent{Kind: game.EventScored, Scorer: scorer})
		session.Logger.Info(fmt.Sprintf("Score: | %d | %d |", session.ScoreBoard.Left, session.ScoreBoard.Right))
		s.logger.Debug("scored", zap.Stringer("player", scorer), zap.String("session", session.ID))
	}
	return nil
}
