package systems

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/utils"
)

// MovePaddlesSystem 消费命令通道中的 MovePaddle 命令
//
// 命令按 FIFO 顺序逐条应用，同一玩家的多条命令累加：
//
//	new_y = clamp(y + delta*SpeedScale, h/2, arena_h - h/2)
type MovePaddlesSystem struct {
	reader  *game.ReaderID
	session *game.Session
	logger  *zap.Logger
}

// NewMovePaddlesSystem 创建球拍运动系统
func NewMovePaddlesSystem(logger *zap.Logger) *MovePaddlesSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovePaddlesSystem{logger: logger.Named("MovePaddlesSystem")}
}

func (s *MovePaddlesSystem) Name() string { return "move_paddles" }

func (s *MovePaddlesSystem) Access() Access {
	return Access{Reads: []string{ResCommands}, Writes: []string{ResPaddles}}
}

// Setup 在新会话的命令通道上注册读者
func (s *MovePaddlesSystem) Setup(session *game.Session) {
	if s.session != nil && s.reader != nil {
		s.session.Commands.UnregisterReader(s.reader)
	}
	s.session = session
	s.reader = session.Commands.RegisterReader()
}

func (s *MovePaddlesSystem) Run(session *game.Session, _ float64) error {
	if session != s.session {
		s.Setup(session)
	}

	for _, cmd := range session.Commands.Read(s.reader) {
		if cmd.Kind != game.CommandMovePaddle {
			continue
		}
		if err := movePaddle(session, cmd.Player, cmd.Delta); err != nil {
			return err
		}
	}
	return nil
}

func movePaddle(session *game.Session, player game.Player, delta float64) error {
	id := session.Players.Paddle(player)
	transform, paddle, err := paddleOf(session.Entities, id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, player)
	}

	half := paddle.Height / 2
	transform.Y = utils.Clamp(transform.Y+delta*config.SpeedScale, half, session.Arena.Height-half)
	return nil
}

// paddleOf 获取球拍实体的位置和球拍组件，任一缺失即为结构性错误
func paddleOf(em *ecs.EntityManager, id ecs.EntityID) (*components.TransformComponent, *components.PaddleComponent, error) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return nil, nil, fmt.Errorf("%w (entity %d has no transform)", ErrMissingPaddle, id)
	}
	paddle, ok := ecs.GetComponent[*components.PaddleComponent](em, id)
	if !ok {
		return nil, nil, fmt.Errorf("%w (entity %d has no paddle)", ErrMissingPaddle, id)
	}
	return transform, paddle, nil
}
