package systems

import (
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/game"
)

// AxisReader 读取输入轴的当前值（约 [-1, 1]）
// 轴不存在或未绑定时 ok 为 false
type AxisReader interface {
	AxisValue(name string) (value float64, ok bool)
}

// axisPlayers 可识别的轴及其对应玩家，按固定顺序处理
var axisPlayers = []struct {
	axis   string
	player game.Player
}{
	{config.AxisLeftPaddle, game.P1},
	{config.AxisRightPaddle, game.P2},
}

// PlayerInputSystem 将输入轴转换为球拍移动命令
//
// 只写命令通道，不直接修改位置。值为 0 的轴不产生命令；
// 未激活玩家的输入被忽略；缺失的轴只记录一次日志。
type PlayerInputSystem struct {
	axes   AxisReader
	logger *zap.Logger
	warned map[string]bool
}

// NewPlayerInputSystem 创建输入转换系统
// boundAxes 为输入配置中绑定的轴名称，其中没有对应玩家的轴会被记录并忽略
func NewPlayerInputSystem(axes AxisReader, boundAxes []string, logger *zap.Logger) *PlayerInputSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PlayerInputSystem{
		axes:   axes,
		logger: logger.Named("PlayerInputSystem"),
		warned: make(map[string]bool),
	}

	for _, name := range boundAxes {
		if !isRecognizedAxis(name) {
			s.logger.Warn("axis has no player mapping, ignoring", zap.String("axis", name))
		}
	}
	return s
}

func isRecognizedAxis(name string) bool {
	for _, ap := range axisPlayers {
		if ap.axis == name {
			return true
		}
	}
	return false
}

func (s *PlayerInputSystem) Name() string { return "player_input" }

func (s *PlayerInputSystem) Access() Access {
	return Access{Writes: []string{ResCommands}}
}

// Run 每帧采样一次所有可识别的轴
func (s *PlayerInputSystem) Run(session *game.Session, _ float64) error {
	active := session.PlayersActive()

	for _, ap := range axisPlayers {
		value, ok := s.axes.AxisValue(ap.axis)
		if !ok {
			if !s.warned[ap.axis] {
				s.warned[ap.axis] = true
				s.logger.Warn("axis not available", zap.String("axis", ap.axis))
			}
			continue
		}
		if value == 0 {
			continue
		}
		if !active.Active(ap.player) {
			continue
		}
		session.Commands.Write(game.MovePaddle(ap.player, value))
	}
	return nil
}
