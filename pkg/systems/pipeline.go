package systems

import (
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/config"
)

// NewGamePipeline 构建游戏模拟管线
//
// 依赖关系（系统: 依赖）：
//
//	player_input: -
//	move_balls:   -
//	paddle_ai:    move_balls
//	move_paddles: player_input, paddle_ai
//	bounce:       move_balls, move_paddles
//	winner:       move_balls
//
// 得到的批次为 [player_input, move_balls] [paddle_ai] [move_paddles] [bounce] [winner]。
func NewGamePipeline(axes AxisReader, cfg *config.GameConfig, input *config.InputConfig, logger *zap.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var boundAxes []string
	if input != nil {
		boundAxes = input.AxisNames()
	}

	playerInput := NewPlayerInputSystem(axes, boundAxes, logger)
	balls := NewMoveBallsSystem()
	ai := NewPaddleAISystem(cfg.AI.Enabled)
	paddles := NewMovePaddlesSystem(logger)
	bounce := NewBounceSystem()
	winner := NewWinnerSystem(logger)

	d := NewDispatcher(cfg.Scheduler.Parallel, logger)
	steps := []struct {
		sys  System
		deps []string
	}{
		{playerInput, nil},
		{balls, nil},
		{ai, []string{balls.Name()}},
		{paddles, []string{playerInput.Name(), ai.Name()}},
		{bounce, []string{balls.Name(), paddles.Name()}},
		{winner, []string{balls.Name()}},
	}
	for _, step := range steps {
		if err := d.Add(step.sys, step.deps...); err != nil {
			return nil, err
		}
	}

	if err := d.Build(); err != nil {
		return nil, err
	}
	return d, nil
}
