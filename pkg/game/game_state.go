package game

import (
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/config"
)

// GameState 顶层游戏阶段
// 全局唯一，只由状态切换处理函数修改；决定模拟管线是否执行
type GameState int

const (
	StateLoading GameState = iota
	StateMenu
	StatePlaying
	StatePaused
	StateQuit
)

// String 返回状态名称
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// World 进程级上下文：状态、配置、当前会话、设置
// 由状态机和前端持有，通过参数传递，不使用全局单例
type World struct {
	State GameState

	Config *config.GameConfig
	Input  *config.InputConfig

	// Session 当前会话，Playing/Paused 之外为 nil
	Session *Session
	// Mode 最近一次选择的游戏模式
	Mode GameMode

	Settings *SettingsManager
	Logger   *zap.Logger
}

// NewWorld 创建 World，初始状态为 Loading
// settings 可为 nil（使用仅内存的设置）
func NewWorld(cfg *config.GameConfig, input *config.InputConfig, settings *SettingsManager, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if input == nil {
		input = config.DefaultInputConfig()
	}
	if settings == nil {
		settings, _ = NewSettingsManager(nil, logger)
	}

	mode, err := ParseGameMode(settings.GetSettings().LastMode)
	if err != nil || settings.GetSettings().LastMode == "" {
		mode, _ = ParseGameMode(cfg.DefaultMode)
	}

	return &World{
		State:    StateLoading,
		Config:   cfg,
		Input:    input,
		Mode:     mode,
		Settings: settings,
		Logger:   logger,
	}
}

// StartSession 以给定模式开始新会话
func (w *World) StartSession(mode GameMode) *Session {
	w.Mode = mode
	w.Session = NewSession(w.Config, mode.PlayersActive(), w.Logger)
	return w.Session
}

// EndSession 结束当前会话
func (w *World) EndSession() {
	if w.Session != nil {
		w.Session.Logger.Info("session ended",
			zap.Int("left", w.Session.ScoreBoard.Left),
			zap.Int("right", w.Session.ScoreBoard.Right))
	}
	w.Session = nil
}
