// Package engine 组装与前端无关的游戏运行时
//
// Engine 持有 World、状态机和模拟管线；前端（ebiten 窗口、终端、无界面模拟）
// 每帧把按键快照交给 Tick，由它依次完成：事件分发 → 状态更新 → 管线执行。
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/embedded"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/input"
	"github.com/gonewx/pong/pkg/scenes"
	"github.com/gonewx/pong/pkg/systems"
)

// 嵌入的默认配置路径
const (
	DefaultConfigPath = "data/config.yaml"
	DefaultInputPath  = "data/input.yaml"
)

// ErrNotStarted Tick 在 Start 之前调用
var ErrNotStarted = errors.New("engine not started")

// Engine 与前端无关的游戏运行时
type Engine struct {
	World    *game.World
	Machine  *game.StateMachine
	Pipeline *systems.Dispatcher
	Progress *game.Progress

	axes    *input.KeyAxes
	actions *input.Actions
	started bool
	logger  *zap.Logger
}

// New 创建运行时；settings 可为 nil（仅内存设置）
func New(cfg *config.GameConfig, inputCfg *config.InputConfig, settings *game.SettingsManager, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if inputCfg == nil {
		inputCfg = config.DefaultInputConfig()
	}

	world := game.NewWorld(cfg, inputCfg, settings, logger)
	axes := input.NewKeyAxes(inputCfg, input.KeySet{})

	pipeline, err := systems.NewGamePipeline(axes, cfg, inputCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build system pipeline: %w", err)
	}

	return &Engine{
		World:    world,
		Machine:  game.NewStateMachine(world),
		Pipeline: pipeline,
		Progress: game.NewProgress(),
		axes:     axes,
		actions:  input.NewActions(inputCfg),
		logger:   logger.Named("Engine"),
	}, nil
}

// AddLoadTask 注册后台加载任务，Loading 状态会等待其完成
func (e *Engine) AddLoadTask(name string, fn func() error) {
	e.Progress.Go(name, fn)
}

// Start 进入 Loading 状态
func (e *Engine) Start() {
	e.Machine.Start(scenes.NewLoadingScene(e.Progress))
	e.started = true
}

// Running 返回游戏是否仍在运行
func (e *Engine) Running() bool {
	return e.started && e.Machine.Running()
}

// Err 返回导致退出的错误
func (e *Engine) Err() error {
	return e.Machine.Err()
}

// Tick 推进一帧
//
// held 为当前按住的键（用于输入轴），justPressed 为本帧刚按下的键（用于状态机事件）。
// 管线出现致命错误时结束整个会话并返回该错误。
func (e *Engine) Tick(held, justPressed input.KeyState, deltaTime float64) error {
	if !e.started {
		return ErrNotStarted
	}
	if !e.Machine.Running() {
		return e.Machine.Err()
	}

	for _, ev := range e.actions.Events(justPressed) {
		if err := e.Machine.HandleEvent(ev); err != nil {
			return err
		}
		if !e.Machine.Running() {
			return e.Machine.Err()
		}
	}

	if err := e.Machine.Update(deltaTime); err != nil {
		return err
	}
	if !e.Machine.Running() {
		return e.Machine.Err()
	}

	e.axes.SetState(held)
	if err := e.Pipeline.Run(e.World, deltaTime); err != nil {
		e.logger.Error("simulation aborted", zap.Error(err))
		e.Machine.Abort(err)
		return err
	}
	return nil
}

// Close 请求退出（窗口关闭等）
func (e *Engine) Close() error {
	if !e.Running() {
		return nil
	}
	return e.Machine.HandleEvent(game.EventClose)
}

// LoadConfigs 加载游戏配置和按键绑定
//
// 路径为空时依次尝试嵌入的默认文件和内置默认值。
func LoadConfigs(configPath, inputPath string) (*config.GameConfig, *config.InputConfig, error) {
	cfg, err := loadGameConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	inputCfg, err := loadInputConfig(inputPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, inputCfg, nil
}

func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	if !embedded.IsInitialized() {
		return config.DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return config.ParseGameConfig(data, config.FormatYAML)
}

func loadInputConfig(path string) (*config.InputConfig, error) {
	if path != "" {
		return config.LoadInputConfig(path)
	}
	if !embedded.IsInitialized() {
		return config.DefaultInputConfig(), nil
	}
	data, err := embedded.ReadFile(DefaultInputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded input config: %w", err)
	}
	return config.ParseInputConfig(data, config.FormatYAML)
}
