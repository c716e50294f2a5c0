// Package app 提供 ebiten 窗口前端
//
// 该包把与前端无关的 engine.Engine 接到 ebiten 的游戏循环上：
// 每个 tick 轮询键盘、推进一帧、播放提示音；Draw 只读 World 绘制画面。
package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/gonewx/pong/internal/audio"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/engine"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/input"
)

// DefaultScale 每个场地单位对应的像素数
const DefaultScale = 6

// Config 定义应用启动配置
type Config struct {
	// Game 游戏配置，nil 时使用默认值
	Game *config.GameConfig
	// Input 按键绑定，nil 时使用默认值
	Input *config.InputConfig
	// Settings 持久化设置，nil 时仅保存在内存
	Settings *game.SettingsManager
	// Mode 覆盖上次使用的模式（"single" / "multi" / "demo"），为空则沿用设置
	Mode string
	// Mute 本次运行静音，不影响已保存的设置
	Mute bool
	// Scale 像素缩放，<= 0 时使用 DefaultScale
	Scale  float64
	Logger *zap.Logger
}

// App 是 ebiten 前端，实现 ebiten.Game 接口
type App struct {
	engine   *engine.Engine
	keys     KeyMap
	renderer *Renderer
	cues     *audio.CuePlayer
	logger   *zap.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	eng, err := engine.New(cfg.Game, cfg.Input, cfg.Settings, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Mode != "" {
		mode, err := game.ParseGameMode(cfg.Mode)
		if err != nil {
			return nil, fmt.Errorf("invalid mode: %w", err)
		}
		eng.World.Mode = mode
	}

	keys, unknown := ResolveKeys(input.Keys(eng.World.Input))
	for _, name := range unknown {
		logger.Warn("unknown key name in bindings, ignoring", zap.String("key", name))
	}

	renderer := NewRenderer(eng.World.Config.Arena, scale)
	eng.AddLoadTask("font", renderer.LoadFont)

	settings := eng.World.Settings.GetSettings()
	a := &App{
		engine:   eng,
		keys:     keys,
		renderer: renderer,
		cues:     audio.NewCuePlayer(settings.SoundEnabled && !cfg.Mute, logger),
		logger:   logger.Named("App"),
	}
	eng.Start()
	return a, nil
}

// WindowSize 返回初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.renderer.Size()
}

// Engine 返回底层运行时
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.renderer.Size())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if ebiten.IsWindowBeingClosed() {
		if err := a.engine.Close(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}

	held, pressed := a.keys.Poll()
	err := a.engine.Tick(held, pressed, 1/float64(ebiten.TPS()))
	a.cues.Consume(a.engine.World.Session)

	if err != nil && !errors.Is(err, game.ErrNotRunning) {
		return err
	}
	if !a.engine.Running() {
		a.cues.Close()
		if err := a.engine.Err(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.engine.World.Settings.SetFullscreen(fullscreen)
	a.logger.Debug("fullscreen toggled", zap.Bool("fullscreen", fullscreen))
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.engine.World, a.engine.Machine.Current())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.renderer.Size()
}
