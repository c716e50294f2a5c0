// Package terminal 提供基于 tcell 的终端前端
//
// 场地按终端尺寸缩放到字符网格；输入事件在后台 goroutine 中轮询，
// 经 channel 交给主循环，所有 engine 调用都在主循环中完成。
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/gonewx/pong/internal/audio"
	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/engine"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/input"
	"github.com/gonewx/pong/pkg/scenes"
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBright  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// Frontend 终端前端
type Frontend struct {
	screen  tcell.Screen
	engine  *engine.Engine
	held    *heldKeys
	pressed input.KeySet
	logger  *zap.Logger

	// Cues 可选的提示音播放器
	Cues *audio.CuePlayer
}

// New 创建终端前端，screen 需已 Init
func New(screen tcell.Screen, eng *engine.Engine, logger *zap.Logger) *Frontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Frontend{
		screen:  screen,
		engine:  eng,
		held:    newHeldKeys(DefaultHold),
		pressed: input.KeySet{},
		logger:  logger.Named("Terminal"),
	}
}

// Run 以 tps 频率运行主循环，直到游戏退出或 ctx 取消
func (f *Frontend) Run(ctx context.Context, tps int) error {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	deltaTime := 1 / float64(tps)

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("interrupted")
			return f.engine.Close()

		case ev, ok := <-events:
			if !ok {
				return f.engine.Close()
			}
			f.HandleEvent(ev, time.Now())

		case now := <-ticker.C:
			if err := f.Step(now, deltaTime); err != nil {
				return err
			}
			if !f.engine.Running() {
				return f.engine.Err()
			}
		}
	}
}

// HandleEvent 处理一个终端事件
func (f *Frontend) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			if err := f.engine.Close(); err != nil {
				f.logger.Warn("close failed", zap.Error(err))
			}
			return
		}
		name, ok := KeyName(ev)
		if !ok {
			return
		}
		f.pressed.Press(name)
		f.held.press(name, now)
	}
}

// Step 推进一帧并重绘
func (f *Frontend) Step(now time.Time, deltaTime float64) error {
	pressed := f.pressed
	f.pressed = input.KeySet{}

	err := f.engine.Tick(f.held.snapshot(now), pressed, deltaTime)
	if f.Cues != nil {
		f.Cues.Consume(f.engine.World.Session)
	}
	if err != nil {
		return err
	}
	if f.engine.Running() {
		f.Draw()
	}
	return nil
}

// Draw 绘制当前状态
func (f *Frontend) Draw() {
	f.screen.Clear()
	w := f.engine.World
	cols, rows := f.screen.Size()

	switch w.State {
	case game.StateLoading:
		done, total := f.engine.Progress.Counts()
		drawCentered(f.screen, rows/2, loadingText(done, total), styleDefault)

	case game.StateMenu:
		menu, ok := f.engine.Machine.Current().(*scenes.MainMenuScene)
		if !ok {
			break
		}
		drawCentered(f.screen, rows/4, "P O N G", styleBright)
		for i, item := range menu.Items() {
			style, label := styleDim, item
			if scenes.MenuItem(i) == menu.Selected() {
				style, label = styleBright, "> "+item+" <"
			}
			drawCentered(f.screen, rows/2+i, label, style)
		}

	case game.StatePlaying, game.StatePaused:
		if w.Session != nil {
			f.drawSession(w.Session, cols, rows)
		}
		if w.State == game.StatePaused {
			drawCentered(f.screen, rows/2, " PAUSED ", styleBright.Reverse(true))
		}
	}
	f.screen.Show()
}

func (f *Frontend) drawSession(s *game.Session, cols, rows int) {
	g := Grid{Arena: s.Arena, Cols: cols, Rows: rows}
	em := s.Entities

	mid := cols / 2
	for y := 0; y < rows; y += 2 {
		f.screen.SetContent(mid, y, '│', nil, styleDim)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.PaddleComponent](em) {
		t, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		p, _ := ecs.GetComponent[*components.PaddleComponent](em, id)
		x0, y0, x1, y1 := g.PaddleCells(t, p)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				f.screen.SetContent(x, y, '█', nil, styleBright)
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em) {
		t, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := g.Cell(t.X, t.Y)
		f.screen.SetContent(x, y, '●', nil, styleBright)
	}

	left, right := s.ScoreTexts()
	drawString(f.screen, cols/4-len(left)/2, 0, left, styleBright)
	drawString(f.screen, cols*3/4-len(right)/2, 0, right, styleBright)
}

// Grid 场地坐标到字符网格的映射（y 轴翻转）
type Grid struct {
	Arena config.ArenaConfig
	Cols  int
	Rows  int
}

// Cell 返回场地坐标所在的格子，结果夹在网格范围内
func (g Grid) Cell(x, y float64) (int, int) {
	cx, cy := g.scale(x, y)
	return g.clampCol(int(math.Floor(cx))), g.clampRow(int(math.Floor(cy)))
}

// PaddleCells 返回球拍覆盖的格子范围（闭区间），至少一格
func (g Grid) PaddleCells(t *components.TransformComponent, p *components.PaddleComponent) (x0, y0, x1, y1 int) {
	left, bottom := t.BottomLeft(p.Width, p.Height)
	fx0, fy0 := g.scale(left, bottom+p.Height)
	fx1, fy1 := g.scale(left+p.Width, bottom)

	x0, y0 = g.clampCol(int(math.Floor(fx0))), g.clampRow(int(math.Floor(fy0)))
	x1, y1 = g.clampCol(int(math.Ceil(fx1))-1), g.clampRow(int(math.Ceil(fy1))-1)
	return x0, y0, max(x0, x1), max(y0, y1)
}

func (g Grid) scale(x, y float64) (float64, float64) {
	return x / g.Arena.Width * float64(g.Cols), (g.Arena.Height - y) / g.Arena.Height * float64(g.Rows)
}

func (g Grid) clampCol(x int) int { return min(max(x, 0), g.Cols-1) }
func (g Grid) clampRow(y int) int { return min(max(y, 0), g.Rows-1) }

func loadingText(done, total int) string {
	if total == 0 {
		return "Loading..."
	}
	return fmt.Sprintf("[%d/%d] Loading Assets...", done, total)
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(screen tcell.Screen, y int, s string, style tcell.Style) {
	cols, _ := screen.Size()
	drawString(screen, (cols-len([]rune(s)))/2, y, s, style)
}
