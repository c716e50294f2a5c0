package app

import (
	"bytes"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/pong/pkg/components"
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/scenes"
)

var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	foregroundColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dimColor        = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	overlayColor    = color.RGBA{A: 160}
)

// Renderer 把 World 画到屏幕上
//
// 场地坐标原点在左下角、y 轴向上；屏幕坐标原点在左上角，绘制时翻转 y 并按 Scale 缩放。
type Renderer struct {
	Arena config.ArenaConfig
	Scale float64

	source atomic.Pointer[text.GoTextFaceSource]
}

// NewRenderer 创建渲染器
func NewRenderer(arena config.ArenaConfig, scale float64) *Renderer {
	return &Renderer{Arena: arena, Scale: scale}
}

// LoadFont 加载内置字体，作为 Loading 阶段的后台任务运行（与 Draw 并发）
func (r *Renderer) LoadFont() error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("无法创建字体源: %w", err)
	}
	r.source.Store(source)
	return nil
}

// Size 返回逻辑屏幕尺寸
func (r *Renderer) Size() (int, int) {
	return int(r.Arena.Width * r.Scale), int(r.Arena.Height * r.Scale)
}

// ToScreen 场地坐标转屏幕坐标
func (r *Renderer) ToScreen(x, y float64) (float32, float32) {
	return float32(x * r.Scale), float32((r.Arena.Height - y) * r.Scale)
}

// PaddleRect 返回球拍在屏幕上的矩形（左上角和尺寸）
func (r *Renderer) PaddleRect(t *components.TransformComponent, p *components.PaddleComponent) (x, y, w, h float32) {
	left, bottom := t.BottomLeft(p.Width, p.Height)
	x, y = r.ToScreen(left, bottom+p.Height)
	return x, y, float32(p.Width * r.Scale), float32(p.Height * r.Scale)
}

// Draw 按当前状态绘制一帧
func (r *Renderer) Draw(screen *ebiten.Image, w *game.World, current game.State) {
	screen.Fill(backgroundColor)
	width, height := r.Size()
	cx, cy := float64(width)/2, float64(height)/2

	switch w.State {
	case game.StateLoading:
		r.drawText(screen, "Loading...", 24, cx, cy, foregroundColor)

	case game.StateMenu:
		menu, ok := current.(*scenes.MainMenuScene)
		if !ok {
			return
		}
		r.drawText(screen, "PONG", 48, cx, float64(height)/4, foregroundColor)
		for i, item := range menu.Items() {
			clr := dimColor
			label := item
			if scenes.MenuItem(i) == menu.Selected() {
				clr = foregroundColor
				label = "> " + item + " <"
			}
			r.drawText(screen, label, 24, cx, cy+float64(i)*40, clr)
		}

	case game.StatePlaying, game.StatePaused:
		if w.Session == nil {
			return
		}
		r.drawSession(screen, w.Session)
		if w.State == game.StatePaused {
			vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayColor, false)
			r.drawText(screen, "PAUSED", 36, cx, cy, foregroundColor)
		}
	}
}

func (r *Renderer) drawSession(screen *ebiten.Image, s *game.Session) {
	em := s.Entities
	width, _ := r.Size()

	// 中线
	for y := 0.0; y < r.Arena.Height; y += 5 {
		x, sy := r.ToScreen(r.Arena.Width/2, y+2.5)
		vector.DrawFilledRect(screen, x-1, sy, 2, float32(2.5*r.Scale), dimColor, false)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.PaddleComponent](em) {
		t, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		p, _ := ecs.GetComponent[*components.PaddleComponent](em, id)
		x, y, w, h := r.PaddleRect(t, p)
		vector.DrawFilledRect(screen, x, y, w, h, foregroundColor, false)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.BallComponent](em) {
		t, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		b, _ := ecs.GetComponent[*components.BallComponent](em, id)
		x, y := r.ToScreen(t.X, t.Y)
		vector.DrawFilledCircle(screen, x, y, float32(b.Radius*r.Scale), foregroundColor, true)
	}

	left, right := s.ScoreTexts()
	r.drawText(screen, left, 32, float64(width)/4, 30, foregroundColor)
	r.drawText(screen, right, 32, float64(width)*3/4, 30, foregroundColor)
}

// drawText 以 (x, y) 为中心绘制文字；字体未加载时跳过
func (r *Renderer) drawText(screen *ebiten.Image, s string, size, x, y float64, clr color.Color) {
	source := r.source.Load()
	if source == nil {
		return
	}
	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}
