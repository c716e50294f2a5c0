package scenes

import (
	"github.com/gonewx/pong/pkg/game"
)

// PlayingScene 游戏进行中
// 进入时创建会话，离开时结束会话；模拟管线只在此状态位于栈顶时运行
type PlayingScene struct {
	game.BaseState
	mode game.GameMode
}

// NewPlayingScene 以给定模式创建游戏场景
func NewPlayingScene(mode game.GameMode) *PlayingScene {
	return &PlayingScene{mode: mode}
}

func (s *PlayingScene) Name() string { return "Playing" }

func (s *PlayingScene) OnStart(w *game.World) {
	w.StartSession(s.mode)
	w.State = game.StatePlaying
}

func (s *PlayingScene) OnStop(w *game.World) {
	w.EndSession()
}

func (s *PlayingScene) OnResume(w *game.World) {
	w.State = game.StatePlaying
}

func (s *PlayingScene) HandleEvent(_ *game.World, ev game.StateEvent) game.Trans {
	switch ev {
	case game.EventPause:
		return game.Push(NewPausedScene())
	case game.EventClose:
		return game.Quit()
	}
	return game.None()
}

// PausedScene 暂停覆盖层
// 同一个暂停键恢复游戏（没有单独的恢复键）
type PausedScene struct {
	game.BaseState
}

// NewPausedScene 创建暂停场景
func NewPausedScene() *PausedScene {
	return &PausedScene{}
}

func (s *PausedScene) Name() string { return "Paused" }

func (s *PausedScene) OnStart(w *game.World) {
	w.State = game.StatePaused
}

func (s *PausedScene) HandleEvent(_ *game.World, ev game.StateEvent) game.Trans {
	switch ev {
	case game.EventPause:
		return game.Pop()
	case game.EventClose:
		return game.Quit()
	}
	return game.None()
}
