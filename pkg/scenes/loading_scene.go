package scenes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/game"
)

// LoadingScene 等待后台加载任务完成
//
// 每帧轮询一次进度（不阻塞）：全部完成后进入菜单（配置 SkipMenu 时直接开始游戏），
// 任一任务失败则带着 LoadError 退出。
type LoadingScene struct {
	game.BaseState
	progress     *game.Progress
	lastFinished int
}

// NewLoadingScene 创建加载场景
func NewLoadingScene(progress *game.Progress) *LoadingScene {
	return &LoadingScene{progress: progress, lastFinished: -1}
}

func (s *LoadingScene) Name() string { return "Loading" }

// Progress 返回加载进度（渲染进度条用）
func (s *LoadingScene) Progress() *game.Progress {
	return s.progress
}

func (s *LoadingScene) OnStart(w *game.World) {
	w.State = game.StateLoading
}

// HandleEvent 加载期间 Escape 或关闭窗口直接退出
func (s *LoadingScene) HandleEvent(_ *game.World, ev game.StateEvent) game.Trans {
	switch ev {
	case game.EventClose, game.EventPause:
		return game.Quit()
	}
	return game.None()
}

func (s *LoadingScene) Update(w *game.World, _ float64) game.Trans {
	finished, total := s.progress.Counts()
	if finished != s.lastFinished {
		s.lastFinished = finished
		w.Logger.Info(fmt.Sprintf("[%d/%d] Loading Assets...", finished, total))
	}

	switch s.progress.Status() {
	case game.LoadComplete:
		if w.Config.SkipMenu {
			w.Logger.Info("loading complete, skipping menu", zap.Stringer("mode", w.Mode))
			return game.Switch(NewPlayingScene(w.Mode))
		}
		return game.Switch(NewMenuScene())
	case game.LoadFailed:
		return game.QuitWithError(s.progress.Err())
	}
	return game.None()
}
