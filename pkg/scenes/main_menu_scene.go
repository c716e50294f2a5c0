package scenes

import (
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/game"
)

// MenuItem 主菜单选项
type MenuItem int

const (
	MenuSinglePlayer MenuItem = iota
	MenuMultiPlayer
	MenuQuit
)

var menuLabels = []string{"1 Player", "2 Players", "Quit"}

// MainMenuScene 模式选择菜单
// 上下键循环选择，确认后携带对应的 PlayersActive 开始游戏
type MainMenuScene struct {
	game.BaseState
	selected MenuItem
}

// NewMenuScene 创建主菜单
func NewMenuScene() *MainMenuScene {
	return &MainMenuScene{}
}

func (s *MainMenuScene) Name() string { return "Menu" }

// Items 返回菜单文字
func (s *MainMenuScene) Items() []string {
	return menuLabels
}

// Selected 返回当前选中项
func (s *MainMenuScene) Selected() MenuItem {
	return s.selected
}

// OnStart 默认选中上次使用的模式
func (s *MainMenuScene) OnStart(w *game.World) {
	w.State = game.StateMenu
	if w.Mode == game.ModeMultiPlayer {
		s.selected = MenuMultiPlayer
	} else {
		s.selected = MenuSinglePlayer
	}
}

func (s *MainMenuScene) HandleEvent(w *game.World, ev game.StateEvent) game.Trans {
	n := MenuItem(len(menuLabels))

	switch ev {
	case game.EventMenuUp:
		s.selected = (s.selected + n - 1) % n
	case game.EventMenuDown:
		s.selected = (s.selected + 1) % n
	case game.EventClose, game.EventPause:
		return game.Quit()
	case game.EventConfirm:
		return s.confirm(w)
	}
	return game.None()
}

func (s *MainMenuScene) confirm(w *game.World) game.Trans {
	var mode game.GameMode
	switch s.selected {
	case MenuSinglePlayer:
		mode = game.ModeSinglePlayer
	case MenuMultiPlayer:
		mode = game.ModeMultiPlayer
	default:
		return game.Quit()
	}

	w.Mode = mode
	w.Settings.SetLastMode(mode)
	if err := w.Settings.Save(); err != nil {
		w.Logger.Warn("failed to save settings", zap.Error(err))
	}
	return game.Switch(NewPlayingScene(mode))
}
