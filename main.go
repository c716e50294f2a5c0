package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/app"
	"github.com/gonewx/pong/pkg/embedded"
	"github.com/gonewx/pong/pkg/engine"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/utils"
)

var (
	configPath = flag.String("config", "", "游戏配置文件（.yaml / .toml），为空使用内置配置")
	inputPath  = flag.String("input", "", "按键绑定文件，为空使用内置绑定")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	skipMenu   = flag.Bool("skip-menu", false, "跳过主菜单直接开始")
	mode       = flag.String("mode", "", "游戏模式：single、multi 或 demo，为空沿用上次选择")
	noSound    = flag.Bool("no-sound", false, "本次运行关闭音效（不修改设置）")
)

func main() {
	flag.Parse()

	logger, err := utils.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	embedded.Init(dataFS)

	cfg, inputCfg, err := engine.LoadConfigs(*configPath, *inputPath)
	if err != nil {
		return err
	}
	if *skipMenu {
		cfg.SkipMenu = true
	}

	var store *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "pong"}); err == nil {
		store = m
	} else {
		logger.Warn("gdata unavailable, settings will not persist", zap.Error(err))
	}
	settings, _ := game.NewSettingsManager(store, logger)

	gameApp, err := app.NewApp(app.Config{
		Game:     cfg,
		Input:    inputCfg,
		Settings: settings,
		Mode:     *mode,
		Mute:     *noSound,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}

	ebiten.SetWindowSize(gameApp.WindowSize())
	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	err = ebiten.RunGame(gameApp)

	if saveErr := settings.Save(); saveErr != nil {
		logger.Warn("failed to save settings", zap.Error(saveErr))
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
