// pong-term 在终端中运行游戏
//
// 使用方法：
//
//	go run ./cmd/pong-term [-config game.toml] [-input keys.yaml] [-log pong.log] [-mode multi]
//
// 终端占用标准输出，日志只写入 -log 指定的文件。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/gonewx/pong/internal/audio"
	"github.com/gonewx/pong/internal/terminal"
	"github.com/gonewx/pong/pkg/engine"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/utils"
)

var (
	configPath = flag.String("config", "", "游戏配置文件（.yaml / .toml）")
	inputPath  = flag.String("input", "", "按键绑定文件")
	logPath    = flag.String("log", "", "日志文件，为空不记录")
	verbose    = flag.Bool("verbose", false, "记录调试日志")
	mode       = flag.String("mode", "", "游戏模式：single、multi 或 demo")
	skipMenu   = flag.Bool("skip-menu", false, "跳过主菜单直接开始")
	sound      = flag.Bool("sound", false, "启用提示音")
	tps        = flag.Int("tps", 60, "每秒模拟帧数")
)

func main() {
	flag.Parse()

	logger, err := utils.NewFileLogger(*logPath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	if *tps <= 0 {
		return fmt.Errorf("invalid tps %d", *tps)
	}

	cfg, inputCfg, err := engine.LoadConfigs(*configPath, *inputPath)
	if err != nil {
		return err
	}
	if *skipMenu {
		cfg.SkipMenu = true
	}

	eng, err := engine.New(cfg, inputCfg, nil, logger)
	if err != nil {
		return err
	}
	if *mode != "" {
		m, err := game.ParseGameMode(*mode)
		if err != nil {
			return err
		}
		eng.World.Mode = m
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	frontend := terminal.New(screen, eng, logger)
	if *sound {
		frontend.Cues = audio.NewCuePlayer(true, logger)
		defer frontend.Cues.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Start()
	return frontend.Run(ctx, *tps)
}
