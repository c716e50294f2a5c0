// pong-sim 无界面运行模拟并输出比分
//
// 默认两侧都由 AI 控制（demo 模式），跳过菜单，以固定步长运行指定帧数：
//
//	go run ./cmd/pong-sim -frames 3600 -parallel -verbose
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/engine"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/input"
	"github.com/gonewx/pong/pkg/utils"
)

var (
	configPath = flag.String("config", "", "游戏配置文件（.yaml / .toml）")
	frames     = flag.Int("frames", 3600, "模拟帧数")
	tps        = flag.Int("tps", 60, "每秒帧数（决定时间步长）")
	mode       = flag.String("mode", "demo", "游戏模式：single、multi 或 demo")
	parallel   = flag.Bool("parallel", false, "同一批次内的系统并行执行")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// Result 一次模拟的统计
type Result struct {
	Frames        int
	WallBounces   int
	PaddleBounces int
	Goals         int
	Left, Right   int
	SessionID     string
}

func main() {
	flag.Parse()

	logger, err := utils.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, _, err := engine.LoadConfigs(*configPath, "")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg.SkipMenu = true
	cfg.Scheduler.Parallel = cfg.Scheduler.Parallel || *parallel

	m, err := game.ParseGameMode(*mode)
	if err != nil {
		logger.Fatal("invalid mode", zap.Error(err))
	}

	res, err := Simulate(cfg, m, *frames, 1/float64(*tps), logger)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	fmt.Printf("session %s: %d frames\n", res.SessionID, res.Frames)
	fmt.Printf("wall bounces: %d, paddle bounces: %d, goals: %d\n", res.WallBounces, res.PaddleBounces, res.Goals)
	fmt.Printf("Score: | %d | %d |\n", res.Left, res.Right)
}

// Simulate 以 mode 开局并运行 frames 帧
func Simulate(cfg *config.GameConfig, mode game.GameMode, frames int, deltaTime float64, logger *zap.Logger) (Result, error) {
	eng, err := engine.New(cfg, nil, nil, logger)
	if err != nil {
		return Result{}, err
	}
	eng.World.Mode = mode
	eng.Start()

	none := input.KeySet{}
	var res Result
	var reader *game.ReaderID

	for res.Frames < frames && eng.Running() {
		if err := eng.Tick(none, none, deltaTime); err != nil {
			return res, err
		}
		res.Frames++

		s := eng.World.Session
		if s == nil {
			continue
		}
		if reader == nil {
			reader = s.Events.RegisterReader()
			res.SessionID = s.ID
		}
		for _, ev := range s.Events.Read(reader) {
			switch ev.Kind {
			case game.EventWallBounce:
				res.WallBounces++
			case game.EventPaddleBounce:
				res.PaddleBounces++
			case game.EventScored:
				res.Goals++
			}
		}
		res.Left, res.Right = s.ScoreBoard.Left, s.ScoreBoard.Right
	}

	return res, eng.Close()
}
