package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// 游戏常量
const (
	// SpeedScale 输入轴值到纵向位移的缩放系数
	SpeedScale = 1.2
	// MaxScore 单侧比分上限，超过后饱和
	MaxScore = 999
)

// 配置文件格式
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Vec2 二维向量（配置用）
type Vec2 struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// ArenaConfig 场地尺寸，坐标范围 [0, Width] × [0, Height]，y 轴向上
type ArenaConfig struct {
	Height float64 `yaml:"height" toml:"height"`
	Width  float64 `yaml:"width" toml:"width"`
}

// BallConfig 球的初始速度与半径
type BallConfig struct {
	Velocity Vec2    `yaml:"velocity" toml:"velocity"`
	Radius   float64 `yaml:"radius" toml:"radius"`
}

// PaddleConfig 球拍尺寸
type PaddleConfig struct {
	Height float64 `yaml:"height" toml:"height"`
	Width  float64 `yaml:"width" toml:"width"`
}

// AIConfig 电脑对手配置
// Enabled 为 true 时，未激活的玩家位由反射式 AI 控制
type AIConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// SchedulerConfig 系统调度配置
type SchedulerConfig struct {
	// Parallel 同一批次内无依赖的系统是否并发执行
	Parallel bool `yaml:"parallel" toml:"parallel"`
}

// GameConfig 游戏配置（场地、球、球拍等）
// 会话开始时加载一次，运行期间只读
type GameConfig struct {
	Arena     ArenaConfig     `yaml:"arena" toml:"arena"`
	Ball      BallConfig      `yaml:"ball" toml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle" toml:"paddle"`
	AI        AIConfig        `yaml:"ai" toml:"ai"`
	Scheduler SchedulerConfig `yaml:"scheduler" toml:"scheduler"`

	// SkipMenu 加载完成后跳过菜单，直接进入游戏
	SkipMenu bool `yaml:"skipMenu" toml:"skip_menu"`
	// DefaultMode 未保存过设置时菜单默认选中的模式："single"、"multi" 或 "demo"
	DefaultMode string `yaml:"defaultMode" toml:"default_mode"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{Height: 100, Width: 100},
		Ball: BallConfig{
			Velocity: Vec2{X: 75, Y: 50},
			Radius:   2.5,
		},
		Paddle:      PaddleConfig{Height: 15, Width: 2.5},
		AI:          AIConfig{Enabled: true},
		DefaultMode: "single",
	}
}

// LoadGameConfig 从文件加载游戏配置
// 根据扩展名选择解码器（.yaml/.yml 或 .toml），未出现的字段保留默认值
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *GameConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return ParseGameConfig(data, format)
}

// ParseGameConfig 解析配置数据（用于嵌入的默认配置）
func ParseGameConfig(data []byte, format string) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := decode(data, format, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 校验配置
// 所有尺寸必须为正，球必须小于半个场地，球拍必须能放进场地
func (c *GameConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena dimensions must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Ball.Radius >= c.Arena.Width/2 {
		return fmt.Errorf("ball radius %v must be smaller than half the arena width %v", c.Ball.Radius, c.Arena.Width/2)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		return fmt.Errorf("paddle dimensions must be positive, got %vx%v", c.Paddle.Width, c.Paddle.Height)
	}
	if c.Paddle.Height > c.Arena.Height {
		return fmt.Errorf("paddle height %v exceeds arena height %v", c.Paddle.Height, c.Arena.Height)
	}
	if 2*c.Paddle.Width+2*c.Ball.Radius >= c.Arena.Width {
		return fmt.Errorf("arena width %v leaves no room between paddles", c.Arena.Width)
	}
	switch c.DefaultMode {
	case "", "single", "multi", "demo":
	default:
		return fmt.Errorf("unknown default mode %q (want \"single\", \"multi\" or \"demo\")", c.DefaultMode)
	}
	return nil
}

// FormatFromPath 根据文件扩展名判断配置格式
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config format: %s", path)
	}
}

func decode(data []byte, format string, out interface{}) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatTOML:
		_, err := toml.Decode(string(data), out)
		return err
	default:
		return fmt.Errorf("unsupported config format: %s", format)
	}
}
