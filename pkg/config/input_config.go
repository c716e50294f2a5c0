package config

import (
	"fmt"
	"os"
	"sort"
)

// 输入轴名称
const (
	AxisLeftPaddle  = "left_paddle"
	AxisRightPaddle = "right_paddle"
)

// 动作名称
const (
	ActionPause    = "pause"
	ActionConfirm  = "confirm"
	ActionMenuUp   = "menu_up"
	ActionMenuDown = "menu_down"
	ActionQuit     = "quit"
)

// AxisBinding 一个输入轴的按键绑定
// Positive 中任意键按下为 +1，Negative 为 -1，同时按下抵消为 0
type AxisBinding struct {
	Positive []string `yaml:"positive" toml:"positive"`
	Negative []string `yaml:"negative" toml:"negative"`
}

// InputConfig 按键绑定配置
// 键名使用前端无关的名称（"W"、"Up"、"Enter"、"Escape" 等）
type InputConfig struct {
	Axes    map[string]AxisBinding `yaml:"axes" toml:"axes"`
	Actions map[string][]string    `yaml:"actions" toml:"actions"`
}

// DefaultInputConfig 返回默认按键绑定
func DefaultInputConfig() *InputConfig {
	return &InputConfig{
		Axes: map[string]AxisBinding{
			AxisLeftPaddle:  {Positive: []string{"W"}, Negative: []string{"S"}},
			AxisRightPaddle: {Positive: []string{"Up"}, Negative: []string{"Down"}},
		},
		Actions: map[string][]string{
			ActionPause:    {"Escape", "P"},
			ActionConfirm:  {"Enter", "Space"},
			ActionMenuUp:   {"Up", "W"},
			ActionMenuDown: {"Down", "S"},
			ActionQuit:     {"Q"},
		},
	}
}

// LoadInputConfig 从文件加载按键绑定
func LoadInputConfig(path string) (*InputConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input config file: %w", err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return ParseInputConfig(data, format)
}

// ParseInputConfig 解析按键绑定数据
// 文件中给出的 axes/actions 整体替换默认值
func ParseInputConfig(data []byte, format string) (*InputConfig, error) {
	var cfg InputConfig
	if err := decode(data, format, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse input config: %w", err)
	}

	defaults := DefaultInputConfig()
	if cfg.Axes == nil {
		cfg.Axes = defaults.Axes
	}
	if cfg.Actions == nil {
		cfg.Actions = defaults.Actions
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input config: %w", err)
	}

	return &cfg, nil
}

// Validate 校验按键绑定：每个轴至少绑定一个键
func (c *InputConfig) Validate() error {
	for name, binding := range c.Axes {
		if len(binding.Positive) == 0 && len(binding.Negative) == 0 {
			return fmt.Errorf("axis %q has no keys bound", name)
		}
	}
	return nil
}

// AxisNames 返回已绑定的轴名称（排序，保证遍历顺序稳定）
func (c *InputConfig) AxisNames() []string {
	names := make([]string, 0, len(c.Axes))
	for name := range c.Axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
