package game

import (
	"github.com/gonewx/pong/pkg/config"
	"github.com/gonewx/pong/pkg/ecs"
)

// ScoreBoard 左右两侧的比分
// 只由计分系统修改，取值范围 [0, MaxScore]，只增不减
type ScoreBoard struct {
	Left  int
	Right int
}

// ScoreLeft 左侧得一分（饱和于 MaxScore），返回新比分
func (s *ScoreBoard) ScoreLeft() int {
	s.Left = saturatingInc(s.Left)
	return s.Left
}

// ScoreRight 右侧得一分（饱和于 MaxScore），返回新比分
func (s *ScoreBoard) ScoreRight() int {
	s.Right = saturatingInc(s.Right)
	return s.Right
}

func saturatingInc(v int) int {
	if v >= config.MaxScore {
		return config.MaxScore
	}
	return v + 1
}

// ScoreText 比分文本句柄（由渲染端拥有的 UITextComponent 实体）
type ScoreText struct {
	P1Score ecs.EntityID // 左侧比分
	P2Score ecs.EntityID // 右侧比分
}
