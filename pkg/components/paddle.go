package components

// Side 球拍所在的一侧
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String 返回侧边名称（用于日志）
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// PaddleComponent 球拍
// 每个会话左右各一个，Side 创建后不可修改
type PaddleComponent struct {
	Side   Side
	Width  float64
	Height float64
}
