package components

// TransformComponent 实体的中心位置（场地坐标，y 轴向上）
type TransformComponent struct {
	X float64
	Y float64
}

// BottomLeft 返回宽 w 高 h、中心在此位置的矩形左下角
func (t *TransformComponent) BottomLeft(w, h float64) (float64, float64) {
	return t.X - w/2, t.Y - h/2
}
