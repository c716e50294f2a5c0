package components

// BallComponent 球的速度（单位/秒）与半径
// 半径在会话期间保持不变
type BallComponent struct {
	VelocityX float64
	VelocityY float64
	Radius    float64
}
