package components

// UITextComponent 由渲染端读取的文本句柄（比分显示）
// 核心逻辑只负责赋值，不负责绘制
type UITextComponent struct {
	Text string
}
