package utils

// Clamp 将 v 限制在 [lo, hi] 范围内
// lo > hi 时返回 lo
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// PointInRect 判断点 (x, y) 是否落在闭区间矩形 [left, right] × [bottom, top] 内
func PointInRect(x, y, left, bottom, right, top float64) bool {
	return x >= left && x <= right && y >= bottom && y <= top
}
