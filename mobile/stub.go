//go:build !mobile

// 桌面构建时 mobile 包只保留空的导出函数
package mobile

// Dummy 空导出函数，保证包在桌面构建时也能被引用
func Dummy() {}
