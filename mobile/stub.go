//go:build !mobile

// Package mobile 在桌面构建中只保留导出符号，使 go build ./... 不因构建标签报错
// 绑定入口见 mobile.go（make build-android）
package mobile

// Dummy 与移动端构建保持同名导出
func Dummy() {}
