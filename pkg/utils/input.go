// Package utils 提供与平台相关的输入和存储辅助函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerJustPressed 本帧是否刚按下指针（触摸优先，其次鼠标左键）
// 返回是否按下以及屏幕坐标
func PointerJustPressed() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// TouchCount 当前按在屏幕上的手指数量
func TouchCount() int {
	return len(ebiten.AppendTouchIDs(nil))
}

// MultiTouchJustStarted 本帧是否刚形成 n 指及以上的触摸
func MultiTouchJustStarted(n int) bool {
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 && TouchCount() >= n
}
