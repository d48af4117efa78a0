package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可显示的场景（地板、实体及其系统）
type Scene interface {
	// Update 按经过的时间（秒）更新场景逻辑
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于在场景切换或程序退出时保存状态
type Saveable interface {
	// SaveOnExit 保存状态
	// 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
