package components

import "github.com/decker502/gridfloor/pkg/grid"

// WallComponent 标识墙段实体，保存两个端点（实体坐标）
type WallComponent struct {
	Start grid.Coordinate
	End   grid.Coordinate
}

// Length 返回墙段覆盖的格子数
func (w WallComponent) Length() int {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy + 1
}
