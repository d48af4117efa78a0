package components

import "github.com/decker502/gridfloor/pkg/grid"

// GridPositionComponent 记录实体所在的网格坐标（实体坐标，从 1 开始）
type GridPositionComponent struct {
	Coord grid.Coordinate
}
