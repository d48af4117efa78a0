package mesh

import (
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
)

// ColorFunc 为格子坐标生成初始颜色
type ColorFunc func(c grid.Coordinate) ColorRGB

// NewFloorTiles 创建覆盖整个网格的格子列表（cols × rows 个）
//
// 顺序为列优先：外层遍历列 X，内层遍历行 Y，即 index = X*rows + Y。
// colorFn 为 nil 时所有格子为白色。
func NewFloorTiles(cfg config.GridConfig, colorFn ColorFunc) []FloorTile {
	tiles := make([]FloorTile, 0, cfg.TileCount())
	for x := 0; x < cfg.Cols; x++ {
		for y := 0; y < cfg.Rows; y++ {
			c := grid.Coordinate{X: x, Y: y}
			color := ColorRGB{R: 1, G: 1, B: 1}
			if colorFn != nil {
				color = colorFn(c)
			}
			tiles = append(tiles, FloorTile{Coord: c, Color: color})
		}
	}
	return tiles
}

// TileIndex 返回格子在 NewFloorTiles 顺序中的索引
// 坐标不在网格范围内时返回 -1
func TileIndex(c grid.Coordinate, cfg config.GridConfig) int {
	if !grid.InBounds(c, cfg) {
		return -1
	}
	return c.X*cfg.Rows + c.Y
}

// TileCoord 是 TileIndex 的逆运算
func TileCoord(index int, cfg config.GridConfig) (grid.Coordinate, bool) {
	if index < 0 || index >= cfg.TileCount() {
		return grid.Coordinate{}, false
	}
	return grid.Coordinate{X: index / cfg.Rows, Y: index % cfg.Rows}, true
}
