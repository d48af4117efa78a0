// Package grid 提供网格坐标到世界坐标的映射
//
// 地板格子、机器人、球和墙都必须通过本包计算世界坐标，
// 这样实体才能在视觉上与地板格子对齐。
//
// # 坐标系统
//
//   - **网格坐标**：整数 (X, Y)，X 为列索引，Y 为行索引
//   - **世界坐标**：渲染器使用的三维坐标；网格平面位于 Y=0，
//     网格 X 对应世界 X，网格 Y 对应世界 Z
//
// # 两种映射
//
// 地板格子 (x, y) 占据世界区域 [x*w, (x+1)*w) × [y*h, (y+1)*h)，四边各内缩 gap+border：
//
//	startX = x*w + inset      endX = (x+1)*w - inset
//	startZ = y*h + inset      endZ = (y+1)*h - inset
//
// 点状实体的锚点使用半格偏移：
//
//	anchorX = (x - 0.5) * w
//	anchorZ = (y - 0.5) * h
//
// 因此实体坐标 (x, y) 落在地板格子 (x-1, y-1) 的中心，
// 即实体坐标是从 1 开始计数的（30 列地板的边界墙位于 x=1 和 x=30）。
package grid

import (
	"fmt"
	"math"

	"github.com/decker502/gridfloor/pkg/config"
)

// Coordinate 网格坐标
type Coordinate struct {
	X int // 列
	Y int // 行
}

// String 实现 fmt.Stringer
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offset 返回平移后的坐标
func (c Coordinate) Offset(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// Quad 地板格子在世界坐标中的矩形范围（XZ 平面）
type Quad struct {
	StartX, StartZ float64
	EndX, EndZ     float64
}

// Contains 判断世界坐标点是否在矩形内（含边界，允许 tolerance 误差）
func (q Quad) Contains(x, z, tolerance float64) bool {
	return x >= q.StartX-tolerance && x <= q.EndX+tolerance &&
		z >= q.StartZ-tolerance && z <= q.EndZ+tolerance
}

// Width 返回 X 方向尺寸
func (q Quad) Width() float64 { return q.EndX - q.StartX }

// Depth 返回 Z 方向尺寸
func (q Quad) Depth() float64 { return q.EndZ - q.StartZ }

// CellWorldAnchor 返回点状实体的锚点世界坐标
//
// 公式：((x - 0.5) * cellWidth, (y - 0.5) * cellHeight)
// 这个半格偏移是实体与地板格子对齐的约定，地板与实体必须一致使用
func CellWorldAnchor(c Coordinate, cellWidth, cellHeight float64) (worldX, worldZ float64) {
	worldX = (float64(c.X) - 0.5) * cellWidth
	worldZ = (float64(c.Y) - 0.5) * cellHeight
	return worldX, worldZ
}

// CellQuadCorners 返回地板格子的世界坐标矩形
//
// 参数：
//   - c: 格子坐标（本函数不检查是否在网格范围内）
//   - cfg: 网格配置
//
// 返回：
//   - Quad: 保证 StartX < EndX 且 StartZ < EndZ
//   - error: cfg 违反约束时返回包装了 config.ErrConfiguration 的错误，不返回反转的矩形
func CellQuadCorners(c Coordinate, cfg config.GridConfig) (Quad, error) {
	if err := cfg.Validate(); err != nil {
		return Quad{}, err
	}
	return quadCorners(c, cfg), nil
}

// QuadCornersUnchecked 与 CellQuadCorners 相同，但不校验配置
// 调用者必须已经对 cfg 调用过 Validate()（例如批量生成地板网格时）
func QuadCornersUnchecked(c Coordinate, cfg config.GridConfig) Quad {
	return quadCorners(c, cfg)
}

func quadCorners(c Coordinate, cfg config.GridConfig) Quad {
	inset := cfg.Inset()
	x := float64(c.X)
	y := float64(c.Y)
	return Quad{
		StartX: x*cfg.CellWidth + inset,
		StartZ: y*cfg.CellHeight + inset,
		EndX:   (x+1)*cfg.CellWidth - inset,
		EndZ:   (y+1)*cfg.CellHeight - inset,
	}
}

// InBounds 判断坐标是否在地板范围 [0,cols) × [0,rows) 内
func InBounds(c Coordinate, cfg config.GridConfig) bool {
	return c.X >= 0 && c.X < cfg.Cols && c.Y >= 0 && c.Y < cfg.Rows
}

// Bounds 返回地板的世界坐标边界
// 返回值：startX, startZ, endX, endZ
func Bounds(cfg config.GridConfig) (float64, float64, float64, float64) {
	w, d := cfg.WorldSize()
	return 0, 0, w, d
}

// WorldToCell 将世界坐标转换为地板格子坐标
// 参数:
//   - worldX, worldZ: 世界坐标（XZ 平面）
//   - cfg: 网格配置
//
// 返回:
//   - Coordinate: 格子坐标
//   - bool: 是否落在地板范围内
func WorldToCell(worldX, worldZ float64, cfg config.GridConfig) (Coordinate, bool) {
	_, _, endX, endZ := Bounds(cfg)
	if worldX < 0 || worldX >= endX || worldZ < 0 || worldZ >= endZ {
		return Coordinate{}, false
	}

	col := int(math.Floor(worldX / cfg.CellWidth))
	row := int(math.Floor(worldZ / cfg.CellHeight))

	// 边界检查（防止浮点数计算误差导致的越界）
	col = min(max(col, 0), cfg.Cols-1)
	row = min(max(row, 0), cfg.Rows-1)

	return Coordinate{X: col, Y: row}, true
}

// FloorCellUnder 返回实体坐标所在的地板格子坐标
// 由于锚点的半格偏移，实体 (x, y) 对应地板格子 (x-1, y-1)
func FloorCellUnder(entity Coordinate) Coordinate {
	return entity.Offset(-1, -1)
}
