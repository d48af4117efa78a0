// Package placement 计算机器人、球和墙在世界坐标中的摆放位置
//
// 所有计算都复用 grid.CellWorldAnchor，保证实体与地板格子对齐。
// 锚点为包围盒中心；地板平面位于 Y=0，实体位于 -Y 一侧（与地板法线同侧）。
package placement

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
)

// ErrValidation 表示墙段的两个端点在两个轴上都不同（不与坐标轴对齐）
var ErrValidation = errors.New("wall segment is not axis-aligned")

// DefaultWallHeight 墙的默认高度
const DefaultWallHeight = 1.0

// Placement 实体的世界坐标摆放结果
type Placement struct {
	Anchor  r3.Vec // 包围盒中心
	Extents r3.Vec // 包围盒尺寸（X 宽、Y 高、Z 深）
}

// Min 返回包围盒最小角
func (p Placement) Min() r3.Vec {
	return r3.Sub(p.Anchor, r3.Scale(0.5, absVec(p.Extents)))
}

// Max 返回包围盒最大角
func (p Placement) Max() r3.Vec {
	return r3.Add(p.Anchor, r3.Scale(0.5, absVec(p.Extents)))
}

func absVec(v r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Shape 点状实体的形状参数
type Shape struct {
	Extents r3.Vec // 尺寸；X/Z 为 0 时使用格子宽高
	// VerticalOffset 锚点 Y 坐标；nil 表示 -Extents.Y/2
	VerticalOffset *float64
}

// PlacePoint 计算点状实体的摆放位置
//
// 锚点的 XZ 来自 CellWorldAnchor，Y 向下偏移半个实体高度，
// 使实体"放在"地板平面上而不是穿过它。
//
// 参数：
//   - c: 实体的网格坐标（允许超出地板范围）
//   - cfg: 网格配置
//   - entityHeight: 实体垂直尺寸
func PlacePoint(c grid.Coordinate, cfg config.GridConfig, entityHeight float64) Placement {
	return PlaceEntity(c, cfg, Shape{Extents: r3.Vec{Y: entityHeight}})
}

// PlaceEntity 按形状参数计算点状实体的摆放位置
// VerticalOffset 可配置，nil 时为 -Extents.Y/2
func PlaceEntity(c grid.Coordinate, cfg config.GridConfig, s Shape) Placement {
	x, z := grid.CellWorldAnchor(c, cfg.CellWidth, cfg.CellHeight)

	extents := s.Extents
	if extents.X == 0 {
		extents.X = cfg.CellWidth
	}
	if extents.Z == 0 {
		extents.Z = cfg.CellHeight
	}

	y := -math.Abs(extents.Y) / 2
	if s.VerticalOffset != nil {
		y = *s.VerticalOffset
	}

	return Placement{
		Anchor:  r3.Vec{X: x, Y: y, Z: z},
		Extents: extents,
	}
}

// PlaceBot 机器人：占满一个格子的方块，高度 1
func PlaceBot(c grid.Coordinate, cfg config.GridConfig) Placement {
	return PlacePoint(c, cfg, 1.0)
}

// PlaceBall 球：直径为格子高度一半的球体
func PlaceBall(c grid.Coordinate, cfg config.GridConfig) Placement {
	d := cfg.CellHeight / 2
	return PlaceEntity(c, cfg, Shape{Extents: r3.Vec{X: d, Y: d, Z: d}})
}

// PlaceWallSegment 计算墙段的摆放位置（默认高度）
// 参见 PlaceWallSegmentWithHeight
func PlaceWallSegment(start, end grid.Coordinate, cfg config.GridConfig) (Placement, error) {
	return PlaceWallSegmentWithHeight(start, end, cfg, DefaultWallHeight)
}

// PlaceWallSegmentWithHeight 计算与坐标轴对齐的墙段的摆放位置
//
// 墙段覆盖 start 到 end 之间（含两端）的所有坐标，生成一个包围盒：
// 两端锚点之间的距离再加上一个格子的尺寸。端点顺序无关。
//
// 返回：
//   - Placement: 包围盒中心和尺寸
//   - error: 端点在两个轴上都不同时返回包装了 ErrValidation 的错误，不返回部分结果
func PlaceWallSegmentWithHeight(start, end grid.Coordinate, cfg config.GridConfig, height float64) (Placement, error) {
	if start.X != end.X && start.Y != end.Y {
		return Placement{}, fmt.Errorf("%w: %v -> %v", ErrValidation, start, end)
	}

	sx, sz := grid.CellWorldAnchor(start, cfg.CellWidth, cfg.CellHeight)
	ex, ez := grid.CellWorldAnchor(end, cfg.CellWidth, cfg.CellHeight)

	return Placement{
		Anchor: r3.Vec{
			X: (sx + ex) / 2,
			Y: -height / 2,
			Z: (sz + ez) / 2,
		},
		Extents: r3.Vec{
			X: math.Abs(ex-sx) + cfg.CellWidth,
			Y: height,
			Z: math.Abs(ez-sz) + cfg.CellHeight,
		},
	}, nil
}
