package config

import (
	"errors"
	"fmt"
	"math"
)

// 地板网格配置
// 所有长度使用"世界单位"（与渲染器的世界坐标系一致）
// 默认值：30x30 个格子，每格 0.761 x 0.561

const (
	// DefaultCellWidth 是每个格子的宽度（世界单位，X 轴方向）
	DefaultCellWidth = 0.761

	// DefaultCellHeight 是每个格子的高度（世界单位，Z 轴方向）
	DefaultCellHeight = 0.561

	// DefaultGridColumns 是地板的列数
	DefaultGridColumns = 30

	// DefaultGridRows 是地板的行数
	DefaultGridRows = 30

	// DefaultBorderThickness 是格子边框厚度
	DefaultBorderThickness = 0.01

	// DefaultGapSize 是格子之间的间隙
	// 注意：间隙与边框厚度叠加使用（见 GridConfig.Inset）
	DefaultGapSize = 0.01
)

// MaxTileCount 是网格允许的最大格子数
// 每个格子在每个缓冲区中占 18 个 float32，上限约为每个缓冲区 72MB
const MaxTileCount = 1 << 20

// ErrConfiguration 表示网格配置违反了"格子内部面积为正"的约束
// 这是启动阶段的致命错误，调用者不应尝试修正或重试
var ErrConfiguration = errors.New("invalid grid configuration")

// GridConfig 地板网格配置
// 进程级常量：启动时加载一次，之后不再修改
type GridConfig struct {
	CellWidth       float64 `yaml:"cellWidth"`       // 格子宽度（X 轴）
	CellHeight      float64 `yaml:"cellHeight"`      // 格子高度（Z 轴）
	Cols            int     `yaml:"cols"`            // 列数
	Rows            int     `yaml:"rows"`            // 行数
	BorderThickness float64 `yaml:"borderThickness"` // 边框厚度
	GapSize         float64 `yaml:"gapSize"`         // 间隙大小
}

// DefaultGridConfig 返回默认场景使用的网格配置
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellWidth:       DefaultCellWidth,
		CellHeight:      DefaultCellHeight,
		Cols:            DefaultGridColumns,
		Rows:            DefaultGridRows,
		BorderThickness: DefaultBorderThickness,
		GapSize:         DefaultGapSize,
	}
}

// Inset 返回格子四边的内缩量
// 间隙和边框厚度是叠加的：同一个值既作为外侧间隙，又作为"额外"边框
func (c GridConfig) Inset() float64 {
	return c.GapSize + c.BorderThickness
}

// TileCount 返回网格中格子的总数
func (c GridConfig) TileCount() int {
	return c.Cols * c.Rows
}

// Validate 检查配置是否满足约束
//
// 约束：
//   - 所有长度都是有限值（拒绝 NaN 和 ±Inf）
//   - CellWidth、CellHeight > 0
//   - Cols、Rows > 0，且 Cols*Rows <= MaxTileCount
//   - BorderThickness、GapSize >= 0
//   - 2*(GapSize+BorderThickness) < min(CellWidth, CellHeight)
//
// 返回：
//   - error: 违反约束时返回包装了 ErrConfiguration 的错误，不做任何修正
func (c GridConfig) Validate() error {
	for _, v := range []float64{c.CellWidth, c.CellHeight, c.BorderThickness, c.GapSize} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: lengths must be finite, got cell %vx%v border %v gap %v",
				ErrConfiguration, c.CellWidth, c.CellHeight, c.BorderThickness, c.GapSize)
		}
	}
	if !(c.CellWidth > 0) || !(c.CellHeight > 0) {
		return fmt.Errorf("%w: cell size must be positive, got %vx%v", ErrConfiguration, c.CellWidth, c.CellHeight)
	}
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: grid must have at least one cell, got %dx%d", ErrConfiguration, c.Cols, c.Rows)
	}
	// 先除后比较，避免 Cols*Rows 溢出
	if c.Cols > MaxTileCount/c.Rows {
		return fmt.Errorf("%w: %dx%d grid exceeds %d tiles", ErrConfiguration, c.Cols, c.Rows, MaxTileCount)
	}
	if !(c.BorderThickness >= 0) || !(c.GapSize >= 0) {
		return fmt.Errorf("%w: border (%v) and gap (%v) must be non-negative", ErrConfiguration, c.BorderThickness, c.GapSize)
	}
	if 2*c.Inset() >= math.Min(c.CellWidth, c.CellHeight) {
		return fmt.Errorf("%w: inset %v leaves no drawable interior in %vx%v cell",
			ErrConfiguration, c.Inset(), c.CellWidth, c.CellHeight)
	}
	if w, d := c.WorldSize(); math.IsInf(w, 0) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: world size %vx%v overflows", ErrConfiguration, w, d)
	}
	return nil
}

// WorldSize 返回整个网格的世界尺寸（宽、深）
func (c GridConfig) WorldSize() (width, depth float64) {
	return float64(c.Cols) * c.CellWidth, float64(c.Rows) * c.CellHeight
}

// Center 返回网格中心的世界坐标
// 摄像机复位时使用此位置
func (c GridConfig) Center() (x, z float64) {
	w, d := c.WorldSize()
	return w / 2, d / 2
}
