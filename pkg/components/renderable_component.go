package components

import "github.com/decker502/gridfloor/pkg/mesh"

// ShapeKind 实体的绘制形状
type ShapeKind int

const (
	// ShapeBox 长方体（墙、机器人）
	ShapeBox ShapeKind = iota
	// ShapeSphere 球体
	ShapeSphere
)

// String 返回形状名称，用于日志
func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// RenderableComponent 描述实体如何绘制
type RenderableComponent struct {
	Shape ShapeKind
	Color mesh.ColorRGB

	// Layer 绘制层级，数值小的先绘制
	Layer int
}
