// Package mesh 生成地板的扁平渲染缓冲区
//
// 整个地板在初始化时一次性合成为三个并行的 float32 数组（位置、法线、颜色），
// 每个格子 2 个三角形、6 个顶点、每个顶点 3 个分量，可以用一次绘制调用提交。
// 之后只有颜色缓冲区会变化，通过 DynamicColorBuffer 按格子局部更新。
package mesh

import (
	"fmt"

	"github.com/decker502/gridfloor/pkg/grid"
)

const (
	// VerticesPerTile 每个格子的顶点数（2 个三角形 × 3 个顶点）
	VerticesPerTile = 6

	// ComponentsPerVertex 每个顶点的分量数（x, y, z 或 r, g, b）
	ComponentsPerVertex = 3

	// FloatsPerTile 每个格子在一个缓冲区中占用的 float32 数量
	FloatsPerTile = VerticesPerTile * ComponentsPerVertex
)

// ColorRGB 颜色，三个通道取值范围 [0, 1]
type ColorRGB struct {
	R, G, B float32
}

// FloorTile 单个地板格子
// 坐标在创建后不变，颜色可变
type FloorTile struct {
	Coord grid.Coordinate
	Color ColorRGB
}

// MeshBuffers 地板网格的三个并行扁平缓冲区
// 三个缓冲区长度相同，按格子顺序、再按格子内顶点顺序排列
type MeshBuffers struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
}

// VertexCount 返回顶点数（每个缓冲区的长度 / 3）
func (m *MeshBuffers) VertexCount() int {
	return len(m.Positions) / ComponentsPerVertex
}

// TileCount 返回缓冲区包含的格子数
func (m *MeshBuffers) TileCount() int {
	return len(m.Positions) / FloatsPerTile
}

// Check 检查三个缓冲区是否对齐
func (m *MeshBuffers) Check() error {
	p, n, c := len(m.Positions), len(m.Normals), len(m.Colors)
	if p != n || p != c {
		return fmt.Errorf("mesh buffers misaligned: positions=%d normals=%d colors=%d", p, n, c)
	}
	if p%FloatsPerTile != 0 {
		return fmt.Errorf("mesh buffer length %d is not a multiple of %d", p, FloatsPerTile)
	}
	return nil
}
