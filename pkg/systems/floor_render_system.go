package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gridfloor/pkg/mesh"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限
// 索引为 uint16，取不超过 65535 的 6 的倍数（每个格子 6 个顶点）
const maxBatchVertices = 6 * 10000

// FloorRenderSystem 将地板网格绘制到屏幕
//
// 位置缓冲区只在创建时读取一次；颜色缓冲区通过 ConsumeIfDirty 轮询，
// 只有逻辑节拍修改了颜色时才重新写入顶点颜色。
type FloorRenderSystem struct {
	floor *mesh.Floor

	vertices []ebiten.Vertex
	indices  []uint16

	lastView     View
	projected    bool
	colorUploads int
}

// NewFloorRenderSystem 创建地板渲染系统
func NewFloorRenderSystem(floor *mesh.Floor) *FloorRenderSystem {
	n := floor.Mesh.VertexCount()
	s := &FloorRenderSystem{
		floor:    floor,
		vertices: newFloorVertices(n),
		indices:  sequentialIndices(min(n, maxBatchVertices)),
	}

	// 初始颜色
	colors, _ := floor.Colors.ConsumeIfDirty()
	applyVertexColors(s.vertices, colors)
	s.colorUploads++

	log.Printf("[FloorRenderSystem] %d vertices in %d batch(es)", n, batchCount(n))
	return s
}

// SyncColors 检查颜色缓冲区，有变化时更新顶点颜色
// 返回本次是否发生了更新
func (s *FloorRenderSystem) SyncColors() bool {
	colors, changed := s.floor.Colors.ConsumeIfDirty()
	if !changed {
		return false
	}
	applyVertexColors(s.vertices, colors)
	s.colorUploads++
	return true
}

// ColorUploads 返回颜色写入顶点的次数（包括初始化）
func (s *FloorRenderSystem) ColorUploads() int {
	return s.colorUploads
}

// Project 按投影更新顶点的屏幕坐标，投影不变时跳过
func (s *FloorRenderSystem) Project(v View) {
	if s.projected && v.Equal(s.lastView) {
		return
	}
	projectFloorVertices(s.vertices, s.floor.Mesh.Positions, v)
	s.lastView = v
	s.projected = true
}

// Draw 绘制地板
func (s *FloorRenderSystem) Draw(screen *ebiten.Image, v View) {
	s.SyncColors()
	s.Project(v)

	src := whiteSource()
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true

	for start := 0; start < len(s.vertices); start += maxBatchVertices {
		end := min(start+maxBatchVertices, len(s.vertices))
		screen.DrawTriangles(s.vertices[start:end], s.indices[:end-start], src, op)
	}
}

// newFloorVertices 创建 n 个采样白色贴图的顶点
func newFloorVertices(n int) []ebiten.Vertex {
	vs := make([]ebiten.Vertex, n)
	for i := range vs {
		vs[i].SrcX = whiteSrcX
		vs[i].SrcY = whiteSrcY
		vs[i].ColorA = 1
	}
	return vs
}

// applyVertexColors 将 RGB 颜色缓冲区写入顶点
func applyVertexColors(vs []ebiten.Vertex, colors []float32) {
	for i := range vs {
		j := i * mesh.ComponentsPerVertex
		if j+2 >= len(colors) {
			return
		}
		vs[i].ColorR = colors[j]
		vs[i].ColorG = colors[j+1]
		vs[i].ColorB = colors[j+2]
	}
}

// projectFloorVertices 将位置缓冲区投影为屏幕坐标
func projectFloorVertices(vs []ebiten.Vertex, positions []float32, v View) {
	for i := range vs {
		j := i * mesh.ComponentsPerVertex
		if j+2 >= len(positions) {
			return
		}
		sx, sy := v.Project(float64(positions[j]), float64(positions[j+1]), float64(positions[j+2]))
		vs[i].DstX = float32(sx)
		vs[i].DstY = float32(sy)
	}
}

// sequentialIndices 返回 0..n-1 的索引（三角形顶点互不共享）
func sequentialIndices(n int) []uint16 {
	is := make([]uint16, n)
	for i := range is {
		is[i] = uint16(i)
	}
	return is
}

func batchCount(n int) int {
	return (n + maxBatchVertices - 1) / maxBatchVertices
}
