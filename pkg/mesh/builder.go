package mesh

import (
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
)

// floorNormal 地板法线：所有顶点统一指向 -Y
// 地板是单面平面，法线是固定常量，不从几何体计算
var floorNormal = [ComponentsPerVertex]float32{0, -1, 0}

// BuildTile 返回一个格子的 6 个顶点位置（18 个 float32）
//
// 两个三角形组成覆盖格子的矩形，顶点顺序固定（单面渲染依赖此绕序）：
//
//	 _________________________     endZ
//	|                      .  |
//	|                 .       |
//	| hypotenuse .            |
//	|       .                 |
//	|  .                      |
//	 _________________________     startZ
//	startX                    endX
//
//	三角形 1: (start,start) → (end,start) → (end,end)
//	三角形 2: (start,start) → (end,end)   → (start,end)
//
// 所有顶点 Y = 0。
//
// 返回：
//   - []float32: 18 个分量
//   - error: cfg 违反约束时返回包装了 config.ErrConfiguration 的错误
func BuildTile(c grid.Coordinate, cfg config.GridConfig) ([]float32, error) {
	q, err := grid.CellQuadCorners(c, cfg)
	if err != nil {
		return nil, err
	}
	return appendTilePositions(make([]float32, 0, FloatsPerTile), q), nil
}

func appendTilePositions(dst []float32, q grid.Quad) []float32 {
	sx, sz := float32(q.StartX), float32(q.StartZ)
	ex, ez := float32(q.EndX), float32(q.EndZ)
	return append(dst,
		sx, 0, sz,
		ex, 0, sz,
		ex, 0, ez,

		sx, 0, sz,
		ex, 0, ez,
		sx, 0, ez,
	)
}

// BuildNormals 返回一个格子的 6 个法线（全部为 (0,-1,0)）
func BuildNormals() []float32 {
	return appendTileNormals(make([]float32, 0, FloatsPerTile))
}

func appendTileNormals(dst []float32) []float32 {
	for i := 0; i < VerticesPerTile; i++ {
		dst = append(dst, floorNormal[0], floorNormal[1], floorNormal[2])
	}
	return dst
}

// BuildColors 返回一个格子的 6 个顶点颜色
// 格子的单一颜色复制到全部 6 个顶点（平面着色）
func BuildColors(c ColorRGB) []float32 {
	return appendTileColors(make([]float32, 0, FloatsPerTile), c)
}

func appendTileColors(dst []float32, c ColorRGB) []float32 {
	for i := 0; i < VerticesPerTile; i++ {
		dst = append(dst, c.R, c.G, c.B)
	}
	return dst
}

// writeTileColors 覆盖 dst 中一个格子的 18 个颜色分量（dst 长度必须为 FloatsPerTile）
func writeTileColors(dst []float32, c ColorRGB) {
	for i := 0; i < FloatsPerTile; i += ComponentsPerVertex {
		dst[i], dst[i+1], dst[i+2] = c.R, c.G, c.B
	}
}

// BuildFloor 一次性生成整个地板的网格缓冲区
//
// 按 tiles 的顺序依次拼接每个格子的输出；之后按索引更新颜色时必须使用同一顺序
// （NewFloorTiles 生成的顺序见 TileIndex）。
// 本函数不检查格子坐标是否在网格范围内，越界坐标同样生成几何体。
//
// 参数：
//   - tiles: 格子列表，可以为空（返回空缓冲区，不是错误）
//   - cfg: 网格配置
//
// 返回：
//   - *MeshBuffers: 三个缓冲区长度均为 18 * len(tiles)
//   - error: cfg 违反约束时返回包装了 config.ErrConfiguration 的错误，此时不返回任何缓冲区
func BuildFloor(tiles []FloorTile, cfg config.GridConfig) (*MeshBuffers, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(tiles) * FloatsPerTile
	m := &MeshBuffers{
		Positions: make([]float32, 0, n),
		Normals:   make([]float32, 0, n),
		Colors:    make([]float32, 0, n),
	}

	for _, tile := range tiles {
		m.Positions = appendTilePositions(m.Positions, grid.QuadCornersUnchecked(tile.Coord, cfg))
		m.Normals = appendTileNormals(m.Normals)
		m.Colors = appendTileColors(m.Colors, tile.Color)
	}

	return m, nil
}
