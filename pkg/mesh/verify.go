package mesh

import (
	"errors"
	"fmt"

	"github.com/decker502/gridfloor/pkg/config"
)

// maxVerifyErrors 最多报告的错误数，其余只计数
const maxVerifyErrors = 20

// Verify 检查地板网格的全部不变式
//
//   - 三个缓冲区长度一致且为整数个格子
//   - 法线全部为 (0,-1,0)
//   - 所有顶点位于 Y=0 平面
//   - 每个格子的 6 个顶点颜色等于格子颜色
//   - 每个格子的四边形面积为正且位于所属单元格内部
//
// 返回 nil 表示全部通过；否则返回 errors.Join 合并的错误
func Verify(m *MeshBuffers, tiles []FloorTile, cfg config.GridConfig) error {
	if err := m.Check(); err != nil {
		return err
	}
	if m.TileCount() != len(tiles) {
		return fmt.Errorf("mesh has %d tiles, tile list has %d", m.TileCount(), len(tiles))
	}

	var errs []error
	failed := 0
	report := func(err error) {
		failed++
		if len(errs) < maxVerifyErrors {
			errs = append(errs, err)
		}
	}

	const eps = 1e-5
	for i, tile := range tiles {
		base := i * FloatsPerTile
		minX, minZ := float32(1e30), float32(1e30)
		maxX, maxZ := float32(-1e30), float32(-1e30)

		for v := 0; v < VerticesPerTile; v++ {
			j := base + v*ComponentsPerVertex
			if m.Normals[j] != 0 || m.Normals[j+1] != -1 || m.Normals[j+2] != 0 {
				report(fmt.Errorf("tile %v vertex %d: normal (%v,%v,%v)", tile.Coord, v, m.Normals[j], m.Normals[j+1], m.Normals[j+2]))
			}
			if m.Positions[j+1] != 0 {
				report(fmt.Errorf("tile %v vertex %d: Y = %v, want 0", tile.Coord, v, m.Positions[j+1]))
			}
			if m.Colors[j] != tile.Color.R || m.Colors[j+1] != tile.Color.G || m.Colors[j+2] != tile.Color.B {
				report(fmt.Errorf("tile %v vertex %d: color (%v,%v,%v), want %+v", tile.Coord, v, m.Colors[j], m.Colors[j+1], m.Colors[j+2], tile.Color))
			}
			minX, maxX = min(minX, m.Positions[j]), max(maxX, m.Positions[j])
			minZ, maxZ = min(minZ, m.Positions[j+2]), max(maxZ, m.Positions[j+2])
		}

		if maxX <= minX || maxZ <= minZ {
			report(fmt.Errorf("tile %v: degenerate quad x[%v,%v] z[%v,%v]", tile.Coord, minX, maxX, minZ, maxZ))
			continue
		}

		cellX := float64(tile.Coord.X) * cfg.CellWidth
		cellZ := float64(tile.Coord.Y) * cfg.CellHeight
		if float64(minX) < cellX-eps || float64(maxX) > cellX+cfg.CellWidth+eps ||
			float64(minZ) < cellZ-eps || float64(maxZ) > cellZ+cfg.CellHeight+eps {
			report(fmt.Errorf("tile %v: quad x[%v,%v] z[%v,%v] leaves its cell", tile.Coord, minX, maxX, minZ, maxZ))
		}
	}

	if failed > len(errs) {
		errs = append(errs, fmt.Errorf("... and %d more", failed-len(errs)))
	}
	return errors.Join(errs...)
}
