package mesh

import (
	"fmt"
	"log"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/grid"
)

// Floor 地板的全部渲染状态
// 由 NewFloor 一次性创建，调用者拥有返回的实例（没有全局单例）
type Floor struct {
	Config config.GridConfig
	Tiles  []FloorTile
	Mesh   *MeshBuffers
	Colors *DynamicColorBuffer
}

// NewFloor 创建覆盖整个网格的地板
//
// 参数：
//   - cfg: 网格配置
//   - colorFn: 初始颜色生成函数，nil 表示全白
//
// 返回：
//   - *Floor: 包含格子列表、网格缓冲区和动态颜色缓冲区
//   - error: cfg 违反约束时返回包装了 config.ErrConfiguration 的错误
func NewFloor(cfg config.GridConfig, colorFn ColorFunc) (*Floor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiles := NewFloorTiles(cfg, colorFn)
	m, err := BuildFloor(tiles, cfg)
	if err != nil {
		return nil, err
	}

	colors, err := NewDynamicColorBuffer(m.Colors)
	if err != nil {
		return nil, fmt.Errorf("failed to create color buffer: %w", err)
	}

	log.Printf("[Floor] Built %dx%d floor: %d tiles, %d vertices", cfg.Cols, cfg.Rows, len(tiles), m.VertexCount())

	return &Floor{
		Config: cfg,
		Tiles:  tiles,
		Mesh:   m,
		Colors: colors,
	}, nil
}

// SetColorAt 修改指定坐标格子的颜色
// 同时更新格子记录和动态颜色缓冲区；坐标越界时返回包装了 ErrTileIndexOutOfRange 的错误
func (f *Floor) SetColorAt(c grid.Coordinate, color ColorRGB) error {
	index := TileIndex(c, f.Config)
	if index < 0 {
		return fmt.Errorf("%w: coordinate %v outside %dx%d grid", ErrTileIndexOutOfRange, c, f.Config.Cols, f.Config.Rows)
	}
	return f.SetTileColor(index, color)
}

// ColorAt 返回指定坐标格子的当前颜色
func (f *Floor) ColorAt(c grid.Coordinate) (ColorRGB, bool) {
	index := TileIndex(c, f.Config)
	if index < 0 {
		return ColorRGB{}, false
	}
	return f.Tiles[index].Color, true
}

// SetTileColor 按格子索引修改颜色，索引顺序与 Tiles 一致
func (f *Floor) SetTileColor(index int, color ColorRGB) error {
	if err := f.Colors.SetTileColor(index, color); err != nil {
		return err
	}
	f.Tiles[index].Color = color
	return nil
}
