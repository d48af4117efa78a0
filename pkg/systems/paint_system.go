package systems

import (
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
	"github.com/decker502/gridfloor/pkg/utils"
)

// ShimmerTilesPerTick 闪烁模式下每个节拍重新上色的格子数
const ShimmerTilesPerTick = 3

// PaintSystem 在逻辑节拍中修改地板颜色
//
// 两种来源：闪烁模式每个节拍随机重涂若干格子；鼠标左键点击重涂光标下的格子。
// 所有修改都写入地板的颜色缓冲区，由 FloorRenderSystem 在下一帧统一读取。
type PaintSystem struct {
	floor   *mesh.Floor
	rng     *rand.Rand
	shimmer bool
	painted uint64
}

// NewPaintSystem 创建绘制系统
// seed 为 0 时按当前时间取种子
func NewPaintSystem(floor *mesh.Floor, seed int64) *PaintSystem {
	return &PaintSystem{
		floor: floor,
		rng:   palette.NewRand(seed),
	}
}

// SetShimmer 开关闪烁模式
func (s *PaintSystem) SetShimmer(enabled bool) {
	if s.shimmer != enabled {
		log.Printf("[PaintSystem] Shimmer: %v", enabled)
	}
	s.shimmer = enabled
}

// Shimmer 返回闪烁模式是否开启
func (s *PaintSystem) Shimmer() bool {
	return s.shimmer
}

// Painted 返回累计重涂的格子数
func (s *PaintSystem) Painted() uint64 {
	return s.painted
}

// OnTick 节拍回调：闪烁模式下随机重涂格子
func (s *PaintSystem) OnTick(tick uint64) {
	if !s.shimmer {
		return
	}
	n := s.floor.Colors.TileCount()
	if n == 0 {
		return
	}
	for i := 0; i < ShimmerTilesPerTick; i++ {
		index := s.rng.IntN(n)
		if err := s.floor.SetTileColor(index, palette.Pastel(s.rng)); err != nil {
			log.Printf("[PaintSystem] tick %d: %v", tick, err)
			continue
		}
		s.painted++
	}
}

// Update 处理输入：P 切换闪烁模式，点击或触摸重涂指针下的格子
func (s *PaintSystem) Update(v View) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.SetShimmer(!s.shimmer)
	}
	if pressed, x, y := utils.PointerJustPressed(); pressed {
		s.PaintAtScreen(float64(x), float64(y), v)
	}
}

// PaintAtScreen 重涂屏幕坐标下的地板格子
// 返回被重涂的格子；光标不在地板上时返回 false
func (s *PaintSystem) PaintAtScreen(sx, sy float64, v View) (grid.Coordinate, bool) {
	wx, wz, ok := v.Unproject(sx, sy)
	if !ok {
		return grid.Coordinate{}, false
	}
	cell, ok := grid.WorldToCell(wx, wz, s.floor.Config)
	if !ok {
		return grid.Coordinate{}, false
	}
	if err := s.floor.SetColorAt(cell, palette.Pastel(s.rng)); err != nil {
		log.Printf("[PaintSystem] paint %v: %v", cell, err)
		return grid.Coordinate{}, false
	}
	s.painted++
	log.Printf("[PaintSystem] Repainted tile %v", cell)
	return cell, true
}
