package systems

import (
	"math"
	"testing"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/entities"
	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/placement"
)

// TestBoxFacesTopDown 测试俯视时只绘制顶面且顶面与格子重合
func TestBoxFacesTopDown(t *testing.T) {
	cfg := config.DefaultGridConfig()
	_, cs := newTestCamera(t)
	cs.SetView(1, 0, false)
	v := cs.View(testScreenW, testScreenH)

	bot := placement.PlaceBot(grid.Coordinate{X: 5, Y: 5}, cfg)
	faces := boxFaces(bot, v, false)
	if len(faces) != 1 {
		t.Fatalf("len(faces) = %d, want 1", len(faces))
	}

	// 机器人顶面覆盖其下方的地板格子 (4,4)
	q := grid.QuadCornersUnchecked(grid.FloorCellUnder(grid.Coordinate{X: 5, Y: 5}), cfg)
	sx, sy := v.Project(q.StartX, 0, q.StartZ)
	ex, ey := v.Project(q.EndX, 0, q.EndZ)
	f := faces[0]
	if !(f.pts[0][0] <= sx && f.pts[0][1] <= sy && f.pts[2][0] >= ex && f.pts[2][1] >= ey) {
		t.Errorf("bot face %v does not cover floor cell (%v,%v)-(%v,%v)", f.pts, sx, sy, ex, ey)
	}
	if f.shade != 1 {
		t.Errorf("top face shade = %v, want 1", f.shade)
	}
}

// TestBoxFacesThreeD 测试倾斜视角下侧面先画、顶面最后
func TestBoxFacesThreeD(t *testing.T) {
	cfg := config.DefaultGridConfig()
	_, cs := newTestCamera(t)
	v := cs.View(testScreenW, testScreenH)

	faces := boxFaces(placement.PlaceBot(grid.Coordinate{X: 10, Y: 10}, cfg), v, true)
	if len(faces) != 5 {
		t.Fatalf("len(faces) = %d, want 5", len(faces))
	}
	if faces[4].shade != 1 {
		t.Errorf("last face should be the top face, shade = %v", faces[4].shade)
	}
	for i := 1; i < 4; i++ {
		if faces[i].depth() < faces[i-1].depth() {
			t.Errorf("side faces not sorted far to near at %d", i)
		}
	}

	// 顶面在屏幕上高于地面上的底边
	_, floorY := v.Project(10*cfg.CellWidth, 0, 10*cfg.CellHeight)
	if faces[4].depth() >= floorY {
		t.Errorf("top face depth %v not above floor %v", faces[4].depth(), floorY)
	}
}

// TestEntityRenderSystem_SortedItems 测试绘制顺序由远到近
func TestEntityRenderSystem_SortedItems(t *testing.T) {
	em, cs := newTestCamera(t)
	sc := config.DefaultSceneConfig()
	if _, err := entities.PopulateScene(em, &sc); err != nil {
		t.Fatalf("PopulateScene() error: %v", err)
	}

	s := NewEntityRenderSystem(em)
	items := s.sortedItems(cs.View(testScreenW, testScreenH))

	// 4 段墙 + 机器人 + 球（镜头实体没有可渲染组件）
	if len(items) != 6 {
		t.Fatalf("len(items) = %d, want 6", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].depth < items[i-1].depth {
			t.Errorf("items not sorted by depth at %d", i)
		}
	}

	var sawBall bool
	for _, it := range items {
		if it.renderable.Shape == components.ShapeSphere {
			sawBall = true
			if math.Abs(it.placement.Extents.X-sc.Grid.CellHeight/2) > 1e-12 {
				t.Errorf("ball extents = %v", it.placement.Extents)
			}
		}
	}
	if !sawBall {
		t.Error("ball missing from draw list")
	}
}
