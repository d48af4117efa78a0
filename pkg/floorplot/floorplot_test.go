package floorplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/entities"
	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/placement"
)

// TestTileOutline 测试格子轮廓与四边形角点一致
func TestTileOutline(t *testing.T) {
	cfg := config.DefaultGridConfig()
	tiles := mesh.NewFloorTiles(cfg, nil)
	m, err := mesh.BuildFloor(tiles, cfg)
	if err != nil {
		t.Fatalf("BuildFloor() error: %v", err)
	}

	index := mesh.TileIndex(grid.Coordinate{X: 3, Y: 7}, cfg)
	q := grid.QuadCornersUnchecked(grid.Coordinate{X: 3, Y: 7}, cfg)
	got := TileOutline(m, index)

	want := [][2]float64{{q.StartX, q.StartZ}, {q.EndX, q.StartZ}, {q.EndX, q.EndZ}, {q.StartX, q.EndZ}}
	for i, w := range want {
		if math.Abs(got[i].X-w[0]) > 1e-5 || math.Abs(got[i].Y-w[1]) > 1e-5 {
			t.Errorf("outline[%d] = %+v, want %v", i, got[i], w)
		}
	}
}

// TestCircleOutline 测试球体轮廓半径
func TestCircleOutline(t *testing.T) {
	p := placement.Placement{Anchor: r3.Vec{X: 2, Z: 3}, Extents: r3.Vec{X: 1, Y: 1, Z: 1}}
	for _, pt := range CircleOutline(p) {
		if d := math.Hypot(pt.X-2, pt.Y-3); math.Abs(d-0.5) > 1e-9 {
			t.Fatalf("point %+v at distance %v, want 0.5", pt, d)
		}
	}
}

// TestRenderAndSave 测试完整场景导出为 PNG
func TestRenderAndSave(t *testing.T) {
	sc := config.DefaultSceneConfig()
	sc.Grid.Cols, sc.Grid.Rows = 6, 5
	sc.Walls = sc.Walls[:1]

	floor, err := mesh.NewFloor(sc.Grid, nil)
	if err != nil {
		t.Fatalf("NewFloor() error: %v", err)
	}
	em := ecs.NewEntityManager()
	if _, err := entities.PopulateScene(em, &sc); err != nil {
		t.Fatalf("PopulateScene() error: %v", err)
	}

	p, err := Render(floor, em, Options{Title: "test"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := filepath.Join(t.TempDir(), "floor.png")
	if err := Save(p, out, 4*vg.Inch, 4*vg.Inch); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("output file missing or empty: %v", err)
	}
}
