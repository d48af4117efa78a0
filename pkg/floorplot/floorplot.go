// Package floorplot 将地板和实体导出为静态图片（俯视图）
//
// 每个格子画成一个填充多边形，墙和机器人画成包围盒的投影，球画成圆。
// Y 轴取反，使图片方向与预览窗口的俯视图一致（Z 向下增长）。
package floorplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
	"github.com/decker502/gridfloor/pkg/placement"
)

// circleSegments 球体轮廓的分段数
const circleSegments = 24

// Options 绘图参数
type Options struct {
	Title      string
	Background color.Color // nil 表示白色
}

// Render 生成地板和实体的俯视图
func Render(floor *mesh.Floor, em *ecs.EntityManager, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Z"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	if opts.Background != nil {
		p.BackgroundColor = opts.Background
	}

	for i, tile := range floor.Tiles {
		poly, err := plotter.NewPolygon(TileOutline(floor.Mesh, i))
		if err != nil {
			return nil, fmt.Errorf("tile %v: %w", tile.Coord, err)
		}
		poly.Color = palette.ToRGBA(tile.Color)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	ids := ecs.GetEntitiesWith2[*components.PlacementComponent, *components.RenderableComponent](em)
	for _, id := range ids {
		pc, _ := ecs.GetComponent[*components.PlacementComponent](em, id)
		rc, _ := ecs.GetComponent[*components.RenderableComponent](em, id)

		var outline plotter.XYs
		switch rc.Shape {
		case components.ShapeSphere:
			outline = CircleOutline(pc.Placement)
		default:
			outline = BoxOutline(pc.Placement)
		}

		poly, err := plotter.NewPolygon(outline)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", id, err)
		}
		poly.Color = palette.ToRGBA(rc.Color)
		poly.LineStyle.Width = vg.Points(0.5)
		poly.LineStyle.Color = color.Black
		p.Add(poly)
	}

	return p, nil
}

// Save 按扩展名（.png/.svg/.pdf 等）保存图片
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// TileOutline 返回第 index 个格子的四边形轮廓
// 取两个三角形中的 s,s → e,s → e,e → s,e 四个顶点
func TileOutline(m *mesh.MeshBuffers, index int) plotter.XYs {
	base := index * mesh.FloatsPerTile
	vertex := func(v int) plotter.XY {
		j := base + v*mesh.ComponentsPerVertex
		return plotter.XY{X: float64(m.Positions[j]), Y: float64(m.Positions[j+2])}
	}
	// 第一个三角形 (s,s)(e,s)(e,e)，第二个三角形的最后一个顶点 (s,e)
	return plotter.XYs{vertex(0), vertex(1), vertex(2), vertex(5)}
}

// BoxOutline 返回包围盒在 XZ 平面上的投影
func BoxOutline(p placement.Placement) plotter.XYs {
	lo, hi := p.Min(), p.Max()
	return plotter.XYs{
		{X: lo.X, Y: lo.Z},
		{X: hi.X, Y: lo.Z},
		{X: hi.X, Y: hi.Z},
		{X: lo.X, Y: hi.Z},
	}
}

// CircleOutline 返回球体在 XZ 平面上的圆形轮廓
func CircleOutline(p placement.Placement) plotter.XYs {
	r := math.Abs(p.Extents.X) / 2
	pts := make(plotter.XYs, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: p.Anchor.X + r*math.Cos(a), Y: p.Anchor.Z + r*math.Sin(a)}
	}
	return pts
}
