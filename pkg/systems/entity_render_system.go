package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
	"github.com/decker502/gridfloor/pkg/placement"
)

// 侧面明暗系数（顶面为 1）
const (
	sideShadeNear = 0.78
	sideShadeFar  = 0.62
)

// screenQuad 投影到屏幕的四边形面
type screenQuad struct {
	pts   [4][2]float64
	shade float32
}

// depth 返回面在屏幕上的平均纵坐标，越小越远
func (q screenQuad) depth() float64 {
	return (q.pts[0][1] + q.pts[1][1] + q.pts[2][1] + q.pts[3][1]) / 4
}

// EntityRenderSystem 绘制墙、机器人和球
type EntityRenderSystem struct {
	entityManager *ecs.EntityManager

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEntityRenderSystem 创建实体渲染系统
func NewEntityRenderSystem(em *ecs.EntityManager) *EntityRenderSystem {
	return &EntityRenderSystem{
		entityManager: em,
		vertices:      make([]ebiten.Vertex, 0, 256),
		indices:       make([]uint16, 0, 384),
	}
}

// drawItem 一个待绘制的实体
type drawItem struct {
	id         ecs.EntityID
	placement  placement.Placement
	renderable *components.RenderableComponent
	depth      float64
}

// sortedItems 按绘制顺序返回实体：远处先画，同深度按层级
func (s *EntityRenderSystem) sortedItems(v View) []drawItem {
	ids := ecs.GetEntitiesWith2[*components.PlacementComponent, *components.RenderableComponent](s.entityManager)
	items := make([]drawItem, 0, len(ids))
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.PlacementComponent](s.entityManager, id)
		r, _ := ecs.GetComponent[*components.RenderableComponent](s.entityManager, id)
		_, sy := v.Project(p.Placement.Anchor.X, 0, p.Placement.Anchor.Z)
		items = append(items, drawItem{id: id, placement: p.Placement, renderable: r, depth: sy})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth < items[j].depth
		}
		return items[i].renderable.Layer < items[j].renderable.Layer
	})
	return items
}

// Draw 绘制所有可渲染实体
func (s *EntityRenderSystem) Draw(screen *ebiten.Image, v View, threeD bool) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, item := range s.sortedItems(v) {
		switch item.renderable.Shape {
		case components.ShapeBox:
			for _, q := range boxFaces(item.placement, v, threeD) {
				s.appendQuad(q, item.renderable.Color)
			}
		case components.ShapeSphere:
			// 圆形由 vector 绘制，先提交已累积的三角形以保持顺序
			s.flush(screen)
			s.drawSphere(screen, item, v)
		}
	}
	s.flush(screen)
}

func (s *EntityRenderSystem) drawSphere(screen *ebiten.Image, item drawItem, v View) {
	p := item.placement
	if shadow, ok := ecs.GetComponent[*components.ShadowComponent](s.entityManager, item.id); ok {
		sx, sy := v.Project(p.Anchor.X, 0, p.Anchor.Z)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(shadow.Radius*v.Scale()),
			color.RGBA{A: uint8(shadow.Alpha * 255)}, true)
	}

	sx, sy := v.Project(p.Anchor.X, p.Anchor.Y, p.Anchor.Z)
	r := float32(p.Extents.X / 2 * v.Scale())
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, palette.ToRGBA(item.renderable.Color), true)
	// 高光
	vector.DrawFilledCircle(screen, float32(sx)-r*0.35, float32(sy)-r*0.35, r*0.3, color.RGBA{R: 255, G: 255, B: 255, A: 90}, true)
}

// appendQuad 将四边形拆成两个三角形加入批次
func (s *EntityRenderSystem) appendQuad(q screenQuad, c mesh.ColorRGB) {
	if len(s.vertices)+4 > maxBatchVertices {
		return
	}
	base := uint16(len(s.vertices))
	for _, p := range q.pts {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   whiteSrcX,
			SrcY:   whiteSrcY,
			ColorR: c.R * q.shade,
			ColorG: c.G * q.shade,
			ColorB: c.B * q.shade,
			ColorA: 1,
		})
	}
	s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
}

func (s *EntityRenderSystem) flush(screen *ebiten.Image) {
	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, whiteSource(), op)
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// boxFaces 返回长方体可见的面，按绘制顺序排列
//
// 俯视时只有朝向观察者的顶面（Y 最小的一面）。
// 倾斜视角下先画四个侧面（远的先画），最后画顶面。
func boxFaces(p placement.Placement, v View, threeD bool) []screenQuad {
	lo, hi := p.Min(), p.Max()
	top := lo.Y

	proj := func(x, y, z float64) [2]float64 {
		sx, sy := v.Project(x, y, z)
		return [2]float64{sx, sy}
	}

	topFace := screenQuad{
		pts: [4][2]float64{
			proj(lo.X, top, lo.Z),
			proj(hi.X, top, lo.Z),
			proj(hi.X, top, hi.Z),
			proj(lo.X, top, hi.Z),
		},
		shade: 1,
	}
	if !threeD {
		return []screenQuad{topFace}
	}

	base := hi.Y
	corners := [4][2]float64{{lo.X, lo.Z}, {hi.X, lo.Z}, {hi.X, hi.Z}, {lo.X, hi.Z}}
	sides := make([]screenQuad, 0, 4)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		sides = append(sides, screenQuad{
			pts: [4][2]float64{
				proj(a[0], base, a[1]),
				proj(b[0], base, b[1]),
				proj(b[0], top, b[1]),
				proj(a[0], top, a[1]),
			},
		})
	}
	sort.SliceStable(sides, func(i, j int) bool { return sides[i].depth() < sides[j].depth() })
	for i := range sides {
		if i < 2 {
			sides[i].shade = sideShadeFar
		} else {
			sides[i].shade = sideShadeNear
		}
	}

	return append(sides, topFace)
}
