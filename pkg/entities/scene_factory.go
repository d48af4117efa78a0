package entities

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/palette"
	"github.com/decker502/gridfloor/pkg/placement"
)

// 绘制层级：墙最先，球最后
const (
	LayerWall = 0
	LayerBot  = 1
	LayerBall = 2
)

// ShadowAlpha 球体阴影透明度
const ShadowAlpha = 0.35

// coordOf 将配置坐标转换为网格坐标
func coordOf(ref config.CellRef) grid.Coordinate {
	return grid.Coordinate{X: ref.X, Y: ref.Y}
}

// shapeOf 由实体配置得到放置形状
func shapeOf(ec config.EntityConfig) placement.Shape {
	return placement.Shape{
		Extents:        r3.Vec{X: ec.Width, Y: ec.Height, Z: ec.Depth},
		VerticalOffset: ec.VerticalOffset,
	}
}

// NewBotEntity 创建机器人实体（长方体，放在所在格子上）
//
// 参数:
//   - em: 实体管理器
//   - ec: 机器人配置
//   - cfg: 网格配置
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 颜色无法解析时返回错误
func NewBotEntity(em *ecs.EntityManager, ec config.EntityConfig, cfg config.GridConfig) (ecs.EntityID, error) {
	return newPointEntity(em, components.KindBot, components.ShapeBox, LayerBot, ec, cfg)
}

// NewBallEntity 创建球实体，并在其下方附加阴影
func NewBallEntity(em *ecs.EntityManager, ec config.EntityConfig, cfg config.GridConfig) (ecs.EntityID, error) {
	id, err := newPointEntity(em, components.KindBall, components.ShapeSphere, LayerBall, ec, cfg)
	if err != nil {
		return 0, err
	}

	p, _ := ecs.GetComponent[*components.PlacementComponent](em, id)
	ecs.AddComponent(em, id, &components.ShadowComponent{
		Radius: p.Placement.Extents.X / 2,
		Alpha:  ShadowAlpha,
	})
	return id, nil
}

func newPointEntity(em *ecs.EntityManager, kind components.EntityKind, shape components.ShapeKind, layer int,
	ec config.EntityConfig, cfg config.GridConfig) (ecs.EntityID, error) {
	color, err := palette.ParseHex(ec.Color)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s entity: %w", kind, err)
	}

	coord := coordOf(ec.Coord)
	p := placement.PlaceEntity(coord, cfg, shapeOf(ec))

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TagComponent{Kind: kind})
	ecs.AddComponent(em, id, &components.GridPositionComponent{Coord: coord})
	ecs.AddComponent(em, id, &components.PlacementComponent{Placement: p})
	ecs.AddComponent(em, id, &components.RenderableComponent{Shape: shape, Color: color, Layer: layer})

	log.Printf("[Entities] Created %s at %v: anchor=(%.3f, %.3f, %.3f)", kind, coord, p.Anchor.X, p.Anchor.Y, p.Anchor.Z)
	return id, nil
}

// NewWallEntity 创建一段墙
//
// 参数:
//   - em: 实体管理器
//   - wc: 墙段配置（端点必须共享 X 或 Y）
//   - cfg: 网格配置
//   - height: 墙高
//
// 返回:
//   - error: 墙段不与坐标轴对齐时包装 placement.ErrValidation，此时不创建实体
func NewWallEntity(em *ecs.EntityManager, wc config.WallConfig, cfg config.GridConfig, height float64) (ecs.EntityID, error) {
	hex := wc.Color
	if hex == "" {
		hex = config.DefaultWallColor
	}
	color, err := palette.ParseHex(hex)
	if err != nil {
		return 0, fmt.Errorf("failed to create wall entity: %w", err)
	}

	start, end := coordOf(wc.Start), coordOf(wc.End)
	p, err := placement.PlaceWallSegmentWithHeight(start, end, cfg, height)
	if err != nil {
		return 0, fmt.Errorf("wall %v-%v: %w", start, end, err)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TagComponent{Kind: components.KindWall})
	ecs.AddComponent(em, id, &components.WallComponent{Start: start, End: end})
	ecs.AddComponent(em, id, &components.PlacementComponent{Placement: p})
	ecs.AddComponent(em, id, &components.RenderableComponent{Shape: components.ShapeBox, Color: color, Layer: LayerWall})
	return id, nil
}

// PopulateScene 按场景配置创建所有墙、机器人和球
//
// 不与坐标轴对齐的墙段只记录日志并跳过，其余实体照常创建。
// 返回成功创建的墙段数量。
func PopulateScene(em *ecs.EntityManager, sc *config.SceneConfig) (int, error) {
	walls := 0
	for i, wc := range sc.Walls {
		if _, err := NewWallEntity(em, wc, sc.Grid, sc.WallHeight); err != nil {
			log.Printf("[Entities] Skipping walls[%d]: %v", i, err)
			continue
		}
		walls++
	}

	if _, err := NewBotEntity(em, sc.Bot, sc.Grid); err != nil {
		return walls, err
	}
	if _, err := NewBallEntity(em, sc.Ball, sc.Grid); err != nil {
		return walls, err
	}

	log.Printf("[Entities] Scene populated: %d/%d walls, bot, ball", walls, len(sc.Walls))
	return walls, nil
}
