// verify_mesh 构建地板网格并检查全部不变式，输出 YAML 报告
//
// 用法：
//
//	go run ./cmd/verify_mesh
//	go run ./cmd/verify_mesh -config data/scenes/small.yaml -vertices 12
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/entities"
	"github.com/decker502/gridfloor/pkg/grid"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
)

// report 校验报告
type report struct {
	Config   string       `yaml:"config"`
	Grid     gridReport   `yaml:"grid"`
	Walls    int          `yaml:"walls"`
	Entities int          `yaml:"entities"`
	Passed   bool         `yaml:"passed"`
	Errors   []string     `yaml:"errors,omitempty"`
	Anchors  []anchorDump `yaml:"anchors,omitempty"`
	Vertices []vertexDump `yaml:"vertices,omitempty"`
}

type anchorDump struct {
	Entity int        `yaml:"entity"`
	Coord  string     `yaml:"coord"`
	Floor  string     `yaml:"floor"`
	Anchor [3]float64 `yaml:"anchor,flow"`
}

type gridReport struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	Tiles    int     `yaml:"tiles"`
	Vertices int     `yaml:"vertices"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Inset    float64 `yaml:"inset"`
}

type vertexDump struct {
	Tile     string     `yaml:"tile"`
	Position [3]float32 `yaml:"position,flow"`
	Normal   [3]float32 `yaml:"normal,flow"`
	Color    [3]float32 `yaml:"color,flow"`
}

func main() {
	configPath := flag.String("config", "data/scene.yaml", "场景配置文件路径")
	vertices := flag.Int("vertices", 6, "报告中输出的顶点数")
	flag.Parse()

	r, err := run(*configPath, *vertices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))

	if !r.Passed {
		os.Exit(1)
	}
}

func run(configPath string, vertices int) (*report, error) {
	sc, err := config.LoadSceneConfig(configPath)
	if err != nil {
		return nil, err
	}

	colorFn, err := palette.FromConfig(sc.Palette)
	if err != nil {
		return nil, err
	}
	floor, err := mesh.NewFloor(sc.Grid, colorFn)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	walls, err := entities.PopulateScene(em, sc)
	if err != nil {
		return nil, err
	}

	w, d := sc.Grid.WorldSize()
	r := &report{
		Config: configPath,
		Grid: gridReport{
			Cols:     sc.Grid.Cols,
			Rows:     sc.Grid.Rows,
			Tiles:    len(floor.Tiles),
			Vertices: floor.Mesh.VertexCount(),
			Width:    w,
			Depth:    d,
			Inset:    sc.Grid.Inset(),
		},
		Walls:    walls,
		Entities: em.Count(),
		Passed:   true,
	}

	if err := mesh.Verify(floor.Mesh, floor.Tiles, sc.Grid); err != nil {
		r.Passed = false
		r.Errors = append(r.Errors, err.Error())
	}

	for i := 0; i < vertices && i < floor.Mesh.VertexCount(); i++ {
		j := i * mesh.ComponentsPerVertex
		tile := floor.Tiles[i/mesh.VerticesPerTile].Coord
		r.Vertices = append(r.Vertices, vertexDump{
			Tile:     tile.String(),
			Position: [3]float32(floor.Mesh.Positions[j : j+3]),
			Normal:   [3]float32(floor.Mesh.Normals[j : j+3]),
			Color:    [3]float32(floor.Mesh.Colors[j : j+3]),
		})
	}

	// 点状实体的锚点必须落在 FloorCellUnder 对应的地板格子内
	for _, id := range ecs.GetEntitiesWith2[*components.GridPositionComponent, *components.PlacementComponent](em) {
		if ecs.HasComponent[*components.WallComponent](em, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.GridPositionComponent](em, id)
		pl, _ := ecs.GetComponent[*components.PlacementComponent](em, id)

		under := grid.FloorCellUnder(pos.Coord)
		a := pl.Placement.Anchor
		q := grid.QuadCornersUnchecked(under, sc.Grid)
		if !q.Contains(a.X, a.Z, 1e-9) {
			r.Passed = false
			r.Errors = append(r.Errors, fmt.Sprintf("entity %d at %v: anchor (%.3f, %.3f) outside floor cell %v",
				id, pos.Coord, a.X, a.Z, under))
		}
		r.Anchors = append(r.Anchors, anchorDump{
			Entity: int(id),
			Coord:  pos.Coord.String(),
			Floor:  under.String(),
			Anchor: [3]float64{a.X, a.Y, a.Z},
		})
	}

	return r, nil
}
