// floorplot 将场景导出为俯视图图片，用于检查格子与实体的对齐
//
// 用法：
//
//	go run ./cmd/floorplot -config data/scene.yaml -out floor.png
//	go run ./cmd/floorplot -config data/scenes/noise.yaml -out noise.svg -seed 7
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gonum.org/v1/plot/vg"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/entities"
	"github.com/decker502/gridfloor/pkg/floorplot"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
)

func main() {
	configPath := flag.String("config", "data/scene.yaml", "场景配置文件路径")
	out := flag.String("out", "floor.png", "输出文件（扩展名决定格式：png/svg/pdf）")
	seed := flag.Int64("seed", 0, "调色板随机种子（0 表示使用配置中的种子）")
	size := flag.Float64("size", 10, "图片边长（英寸）")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(*configPath, *out, *seed, vg.Length(*size)*vg.Inch); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s\n", *out)
}

func run(configPath, out string, seed int64, size vg.Length) error {
	sc, err := config.LoadSceneConfig(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		sc.Palette.Seed = seed
	}

	colorFn, err := palette.FromConfig(sc.Palette)
	if err != nil {
		return err
	}
	floor, err := mesh.NewFloor(sc.Grid, colorFn)
	if err != nil {
		return err
	}

	em := ecs.NewEntityManager()
	if _, err := entities.PopulateScene(em, sc); err != nil {
		return err
	}

	background, err := palette.ParseHex(sc.Background)
	if err != nil {
		return err
	}

	p, err := floorplot.Render(floor, em, floorplot.Options{
		Title:      fmt.Sprintf("%s (%dx%d)", configPath, sc.Grid.Cols, sc.Grid.Rows),
		Background: palette.ToRGBA(background),
	})
	if err != nil {
		return err
	}
	return floorplot.Save(p, out, size, size)
}
