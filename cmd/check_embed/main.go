// check_embed 校验 data/ 下的默认场景和所有场景预设能否被解析并构建地板
//
// 用法：
//
//	go run ./cmd/check_embed
//	go run ./cmd/check_embed -root mobile
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/embedded"
	"github.com/decker502/gridfloor/pkg/mesh"
)

func main() {
	root := flag.String("root", ".", "包含 data/ 目录的根路径")
	flag.Parse()

	embedded.Init(os.DirFS(*root))

	paths := []string{embedded.DefaultScenePath}
	presets, err := embedded.ScenePresets()
	if err != nil {
		fmt.Printf("❌ 列出场景预设失败: %v\n", err)
		os.Exit(1)
	}
	for _, name := range presets {
		paths = append(paths, embedded.ScenePresetPath(name))
	}

	failed := 0
	for _, p := range paths {
		if err := check(p); err != nil {
			fmt.Printf("❌ %s: %v\n", p, err)
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("❌ %d/%d 个场景文件无效\n", failed, len(paths))
		os.Exit(1)
	}
	fmt.Printf("✅ 所有场景文件有效（%d 个）\n", len(paths))
}

func check(p string) error {
	data, err := embedded.ReadFile(p)
	if err != nil {
		return err
	}

	sc, err := config.ParseSceneConfig(data, p)
	if err != nil {
		return err
	}

	floor, err := mesh.NewFloor(sc.Grid, nil)
	if err != nil {
		return err
	}
	if err := mesh.Verify(floor.Mesh, floor.Tiles, sc.Grid); err != nil {
		return err
	}

	fmt.Printf("✅ %s: %dx%d, %d 段墙, %d 字节, MD5 %x\n",
		p, sc.Grid.Cols, sc.Grid.Rows, len(sc.Walls), len(data), md5.Sum(data))
	return nil
}
