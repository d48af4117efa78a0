package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gridfloor/pkg/app"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "场景配置文件路径（默认使用内置 data/scene.yaml）")
	scene := flag.String("scene", "", "内置场景预设名（data/scenes/<name>.yaml）")
	seed := flag.Int64("seed", 0, "调色板随机种子（0 表示使用配置中的种子）")
	listScenes := flag.Bool("list-scenes", false, "列出内置场景预设后退出")
	flag.Parse()

	embedded.Init(dataFS)

	if *listScenes {
		names, err := embedded.ScenePresets()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(app.DefaultSceneName)
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Scene:      *scene,
		Seed:       *seed,
	})
	if err != nil {
		// 日志可能已被静默，错误直接输出到 stderr
		if errors.Is(err, config.ErrConfiguration) {
			fmt.Fprintf(os.Stderr, "Invalid grid configuration: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		}
		os.Exit(1)
	}

	window := gameApp.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.SaveOnExit()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
