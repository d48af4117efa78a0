// Package app 提供预览程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载场景配置、打开设置存储、
// 创建场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/embedded"
	"github.com/decker502/gridfloor/pkg/game"
	"github.com/decker502/gridfloor/pkg/scenes"
	"github.com/decker502/gridfloor/pkg/utils"
)

// AppName 设置存储使用的应用名
const AppName = "gridfloor"

// DefaultSceneName 默认场景（data/scene.yaml 或 --config 指定的文件）
const DefaultSceneName = "default"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空则使用内置默认场景
	ConfigPath string
	// Scene 内置场景预设名（data/scenes/<name>.yaml），与 ConfigPath 互斥
	Scene string
	// Seed 非 0 时覆盖调色板随机种子
	Seed int64
}

// App 是预览程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	sceneNames   []string
	window       config.WindowConfig
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 网格配置非法时返回的错误包装 config.ErrConfiguration。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.ConfigPath != "" && cfg.Scene != "" {
		return nil, errors.New("--config and --scene cannot be used together")
	}

	initialName := DefaultSceneName
	if cfg.Scene != "" {
		initialName = cfg.Scene
	}

	// 先加载初始场景配置，确定窗口尺寸
	initial, err := LoadScene(initialName, cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 设置存储不可用时进入降级模式（仅内存设置）
	storage, err := game.OpenStorage(AppName)
	if err != nil {
		log.Printf("[App] %v (settings will not persist)", err)
	}
	settings := game.NewSettingsManager(storage)

	presets, err := embedded.ScenePresets()
	if err != nil {
		log.Printf("[App] Failed to list scene presets: %v", err)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		sceneNames:   append([]string{DefaultSceneName}, presets...),
		window:       initial.Window,
		verbose:      cfg.Verbose,
	}

	a.sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		sc := initial
		if name != initialName {
			loaded, err := LoadScene(name, cfg.ConfigPath)
			if err != nil {
				return nil, err
			}
			sc = loaded
		}
		return scenes.NewFloorScene(scenes.FloorSceneOptions{
			Name:         name,
			Config:       sc,
			Settings:     settings,
			Seed:         cfg.Seed,
			ScreenWidth:  a.window.Width,
			ScreenHeight: a.window.Height,
		})
	})

	if err := a.sceneManager.LoadScene(initialName); err != nil {
		return nil, err
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started with scene %q (%d scenes available)", initialName, len(a.sceneNames))
	return a, nil
}

// LoadScene 加载场景配置
//
//   - name 为 DefaultSceneName 时：path 非空则读取该文件，否则读取内置 data/scene.yaml
//   - 其他名称：读取内置预设 data/scenes/<name>.yaml
func LoadScene(name, path string) (*config.SceneConfig, error) {
	if name == DefaultSceneName && path != "" {
		return config.LoadSceneConfig(path)
	}

	resource := embedded.DefaultScenePath
	if name != DefaultSceneName {
		resource = embedded.ScenePresetPath(name)
	}

	data, err := embedded.ReadFile(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %q: %w", name, err)
	}
	return config.ParseSceneConfig(data, resource)
}

// nextSceneName 返回场景列表中 current 的下一个名称（循环）
func nextSceneName(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}

	// Tab（移动端三指触摸）切换到下一个场景
	cycle := inpututil.IsKeyJustPressed(ebiten.KeyTab) || (utils.IsMobile() && utils.MultiTouchJustStarted(3))
	if cycle && len(a.sceneNames) > 1 {
		next := nextSceneName(a.sceneNames, a.sceneManager.CurrentName())
		if err := a.sceneManager.LoadScene(next); err != nil {
			log.Printf("[App] %v", err)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.window.Width, a.window.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.window
}

// SaveOnExit 保存当前场景状态
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveCurrent()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
