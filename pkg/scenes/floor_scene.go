package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
	"github.com/decker502/gridfloor/pkg/entities"
	"github.com/decker502/gridfloor/pkg/game"
	"github.com/decker502/gridfloor/pkg/mesh"
	"github.com/decker502/gridfloor/pkg/palette"
	"github.com/decker502/gridfloor/pkg/systems"
	"github.com/decker502/gridfloor/pkg/utils"
)

// 屏幕左上角的操作提示
const (
	helpText       = "Arrows/WASD pan  Q/E rotate  +/- zoom  T 2D/3D  R reset  P shimmer  Click repaint  Tab next scene  F3 stats"
	mobileHelpText = "Tap repaint  Three-finger tap next scene"
)

// FloorSceneOptions 创建地板场景的参数
type FloorSceneOptions struct {
	Name     string
	Config   *config.SceneConfig
	Settings *game.SettingsManager // 可为 nil：不恢复也不保存视角设置
	// Seed 非 0 时覆盖配置中的调色板种子
	Seed int64

	ScreenWidth  int
	ScreenHeight int
}

// FloorScene 网格地板场景
//
// 逻辑节拍（TickSystem）只修改地板颜色缓冲区，绘制时由 FloorRenderSystem 统一读取。
type FloorScene struct {
	name        string
	sceneConfig config.SceneConfig
	settings    *game.SettingsManager

	floor         *mesh.Floor
	entityManager *ecs.EntityManager

	cameraSystem       *systems.CameraSystem
	floorRenderSystem  *systems.FloorRenderSystem
	entityRenderSystem *systems.EntityRenderSystem
	tickSystem         *systems.TickSystem
	paintSystem        *systems.PaintSystem

	background   color.RGBA
	screenWidth  int
	screenHeight int
	showStats    bool
}

// NewFloorScene 按场景配置创建地板场景
//
// 返回：
//   - error: 网格配置非法（包装 config.ErrConfiguration）或颜色无法解析时返回错误
func NewFloorScene(opts FloorSceneOptions) (*FloorScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("scene %q: nil config", opts.Name)
	}
	sc := *opts.Config
	if opts.Seed != 0 {
		sc.Palette.Seed = opts.Seed
	}

	colorFn, err := palette.FromConfig(sc.Palette)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", opts.Name, err)
	}

	floor, err := mesh.NewFloor(sc.Grid, colorFn)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", opts.Name, err)
	}

	background, err := palette.ParseHex(sc.Background)
	if err != nil {
		return nil, fmt.Errorf("scene %q: background: %w", opts.Name, err)
	}

	em := ecs.NewEntityManager()
	if _, err := entities.PopulateScene(em, &sc); err != nil {
		return nil, fmt.Errorf("scene %q: %w", opts.Name, err)
	}

	s := &FloorScene{
		name:               opts.Name,
		sceneConfig:        sc,
		settings:           opts.Settings,
		floor:              floor,
		entityManager:      em,
		cameraSystem:       systems.NewCameraSystem(em, sc.Grid, opts.ScreenWidth, opts.ScreenHeight),
		floorRenderSystem:  systems.NewFloorRenderSystem(floor),
		entityRenderSystem: systems.NewEntityRenderSystem(em),
		tickSystem:         systems.NewTickSystem(sc.TickRate),
		paintSystem:        systems.NewPaintSystem(floor, paintSeed(sc.Palette.Seed)),
		background:         palette.ToRGBA(background),
		screenWidth:        opts.ScreenWidth,
		screenHeight:       opts.ScreenHeight,
	}
	s.tickSystem.AddHandler(s.paintSystem.OnTick)

	if opts.Settings != nil {
		vs := opts.Settings.GetSettings()
		s.cameraSystem.SetView(vs.Zoom, vs.Rotation, vs.ThreeD)
		s.paintSystem.SetShimmer(vs.Shimmer)
	}

	log.Printf("[FloorScene] %s ready: %d entities, tick rate %d", opts.Name, em.Count(), sc.TickRate)
	return s, nil
}

// paintSeed 绘制系统使用与调色板不同的随机序列
func paintSeed(paletteSeed int64) int64 {
	if paletteSeed == 0 {
		return 0
	}
	return paletteSeed + 1
}

// Name 返回场景名称
func (s *FloorScene) Name() string {
	return s.name
}

// Floor 返回场景的地板
func (s *FloorScene) Floor() *mesh.Floor {
	return s.floor
}

// Update 处理输入并推进逻辑节拍
func (s *FloorScene) Update(deltaTime float64) {
	s.cameraSystem.Update(deltaTime)
	s.paintSystem.Update(s.view())
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.showStats = !s.showStats
	}
	s.advance(deltaTime)
}

// advance 推进逻辑节拍，返回执行的节拍数
func (s *FloorScene) advance(deltaTime float64) int {
	return s.tickSystem.Update(deltaTime)
}

func (s *FloorScene) view() systems.View {
	return s.cameraSystem.View(s.screenWidth, s.screenHeight)
}

// Draw 绘制背景、地板和实体
func (s *FloorScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	v := s.view()
	s.floorRenderSystem.Draw(screen, v)
	s.entityRenderSystem.Draw(screen, v, s.cameraSystem.Camera().ThreeD)

	if utils.IsMobile() {
		ebitenutil.DebugPrint(screen, mobileHelpText)
	} else {
		ebitenutil.DebugPrint(screen, helpText)
	}
	if s.showStats {
		ebitenutil.DebugPrintAt(screen, s.statsText(), 0, 16)
	}
}

func (s *FloorScene) statsText() string {
	cam := s.cameraSystem.Camera()
	return fmt.Sprintf("scene %s  FPS %.0f  TPS %.0f\nticks %d (dropped %d)  repainted %d  color uploads %d\nzoom %.2f  rotation %.2f  3D %v  shimmer %v",
		s.name, ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.tickSystem.Ticks(), s.tickSystem.Dropped(), s.paintSystem.Painted(), s.floorRenderSystem.ColorUploads(),
		cam.Zoom, cam.Rotation, cam.ThreeD, s.paintSystem.Shimmer())
}

// SaveOnExit 保存视角设置
func (s *FloorScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	cam := s.cameraSystem.Camera()
	s.settings.SetView(cam.Zoom, cam.Rotation, cam.ThreeD)
	s.settings.SetShimmer(s.paintSystem.Shimmer())
	if err := s.settings.Save(); err != nil {
		log.Printf("[FloorScene] Failed to save settings: %v", err)
		return false
	}
	return true
}
