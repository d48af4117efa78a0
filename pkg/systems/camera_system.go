package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
)

const (
	// 镜头参数
	DefaultPitch     = 0.9  // 倾斜视角的俯仰角（弧度）
	CameraPanSpeed   = 8.0  // 平移速度（世界单位/秒，缩放为 1 时）
	CameraRotSpeed   = 1.5  // 旋转速度（弧度/秒）
	CameraZoomRate   = 2.0  // 按住缩放键时每秒的缩放倍数
	CameraWheelStep  = 1.1  // 每格滚轮的缩放倍数
	CameraMinZoom    = 0.25 // 最小缩放
	CameraMaxZoom    = 8.0  // 最大缩放
	cameraFitPadding = 0.9  // 初始视图留出的边距比例
)

// CameraInput 一帧内的镜头控制输入
type CameraInput struct {
	PanX, PanZ   float64 // 屏幕方向的平移（-1 ~ 1），PanZ 正方向为屏幕向下
	Rotate       float64 // 旋转方向（-1 ~ 1）
	Zoom         float64 // 按键缩放方向（-1 ~ 1）
	Wheel        float64 // 滚轮刻度
	ToggleThreeD bool    // 切换俯视/倾斜视角
	Reset        bool    // 回到地板中心
}

// ReadCameraInput 读取键盘和鼠标滚轮
//
// 方向键/WASD 平移，Q/E 旋转，=/- 缩放，T 切换视角，R 复位
func ReadCameraInput() CameraInput {
	var in CameraInput
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.PanX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.PanX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.PanZ--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.PanZ++
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Rotate--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Rotate++
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		in.Zoom++
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		in.Zoom--
	}
	_, in.Wheel = ebiten.Wheel()
	in.ToggleThreeD = inpututil.IsKeyJustPressed(ebiten.KeyT)
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	return in
}

// CameraSystem 管理观察地板的镜头
// 镜头状态保存在镜头实体的 CameraComponent 上
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	home          components.CameraComponent // 复位时恢复的状态
}

// NewCameraSystem 创建镜头系统并生成镜头实体
//
// 初始镜头对准地板中心，缩放为 1 时整个地板刚好放入屏幕。
func NewCameraSystem(em *ecs.EntityManager, cfg config.GridConfig, screenWidth, screenHeight int) *CameraSystem {
	cx, cz := cfg.Center()
	w, d := cfg.WorldSize()

	ppu := 1.0
	if w > 0 && d > 0 {
		ppu = math.Min(float64(screenWidth)/w, float64(screenHeight)/d) * cameraFitPadding
	}

	home := components.CameraComponent{
		CenterX:       cx,
		CenterZ:       cz,
		Zoom:          1.0,
		PixelsPerUnit: ppu,
		ThreeD:        true,
		Pitch:         DefaultPitch,
	}

	cs := &CameraSystem{
		entityManager: em,
		cameraEntity:  em.CreateEntity(),
		home:          home,
	}
	cam := home
	ecs.AddComponent(em, cs.cameraEntity, &cam)
	return cs
}

// Camera 返回镜头组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		// 镜头实体被意外删除时重建
		restored := cs.home
		cam = &restored
		ecs.AddComponent(cs.entityManager, cs.cameraEntity, cam)
	}
	return cam
}

// View 返回当前镜头对应的投影
func (cs *CameraSystem) View(screenWidth, screenHeight int) View {
	return NewView(cs.Camera(), screenWidth, screenHeight)
}

// Update 读取输入并更新镜头
func (cs *CameraSystem) Update(dt float64) {
	cs.Apply(ReadCameraInput(), dt)
}

// Apply 将一帧输入应用到镜头
func (cs *CameraSystem) Apply(in CameraInput, dt float64) {
	cam := cs.Camera()

	if in.Reset {
		threeD := cam.ThreeD
		*cam = cs.home
		cam.ThreeD = threeD
	}
	if in.ToggleThreeD {
		cam.ThreeD = !cam.ThreeD
	}

	cam.Rotation = normalizeAngle(cam.Rotation + in.Rotate*CameraRotSpeed*dt)

	zoom := cam.Zoom * math.Pow(CameraZoomRate, in.Zoom*dt) * math.Pow(CameraWheelStep, in.Wheel)
	cam.Zoom = clampZoom(zoom)

	if in.PanX != 0 || in.PanZ != 0 {
		// 屏幕方向的平移转换到世界方向（逆旋转）
		step := CameraPanSpeed / cam.Zoom * dt
		sin, cos := math.Sincos(cam.Rotation)
		cam.CenterX += (in.PanX*cos + in.PanZ*sin) * step
		cam.CenterZ += (-in.PanX*sin + in.PanZ*cos) * step
	}
}

// SetView 恢复保存的视角设置（缩放、旋转、视角模式）
func (cs *CameraSystem) SetView(zoom, rotation float64, threeD bool) {
	cam := cs.Camera()
	cam.Zoom = clampZoom(zoom)
	cam.Rotation = normalizeAngle(rotation)
	cam.ThreeD = threeD
}

func clampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom <= 0 {
		return 1.0
	}
	return math.Max(CameraMinZoom, math.Min(CameraMaxZoom, zoom))
}

// normalizeAngle 将角度规范到 [0, 2π)
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
