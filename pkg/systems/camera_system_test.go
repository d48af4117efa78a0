package systems

import (
	"math"
	"testing"

	"github.com/decker502/gridfloor/pkg/components"
	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/ecs"
)

const testScreenW, testScreenH = 1200, 850

func newTestCamera(t *testing.T) (*ecs.EntityManager, *CameraSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	return em, NewCameraSystem(em, config.DefaultGridConfig(), testScreenW, testScreenH)
}

// TestCameraSystem_NewCameraSystem 测试镜头系统的创建
func TestCameraSystem_NewCameraSystem(t *testing.T) {
	em, cs := newTestCamera(t)

	cam, ok := ecs.GetComponent[*components.CameraComponent](em, cs.cameraEntity)
	if !ok {
		t.Fatal("CameraComponent not added to camera entity")
	}

	cx, cz := config.DefaultGridConfig().Center()
	if cam.CenterX != cx || cam.CenterZ != cz {
		t.Errorf("center = (%v, %v), want (%v, %v)", cam.CenterX, cam.CenterZ, cx, cz)
	}
	if cam.Zoom != 1 || !cam.ThreeD || cam.Pitch != DefaultPitch {
		t.Errorf("unexpected defaults: %+v", cam)
	}
}

// TestCameraSystem_FloorFitsScreen 测试初始视图下地板四角都在屏幕内
func TestCameraSystem_FloorFitsScreen(t *testing.T) {
	_, cs := newTestCamera(t)
	cs.SetView(1, 0, false)
	v := cs.View(testScreenW, testScreenH)

	w, d := config.DefaultGridConfig().WorldSize()
	for _, corner := range [][2]float64{{0, 0}, {w, 0}, {0, d}, {w, d}} {
		sx, sy := v.Project(corner[0], 0, corner[1])
		if sx < 0 || sx > testScreenW || sy < 0 || sy > testScreenH {
			t.Errorf("corner %v projected off-screen to (%.1f, %.1f)", corner, sx, sy)
		}
	}

	// 地板中心投影到屏幕中心
	cx, cz := config.DefaultGridConfig().Center()
	sx, sy := v.Project(cx, 0, cz)
	if math.Abs(sx-testScreenW/2) > 1e-6 || math.Abs(sy-testScreenH/2) > 1e-6 {
		t.Errorf("center projected to (%v, %v)", sx, sy)
	}
}

// TestCameraSystem_ProjectUnproject 测试反投影还原地板坐标
func TestCameraSystem_ProjectUnproject(t *testing.T) {
	_, cs := newTestCamera(t)
	cs.SetView(1.7, 0.6, true)
	v := cs.View(testScreenW, testScreenH)

	for _, p := range [][2]float64{{0, 0}, {3.3, 7.1}, {22.8, 16.8}, {-2, 40}} {
		sx, sy := v.Project(p[0], 0, p[1])
		x, z, ok := v.Unproject(sx, sy)
		if !ok {
			t.Fatal("Unproject() failed")
		}
		if math.Abs(x-p[0]) > 1e-6 || math.Abs(z-p[1]) > 1e-6 {
			t.Errorf("Unproject(Project(%v)) = (%v, %v)", p, x, z)
		}
	}
}

// TestCameraSystem_HeightVisibleOnlyInThreeD 测试俯视时高度不影响投影
func TestCameraSystem_HeightVisibleOnlyInThreeD(t *testing.T) {
	_, cs := newTestCamera(t)

	cs.SetView(1, 0, false)
	v := cs.View(testScreenW, testScreenH)
	_, floorY := v.Project(5, 0, 5)
	_, topY := v.Project(5, -1, 5)
	if floorY != topY {
		t.Errorf("top-down: height changed screen Y (%v vs %v)", floorY, topY)
	}

	cs.SetView(1, 0, true)
	v = cs.View(testScreenW, testScreenH)
	_, floorY = v.Project(5, 0, 5)
	_, topY = v.Project(5, -1, 5)
	if topY >= floorY {
		t.Errorf("3D: entity top (%v) should be above floor (%v) on screen", topY, floorY)
	}
}

// TestCameraSystem_Apply 测试输入控制
func TestCameraSystem_Apply(t *testing.T) {
	tests := []struct {
		name  string
		in    CameraInput
		check func(t *testing.T, before, after components.CameraComponent)
	}{
		{
			name: "切换视角",
			in:   CameraInput{ToggleThreeD: true},
			check: func(t *testing.T, before, after components.CameraComponent) {
				if after.ThreeD == before.ThreeD {
					t.Error("ThreeD not toggled")
				}
			},
		},
		{
			name: "旋转",
			in:   CameraInput{Rotate: 1},
			check: func(t *testing.T, before, after components.CameraComponent) {
				if math.Abs(after.Rotation-CameraRotSpeed*0.5) > 1e-9 {
					t.Errorf("Rotation = %v, want %v", after.Rotation, CameraRotSpeed*0.5)
				}
			},
		},
		{
			name: "滚轮缩放受上限约束",
			in:   CameraInput{Wheel: 100},
			check: func(t *testing.T, before, after components.CameraComponent) {
				if after.Zoom != CameraMaxZoom {
					t.Errorf("Zoom = %v, want %v", after.Zoom, CameraMaxZoom)
				}
			},
		},
		{
			name: "向右平移",
			in:   CameraInput{PanX: 1},
			check: func(t *testing.T, before, after components.CameraComponent) {
				if after.CenterX <= before.CenterX || after.CenterZ != before.CenterZ {
					t.Errorf("center moved from (%v,%v) to (%v,%v)", before.CenterX, before.CenterZ, after.CenterX, after.CenterZ)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cs := newTestCamera(t)
			before := *cs.Camera()
			cs.Apply(tt.in, 0.5)
			tt.check(t, before, *cs.Camera())
		})
	}
}

// TestCameraSystem_PanFollowsScreenAfterRotation 测试旋转后平移方向仍与屏幕一致
func TestCameraSystem_PanFollowsScreenAfterRotation(t *testing.T) {
	_, cs := newTestCamera(t)
	cs.SetView(1, math.Pi/3, false)

	cam := cs.Camera()
	oldX, oldZ := cam.CenterX, cam.CenterZ

	// 镜头向右移动后，原中心点应出现在屏幕中心正左侧
	cs.Apply(CameraInput{PanX: 1}, 0.1)
	v := cs.View(testScreenW, testScreenH)
	sx, sy := v.Project(oldX, 0, oldZ)
	if sx >= testScreenW/2 {
		t.Errorf("old center at screen X %v, want left of %v", sx, testScreenW/2)
	}
	if math.Abs(sy-testScreenH/2) > 1e-6 {
		t.Errorf("old center at screen Y %v, want %v", sy, testScreenH/2)
	}
}

// TestCameraSystem_Reset 测试复位保留视角模式
func TestCameraSystem_Reset(t *testing.T) {
	_, cs := newTestCamera(t)
	cs.Apply(CameraInput{PanX: 1, PanZ: 1, Rotate: 1, Wheel: 3, ToggleThreeD: true}, 1)
	cs.Apply(CameraInput{Reset: true}, 0)

	cam := cs.Camera()
	cx, cz := config.DefaultGridConfig().Center()
	if cam.CenterX != cx || cam.CenterZ != cz || cam.Rotation != 0 || cam.Zoom != 1 {
		t.Errorf("camera not reset: %+v", cam)
	}
	if cam.ThreeD {
		t.Error("reset should keep the toggled view mode")
	}
}

// TestCameraSystem_CameraRecreated 测试镜头实体丢失时自动恢复
func TestCameraSystem_CameraRecreated(t *testing.T) {
	em, cs := newTestCamera(t)
	ecs.RemoveComponent[*components.CameraComponent](em, cs.cameraEntity)

	if cam := cs.Camera(); cam == nil || cam.Zoom != 1 {
		t.Errorf("Camera() = %+v, want restored home camera", cam)
	}
}
