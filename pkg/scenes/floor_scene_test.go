package scenes

import (
	"errors"
	"testing"

	"github.com/decker502/gridfloor/pkg/config"
	"github.com/decker502/gridfloor/pkg/game"
)

func newTestScene(t *testing.T, settings *game.SettingsManager) *FloorScene {
	t.Helper()
	sc := config.DefaultSceneConfig()
	s, err := NewFloorScene(FloorSceneOptions{
		Name:         "test",
		Config:       &sc,
		Settings:     settings,
		Seed:         11,
		ScreenWidth:  1200,
		ScreenHeight: 850,
	})
	if err != nil {
		t.Fatalf("NewFloorScene() error: %v", err)
	}
	return s
}

// TestNewFloorScene 测试场景创建
func TestNewFloorScene(t *testing.T) {
	s := newTestScene(t, nil)

	if got := len(s.Floor().Tiles); got != 900 {
		t.Errorf("tiles = %d, want 900", got)
	}
	// 4 段墙 + 机器人 + 球 + 镜头
	if got := s.entityManager.Count(); got != 7 {
		t.Errorf("entities = %d, want 7", got)
	}
	if s.sceneConfig.Palette.Seed != 11 {
		t.Errorf("palette seed = %d, want 11", s.sceneConfig.Palette.Seed)
	}
	if !s.SaveOnExit() {
		t.Error("SaveOnExit() without settings should succeed")
	}
}

// TestNewFloorSceneInvalidGrid 测试非法网格配置
func TestNewFloorSceneInvalidGrid(t *testing.T) {
	sc := config.DefaultSceneConfig()
	sc.Grid.BorderThickness = 1

	_, err := NewFloorScene(FloorSceneOptions{Name: "bad", Config: &sc, ScreenWidth: 100, ScreenHeight: 100})
	if !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("NewFloorScene() error = %v, want ErrConfiguration", err)
	}

	if _, err := NewFloorScene(FloorSceneOptions{Name: "nil"}); err == nil {
		t.Error("NewFloorScene() with nil config should fail")
	}
}

// TestFloorSceneAdvanceShimmer 测试节拍驱动的颜色变化
func TestFloorSceneAdvanceShimmer(t *testing.T) {
	s := newTestScene(t, nil)

	// 闪烁关闭：节拍不改颜色
	if n := s.advance(0.5); n == 0 {
		t.Fatal("advance(0.5) ran no ticks")
	}
	if s.floorRenderSystem.SyncColors() {
		t.Error("colors changed with shimmer off")
	}

	s.paintSystem.SetShimmer(true)
	s.advance(0.1)
	if !s.floorRenderSystem.SyncColors() {
		t.Error("expected color change after shimmer ticks")
	}
}

// TestFloorSceneSettingsRoundTrip 测试视角设置的恢复与保存
func TestFloorSceneSettingsRoundTrip(t *testing.T) {
	sm := game.NewSettingsManager(nil)
	sm.SetView(2, 0.5, false)
	sm.SetShimmer(true)

	s := newTestScene(t, sm)
	cam := s.cameraSystem.Camera()
	if cam.Zoom != 2 || cam.Rotation != 0.5 || cam.ThreeD {
		t.Errorf("camera not restored from settings: %+v", cam)
	}
	if !s.paintSystem.Shimmer() {
		t.Error("shimmer not restored from settings")
	}

	cam.Zoom = 3
	s.paintSystem.SetShimmer(false)
	if !s.SaveOnExit() {
		t.Fatal("SaveOnExit() failed")
	}
	if got := sm.GetSettings(); got.Zoom != 3 || got.Shimmer {
		t.Errorf("settings after save = %+v", got)
	}
}
