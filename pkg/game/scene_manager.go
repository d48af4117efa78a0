package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理当前活动的场景
// 任意时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到指定场景
// 切换前如果旧场景实现了 Saveable，先保存其状态
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.SaveCurrent()
	sm.currentScene = scene
	sm.currentName = name
}

// SaveCurrent 保存当前场景状态（如果支持）
func (sm *SceneManager) SaveCurrent() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// LoadScene 通过工厂创建并切换到指定场景
// 创建失败时保留当前场景
func (sm *SceneManager) LoadScene(name string) error {
	log.Printf("[SceneManager] Loading scene: %s", name)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("failed to create scene %q: %w", name, err)
	}

	sm.SwitchTo(name, scene)
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
