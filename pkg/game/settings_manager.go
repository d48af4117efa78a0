package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gridfloor/pkg/utils"
)

// ViewSettings 预览窗口的视角设置，跨次启动保留
type ViewSettings struct {
	Zoom     float64 `yaml:"zoom"`     // 镜头缩放
	Rotation float64 `yaml:"rotation"` // 镜头旋转（弧度）
	ThreeD   bool    `yaml:"threeD"`   // 是否使用倾斜视角
	Shimmer  bool    `yaml:"shimmer"`  // 是否开启地板闪烁

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewSettings {
	return &ViewSettings{
		Zoom:     1.0,
		Rotation: 0,
		ThreeD:   true,
	}
}

// SettingsManager 设置管理器
// 负责视角设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "view"
)

// OpenStorage 打开应用的 gdata 存储
// 失败时返回 nil 和错误，调用者可以用 nil 进入降级模式
func OpenStorage(appName string) (*gdata.Manager, error) {
	if dir, err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	} else if dir != "" {
		log.Printf("[SettingsManager] Storage directory: %s", dir)
	}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage for %s: %w", appName, err)
	}
	return m, nil
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录日志后使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误（此时设置已重置为默认值）
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 未出现的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Zoom = sanitizeZoom(loaded.Zoom)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewSettings {
	return sm.settings
}

// SetView 记录镜头状态
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetView(zoom, rotation float64, threeD bool) {
	sm.settings.Zoom = sanitizeZoom(zoom)
	sm.settings.Rotation = rotation
	sm.settings.ThreeD = threeD
}

// SetShimmer 设置闪烁开关
func (sm *SettingsManager) SetShimmer(enabled bool) {
	sm.settings.Shimmer = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// sanitizeZoom 非正数或非数值的缩放回退到 1
func sanitizeZoom(zoom float64) float64 {
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return 1.0
	}
	return zoom
}
