package config

import (
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// 调色板模式
const (
	PaletteModePastel = "pastel" // 每个格子随机取高亮度粉彩色
	PaletteModeNoise  = "noise"  // 使用 Perlin 噪声在两种颜色之间插值
)

// SceneConfig 场景配置数据结构
// 定义了地板网格、边界墙、机器人、球以及调色板和节拍参数
type SceneConfig struct {
	Grid       GridConfig    `yaml:"grid"`       // 地板网格
	Walls      []WallConfig  `yaml:"walls"`      // 边界墙（每段必须与坐标轴对齐）
	WallHeight float64       `yaml:"wallHeight"` // 墙的高度（世界单位）
	Bot        EntityConfig  `yaml:"bot"`        // 机器人
	Ball       EntityConfig  `yaml:"ball"`       // 球
	Palette    PaletteConfig `yaml:"palette"`    // 地板颜色
	TickRate   int           `yaml:"tickRate"`   // 逻辑节拍频率（次/秒），与渲染帧率无关
	Background string        `yaml:"background"` // 背景颜色（十六进制，如 "#a2b9e7"）
	Window     WindowConfig  `yaml:"window"`     // 窗口设置
}

// CellRef 配置文件中的网格坐标
// 实体和墙的坐标允许落在地板范围之外（例如边界墙端点）
type CellRef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WallConfig 单段墙配置
type WallConfig struct {
	Start CellRef `yaml:"start"` // 起点（含）
	End   CellRef `yaml:"end"`   // 终点（含）
	Color string  `yaml:"color"` // 颜色，空表示使用默认墙色
}

// EntityConfig 点状实体（机器人、球）配置
type EntityConfig struct {
	Coord  CellRef `yaml:"coord"`  // 所在网格坐标
	Color  string  `yaml:"color"`  // 颜色（十六进制）
	Width  float64 `yaml:"width"`  // X 方向尺寸，0 表示使用格子宽度
	Height float64 `yaml:"height"` // 垂直方向尺寸
	Depth  float64 `yaml:"depth"`  // Z 方向尺寸，0 表示使用格子高度
	// VerticalOffset 锚点的垂直偏移，nil 表示 -Height/2（实体"放在"地板上）
	VerticalOffset *float64 `yaml:"verticalOffset"`
}

// PaletteConfig 地板调色板配置
type PaletteConfig struct {
	Mode      string  `yaml:"mode"`      // "pastel" 或 "noise"
	Seed      int64   `yaml:"seed"`      // 随机种子，0 表示按启动时间取种子
	Low       string  `yaml:"low"`       // noise 模式：噪声为 0 时的颜色
	High      string  `yaml:"high"`      // noise 模式：噪声为 1 时的颜色
	Alpha     float64 `yaml:"alpha"`     // Perlin 平滑度
	Beta      float64 `yaml:"beta"`      // Perlin 频率倍数
	Octaves   int32   `yaml:"octaves"`   // Perlin 叠加层数
	Frequency float64 `yaml:"frequency"` // 每个格子对应的噪声坐标步长
}

// WindowConfig 预览窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// 默认颜色
const (
	DefaultWallColor  = "#12fe78"
	DefaultBotColor   = "#aaaaaa"
	DefaultBallColor  = "#ff8844"
	DefaultBackground = "#a2b9e7"
)

// DefaultSceneConfig 返回默认场景：30x30 地板，四面墙围成一圈
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Grid: DefaultGridConfig(),
		Walls: []WallConfig{
			{Start: CellRef{X: 1, Y: 1}, End: CellRef{X: 1, Y: 30}},
			{Start: CellRef{X: 2, Y: 1}, End: CellRef{X: 29, Y: 1}},
			{Start: CellRef{X: 30, Y: 1}, End: CellRef{X: 30, Y: 30}},
			{Start: CellRef{X: 2, Y: 30}, End: CellRef{X: 29, Y: 30}},
		},
		WallHeight: 1.0,
		Bot: EntityConfig{
			Coord:  CellRef{X: 5, Y: 5},
			Color:  DefaultBotColor,
			Height: 1.0,
		},
		Ball: EntityConfig{
			Coord:  CellRef{X: 15, Y: 15},
			Color:  DefaultBallColor,
			Width:  DefaultCellHeight / 2,
			Height: DefaultCellHeight / 2,
			Depth:  DefaultCellHeight / 2,
		},
		Palette: PaletteConfig{
			Mode:      PaletteModePastel,
			Low:       "#cfe8cf",
			High:      "#fff4d6",
			Alpha:     2.0,
			Beta:      2.0,
			Octaves:   3,
			Frequency: 0.15,
		},
		TickRate:   28,
		Background: DefaultBackground,
		Window: WindowConfig{
			Width:  1200,
			Height: 850,
			Title:  "Grid Floor",
		},
	}
}

// LoadSceneConfig 从YAML文件加载场景配置
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*SceneConfig - 解析后的配置（未出现的字段保留默认值）
//	error - 读取、解析或校验失败时返回错误；网格约束违反时错误包装 ErrConfiguration
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config file %s: %w", path, err)
	}
	return ParseSceneConfig(data, path)
}

// ParseSceneConfig 解析YAML格式的场景配置
// source 仅用于错误信息（文件路径或嵌入资源名）
func ParseSceneConfig(data []byte, source string) (*SceneConfig, error) {
	sceneConfig := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &sceneConfig); err != nil {
		return nil, fmt.Errorf("failed to parse scene config YAML from %s: %w", source, err)
	}

	if err := validateSceneConfig(&sceneConfig); err != nil {
		return nil, fmt.Errorf("invalid scene config in %s: %w", source, err)
	}

	return &sceneConfig, nil
}

// validateSceneConfig 验证场景配置
// 墙是否与坐标轴对齐由 placement 包在放置时检查（可恢复错误，只记录日志）
func validateSceneConfig(c *SceneConfig) error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}

	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}

	if c.WallHeight <= 0 {
		return fmt.Errorf("wallHeight must be positive, got %v", c.WallHeight)
	}

	switch c.Palette.Mode {
	case PaletteModePastel, PaletteModeNoise:
	default:
		return fmt.Errorf("unknown palette mode %q (want %q or %q)", c.Palette.Mode, PaletteModePastel, PaletteModeNoise)
	}

	if c.Palette.Mode == PaletteModeNoise {
		if err := validateNoiseParams(c.Palette); err != nil {
			return err
		}
	}

	colors := []struct{ field, hex string }{
		{"background", c.Background},
		{"bot.color", c.Bot.Color},
		{"ball.color", c.Ball.Color},
		{"palette.low", c.Palette.Low},
		{"palette.high", c.Palette.High},
	}
	for i, w := range c.Walls {
		if w.Color != "" {
			colors = append(colors, struct{ field, hex string }{fmt.Sprintf("walls[%d].color", i), w.Color})
		}
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.hex); err != nil {
			return fmt.Errorf("%s: invalid color %q: %w", col.field, col.hex, err)
		}
	}

	if c.Bot.Height <= 0 || c.Ball.Height <= 0 {
		return fmt.Errorf("entity height must be positive (bot=%v, ball=%v)", c.Bot.Height, c.Ball.Height)
	}

	return nil
}

// validateNoiseParams 检查 Perlin 参数
// alpha 或 beta 为 0 时噪声库会除以 0，所有格子颜色变成 NaN
func validateNoiseParams(pc PaletteConfig) error {
	params := []struct {
		name  string
		value float64
	}{
		{"palette.alpha", pc.Alpha},
		{"palette.beta", pc.Beta},
		{"palette.frequency", pc.Frequency},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%s must be finite, got %v", p.name, p.value)
		}
	}
	if pc.Alpha <= 0 || pc.Beta <= 0 {
		return fmt.Errorf("palette.alpha and palette.beta must be positive, got %v and %v", pc.Alpha, pc.Beta)
	}
	return nil
}
